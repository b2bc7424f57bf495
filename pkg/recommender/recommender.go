/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package recommender gives read-only access to the resource
// recommendations computed for a target Deployment. The production
// implementation reads the status of the VerticalPodAutoscaler paired
// with the Deployment.
package recommender

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrs "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	vpav1 "k8s.io/autoscaler/vertical-pod-autoscaler/pkg/apis/autoscaling.k8s.io/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/asalaboratory/vpa-rollout-operator/pkg/utils/hash"
)

// ContainerRecommendation is the recommended resource amount for one
// container of the target Deployment
type ContainerRecommendation struct {
	// Name is the name of the container
	Name string

	// Target is the recommended amount of resources
	Target corev1.ResourceList
}

// Snapshot is a point-in-time resource recommendation for a target
// Deployment
type Snapshot struct {
	// Version is a stamp identifying the recommendation content. Two
	// snapshots with the same version carry the same recommendation.
	Version string

	// Containers are the per-container recommendations
	Containers []ContainerRecommendation
}

// Provider gives access to the current recommendation of a target.
// Get returns nil when no recommendation is available yet for the
// target; errors are I/O failures talking to the cluster.
type Provider interface {
	Get(ctx context.Context, namespace, name string) (*Snapshot, error)
}

// vpaProvider reads recommendations from VerticalPodAutoscaler objects
type vpaProvider struct {
	client client.Client
}

// NewVPAProvider creates a Provider backed by the VerticalPodAutoscaler
// paired by name with each target Deployment
func NewVPAProvider(c client.Client) Provider {
	return &vpaProvider{client: c}
}

// Get reads the recommendation of the VPA named after the target.
// A missing VPA or an empty recommendation is not an error: the
// recommender simply did not produce data yet, and a watch event will
// re-trigger the target when it does.
func (provider *vpaProvider) Get(ctx context.Context, namespace, name string) (*Snapshot, error) {
	var vpa vpav1.VerticalPodAutoscaler
	if err := provider.client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, &vpa); err != nil {
		if apierrs.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("while getting the VPA for %v/%v: %w", namespace, name, err)
	}

	return FromVPAStatus(&vpa)
}

// FromVPAStatus builds a recommendation snapshot from the status of a
// VerticalPodAutoscaler, or nil when the status carries none.
//
// The VPA status has no generation counter, so the version stamp is a
// content hash of the recommendation itself.
func FromVPAStatus(vpa *vpav1.VerticalPodAutoscaler) (*Snapshot, error) {
	recommendation := vpa.Status.Recommendation
	if recommendation == nil || len(recommendation.ContainerRecommendations) == 0 {
		return nil, nil
	}

	version, err := hash.ComputeHash(recommendation)
	if err != nil {
		return nil, fmt.Errorf("while hashing the recommendation of %v/%v: %w",
			vpa.Namespace, vpa.Name, err)
	}

	snapshot := &Snapshot{Version: version}
	for _, container := range recommendation.ContainerRecommendations {
		snapshot.Containers = append(snapshot.Containers, ContainerRecommendation{
			Name:   container.ContainerName,
			Target: container.Target,
		})
	}

	return snapshot, nil
}
