/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package controllers

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/asalaboratory/vpa-rollout-operator/pkg/recommender"
)

const (
	// AppliedRecommendationAnnotation records on the pod template the
	// version stamp of the recommendation applied to it. Seeding the
	// in-memory rollout state from this annotation lets the operator
	// survive restarts without an external store.
	AppliedRecommendationAnnotation = "asalaboratory.com/applied-recommendation"

	// RolloutTriggerAnnotation carries the time of the last triggered
	// rollout. A changing value guarantees the pod template content
	// changes, which is what makes the deployment controller replace
	// the Pods.
	RolloutTriggerAnnotation = "asalaboratory.com/vpa-update-timestamp"
)

// ActionKind is the kind of mutation the engine decided to apply to a
// target
type ActionKind string

const (
	// ActionNone means no mutation is due
	ActionNone ActionKind = ""

	// ActionPatchTemplate updates the pod template and lets the
	// rolling-update mechanism replace the Pods gradually
	ActionPatchTemplate ActionKind = "PatchTemplate"

	// ActionForceRecreate updates the pod template and forces the
	// replacement of all the Pods at once
	ActionForceRecreate ActionKind = "ForceRecreate"
)

// RolloutAction is a decided mutation, carrying the recommendation to
// apply
type RolloutAction struct {
	Kind     ActionKind
	Snapshot *recommender.Snapshot
}

// RolloutExecutor applies rollout actions to target Deployments. Every
// action is a single patch: success means the API server accepted the
// mutation, not that the Pods were already replaced, which is observed
// asynchronously via the watch.
type RolloutExecutor struct {
	client client.Client
}

// NewRolloutExecutor creates a RolloutExecutor using the passed client
func NewRolloutExecutor(c client.Client) *RolloutExecutor {
	return &RolloutExecutor{client: c}
}

// Apply issues the patch implementing the passed action. The target is
// updated in place with the content accepted by the API server.
//
// A Conflict error means the Deployment changed since it was read: the
// caller is expected to re-fetch and retry via the queue backoff.
func (executor *RolloutExecutor) Apply(
	ctx context.Context,
	target *appsv1.Deployment,
	action RolloutAction,
) error {
	if action.Kind == ActionNone {
		return nil
	}

	origin := target.DeepCopy()

	applyRecommendedResources(&target.Spec.Template, action.Snapshot)
	if target.Spec.Template.Annotations == nil {
		target.Spec.Template.Annotations = make(map[string]string)
	}
	target.Spec.Template.Annotations[AppliedRecommendationAnnotation] = action.Snapshot.Version
	target.Spec.Template.Annotations[RolloutTriggerAnnotation] = time.Now().UTC().Format(time.RFC3339)

	if action.Kind == ActionForceRecreate {
		// The Recreate deployment strategy forbids partial
		// availability: every Pod is terminated before the new ones
		// are created
		target.Spec.Strategy = appsv1.DeploymentStrategy{
			Type: appsv1.RecreateDeploymentStrategyType,
		}
	}

	if err := executor.client.Patch(ctx, target, client.MergeFrom(origin)); err != nil {
		return fmt.Errorf("while patching deployment %v/%v: %w",
			target.Namespace, target.Name, err)
	}

	return nil
}

// applyRecommendedResources aligns the resource requests of the pod
// template containers with the recommendation targets. Containers the
// recommendation doesn't cover, and resource limits, are left alone.
func applyRecommendedResources(template *corev1.PodTemplateSpec, snapshot *recommender.Snapshot) {
	for _, recommendation := range snapshot.Containers {
		for idx := range template.Spec.Containers {
			container := &template.Spec.Containers[idx]
			if container.Name != recommendation.Name {
				continue
			}

			if container.Resources.Requests == nil {
				container.Resources.Requests = make(corev1.ResourceList)
			}
			for resourceName, quantity := range recommendation.Target {
				container.Resources.Requests[resourceName] = quantity
			}
		}
	}
}
