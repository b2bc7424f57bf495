/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package controllers

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	autoscalingv1 "k8s.io/api/autoscaling/v1"
	apierrs "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	vpav1 "k8s.io/autoscaler/vertical-pod-autoscaler/pkg/apis/autoscaling.k8s.io/v1"
	"k8s.io/utils/ptr"

	"github.com/asalaboratory/vpa-rollout-operator/pkg/log"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/queue"
)

const (
	// ManagedByLabel marks the VPAs created by this operator
	ManagedByLabel = "asalaboratory.com/managed-by"

	// ManagedByValue is the value of the ManagedByLabel
	ManagedByValue = "vpa-rollout-operator"
)

// ensureRecommender makes sure a VerticalPodAutoscaler paired with the
// target Deployment exists. The created VPA only computes
// recommendations (update mode Off): the rollouts themselves are
// driven by this operator, according to the resolved strategy.
//
// A VPA created by the user with the same name is left untouched and
// used as the recommendation source.
func (r *RolloutReconciler) ensureRecommender(ctx context.Context, target *appsv1.Deployment) error {
	var vpa vpav1.VerticalPodAutoscaler
	err := r.client.Get(ctx,
		types.NamespacedName{Namespace: target.Namespace, Name: target.Name}, &vpa)
	if err == nil {
		return nil
	}
	if !apierrs.IsNotFound(err) {
		return fmt.Errorf("cannot get the VPA for %v/%v: %w",
			target.Namespace, target.Name, err)
	}

	vpa = vpav1.VerticalPodAutoscaler{
		ObjectMeta: metav1.ObjectMeta{
			Namespace: target.Namespace,
			Name:      target.Name,
			Labels: map[string]string{
				ManagedByLabel: ManagedByValue,
			},
		},
		Spec: vpav1.VerticalPodAutoscalerSpec{
			TargetRef: &autoscalingv1.CrossVersionObjectReference{
				APIVersion: appsv1.SchemeGroupVersion.String(),
				Kind:       "Deployment",
				Name:       target.Name,
			},
			UpdatePolicy: &vpav1.PodUpdatePolicy{
				UpdateMode: ptr.To(vpav1.UpdateModeOff),
			},
		},
	}

	if err := r.client.Create(ctx, &vpa); err != nil {
		if apierrs.IsAlreadyExists(err) {
			// Another worker or a previous pass won the race
			return nil
		}
		return fmt.Errorf("cannot create the VPA for %v/%v: %w",
			target.Namespace, target.Name, err)
	}

	log.FromContext(ctx).Info("Created recommender for target",
		"namespace", target.Namespace, "name", target.Name)
	return nil
}

// deleteManagedRecommender deletes the VPA paired with a deleted
// target, but only when this operator created it
func (r *RolloutReconciler) deleteManagedRecommender(ctx context.Context, key queue.Key) error {
	var vpa vpav1.VerticalPodAutoscaler
	err := r.client.Get(ctx,
		types.NamespacedName{Namespace: key.Namespace, Name: key.Name}, &vpa)
	if err != nil {
		if apierrs.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("cannot get the VPA for deleted target %v: %w", key, err)
	}

	if vpa.Labels[ManagedByLabel] != ManagedByValue {
		return nil
	}

	if err := r.client.Delete(ctx, &vpa); err != nil && !apierrs.IsNotFound(err) {
		return fmt.Errorf("cannot delete the VPA for deleted target %v: %w", key, err)
	}

	log.FromContext(ctx).Info("Deleted recommender of deleted target",
		"namespace", key.Namespace, "name", key.Name)
	return nil
}
