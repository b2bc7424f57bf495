/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package controllers

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/asalaboratory/vpa-rollout-operator/pkg/recommender"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Rollout execution", func() {
	var (
		ctx        context.Context
		fakeClient client.Client
		executor   *RolloutExecutor
		target     *appsv1.Deployment
	)

	BeforeEach(func() {
		ctx = context.Background()
		target = newTargetDeployment("apps", "web")
		fakeClient = newFakeClusterClient(target)
		executor = NewRolloutExecutor(fakeClient)
	})

	It("does nothing for an empty action", func() {
		before := target.DeepCopy()
		Expect(executor.Apply(ctx, target, RolloutAction{Kind: ActionNone})).To(Succeed())
		Expect(target.Spec).To(Equal(before.Spec))
	})

	It("sets the recommended requests and stamps the trigger annotations", func() {
		action := RolloutAction{
			Kind:     ActionPatchTemplate,
			Snapshot: newSnapshot("v7", "web", "750m"),
		}
		Expect(executor.Apply(ctx, target, action)).To(Succeed())

		var persisted appsv1.Deployment
		Expect(fakeClient.Get(ctx,
			types.NamespacedName{Namespace: "apps", Name: "web"}, &persisted)).To(Succeed())
		Expect(persisted.Spec.Template.Spec.Containers[0].Resources.Requests).To(
			HaveKeyWithValue(corev1.ResourceCPU, resource.MustParse("750m")))
		Expect(persisted.Spec.Template.Annotations).To(
			HaveKeyWithValue(AppliedRecommendationAnnotation, "v7"))
		Expect(persisted.Spec.Template.Annotations).To(
			HaveKey(RolloutTriggerAnnotation))

		By("leaving the deployment strategy untouched")
		Expect(persisted.Spec.Strategy.Type).ToNot(Equal(appsv1.RecreateDeploymentStrategyType))
	})

	It("forces the Recreate strategy when asked to", func() {
		action := RolloutAction{
			Kind:     ActionForceRecreate,
			Snapshot: newSnapshot("v7", "web", "750m"),
		}
		Expect(executor.Apply(ctx, target, action)).To(Succeed())

		var persisted appsv1.Deployment
		Expect(fakeClient.Get(ctx,
			types.NamespacedName{Namespace: "apps", Name: "web"}, &persisted)).To(Succeed())
		Expect(persisted.Spec.Strategy.Type).To(Equal(appsv1.RecreateDeploymentStrategyType))
		Expect(persisted.Spec.Template.Annotations).To(
			HaveKeyWithValue(AppliedRecommendationAnnotation, "v7"))
	})

	It("skips the containers the recommendation does not cover", func() {
		target.Spec.Template.Spec.Containers = append(target.Spec.Template.Spec.Containers,
			corev1.Container{
				Name:  "sidecar",
				Image: "registry.example.com/sidecar:latest",
				Resources: corev1.ResourceRequirements{
					Requests: corev1.ResourceList{
						corev1.ResourceCPU: resource.MustParse("50m"),
					},
				},
			})
		Expect(fakeClient.Update(ctx, target)).To(Succeed())

		action := RolloutAction{
			Kind:     ActionPatchTemplate,
			Snapshot: newSnapshot("v1", "web", "500m"),
		}
		Expect(executor.Apply(ctx, target, action)).To(Succeed())

		var persisted appsv1.Deployment
		Expect(fakeClient.Get(ctx,
			types.NamespacedName{Namespace: "apps", Name: "web"}, &persisted)).To(Succeed())
		Expect(persisted.Spec.Template.Spec.Containers[0].Resources.Requests).To(
			HaveKeyWithValue(corev1.ResourceCPU, resource.MustParse("500m")))
		Expect(persisted.Spec.Template.Spec.Containers[1].Resources.Requests).To(
			HaveKeyWithValue(corev1.ResourceCPU, resource.MustParse("50m")))
	})

	It("fills the requests of a container declaring none", func() {
		target.Spec.Template.Spec.Containers[0].Resources = corev1.ResourceRequirements{}
		Expect(fakeClient.Update(ctx, target)).To(Succeed())

		action := RolloutAction{
			Kind: ActionPatchTemplate,
			Snapshot: &recommender.Snapshot{
				Version: "v1",
				Containers: []recommender.ContainerRecommendation{
					{
						Name: "web",
						Target: corev1.ResourceList{
							corev1.ResourceCPU:    resource.MustParse("250m"),
							corev1.ResourceMemory: resource.MustParse("256Mi"),
						},
					},
				},
			},
		}
		Expect(executor.Apply(ctx, target, action)).To(Succeed())

		var persisted appsv1.Deployment
		Expect(fakeClient.Get(ctx,
			types.NamespacedName{Namespace: "apps", Name: "web"}, &persisted)).To(Succeed())
		requests := persisted.Spec.Template.Spec.Containers[0].Resources.Requests
		Expect(requests).To(HaveKeyWithValue(corev1.ResourceCPU, resource.MustParse("250m")))
		Expect(requests).To(HaveKeyWithValue(corev1.ResourceMemory, resource.MustParse("256Mi")))
	})
})
