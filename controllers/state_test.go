/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package controllers

import (
	"time"

	"github.com/asalaboratory/vpa-rollout-operator/pkg/queue"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Rollout state", func() {
	It("has not acted until an action is recorded", func() {
		state := &RolloutState{}
		Expect(state.HasActed()).To(BeFalse())

		deployment := newTargetDeployment("apps", "web")
		state.recordApplied(RolloutAction{
			Kind:     ActionPatchTemplate,
			Snapshot: newSnapshot("v1", "web", "250m"),
		}, &deployment.Spec.Template)

		Expect(state.HasActed()).To(BeTrue())
		Expect(state.LastAppliedRecommendationVersion).To(Equal("v1"))
		Expect(state.LastActionKind).To(Equal(ActionPatchTemplate))
		Expect(state.LastActionTime).To(BeTemporally("~", time.Now(), time.Minute))
		Expect(state.LastObservedTemplateHash).ToNot(BeEmpty())
	})

	Describe("seeding from a deployment", func() {
		It("starts fresh for an untouched deployment", func() {
			state := seedStateFromDeployment(newTargetDeployment("apps", "web"))

			Expect(state.HasActed()).To(BeFalse())
			Expect(state.LastAppliedRecommendationVersion).To(BeEmpty())
			Expect(state.LastObservedTemplateHash).ToNot(BeEmpty())
		})

		It("recovers the applied version from the annotations", func() {
			stamp := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
			deployment := newTargetDeployment("apps", "web")
			deployment.Spec.Template.Annotations = map[string]string{
				AppliedRecommendationAnnotation: "v4",
				RolloutTriggerAnnotation:        stamp.Format(time.RFC3339),
			}

			state := seedStateFromDeployment(deployment)

			Expect(state.HasActed()).To(BeTrue())
			Expect(state.LastAppliedRecommendationVersion).To(Equal("v4"))
			Expect(state.LastActionTime).To(BeTemporally("==", stamp))
		})

		It("tolerates a missing or malformed trigger timestamp", func() {
			deployment := newTargetDeployment("apps", "web")
			deployment.Spec.Template.Annotations = map[string]string{
				AppliedRecommendationAnnotation: "v4",
				RolloutTriggerAnnotation:        "not-a-timestamp",
			}

			state := seedStateFromDeployment(deployment)

			Expect(state.HasActed()).To(BeTrue())
			Expect(state.LastActionTime.IsZero()).To(BeTrue())
		})
	})

	Describe("the state arena", func() {
		It("seeds once and returns the same entry afterwards", func() {
			arena := newRolloutStateArena()
			key := queue.Key{Namespace: "apps", Name: "web"}
			seedCalls := 0

			first := arena.Obtain(key, func() *RolloutState {
				seedCalls++
				return &RolloutState{LastAppliedRecommendationVersion: "v1"}
			})
			second := arena.Obtain(key, func() *RolloutState {
				seedCalls++
				return &RolloutState{}
			})

			Expect(first).To(BeIdenticalTo(second))
			Expect(seedCalls).To(Equal(1))
		})

		It("reseeds after an eviction", func() {
			arena := newRolloutStateArena()
			key := queue.Key{Namespace: "apps", Name: "web"}

			arena.Obtain(key, func() *RolloutState {
				return &RolloutState{LastAppliedRecommendationVersion: "v1"}
			})
			arena.Evict(key)

			fresh := arena.Obtain(key, func() *RolloutState { return &RolloutState{} })
			Expect(fresh.LastAppliedRecommendationVersion).To(BeEmpty())
		})

		It("keeps separate entries per target", func() {
			arena := newRolloutStateArena()

			web := arena.Obtain(queue.Key{Namespace: "apps", Name: "web"},
				func() *RolloutState { return &RolloutState{LastAppliedRecommendationVersion: "v1"} })
			api := arena.Obtain(queue.Key{Namespace: "apps", Name: "api"},
				func() *RolloutState { return &RolloutState{LastAppliedRecommendationVersion: "v2"} })

			Expect(web.LastAppliedRecommendationVersion).To(Equal("v1"))
			Expect(api.LastAppliedRecommendationVersion).To(Equal("v2"))
		})
	})
})
