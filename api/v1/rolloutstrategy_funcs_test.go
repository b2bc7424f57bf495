/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RolloutStrategy helpers", func() {
	specific := RolloutStrategy{
		ObjectMeta: metav1.ObjectMeta{Name: "web-strategy", Namespace: "apps"},
		Spec: RolloutStrategySpec{
			Strategy: RolloutStrategyAuto,
			Target:   "web",
		},
	}
	namespaceDefault := RolloutStrategy{
		ObjectMeta: metav1.ObjectMeta{Name: "default-strategy", Namespace: "apps"},
		Spec: RolloutStrategySpec{
			Strategy: RolloutStrategyInitial,
		},
	}

	It("detects namespace-wide defaults", func() {
		Expect(specific.IsNamespaceDefault()).To(BeFalse())
		Expect(namespaceDefault.IsNamespaceDefault()).To(BeTrue())
	})

	It("matches explicit targets", func() {
		Expect(specific.AppliesTo("web")).To(BeTrue())
		Expect(specific.AppliesTo("api")).To(BeFalse())
	})

	It("matches any target when it is a namespace default", func() {
		Expect(namespaceDefault.AppliesTo("web")).To(BeTrue())
		Expect(namespaceDefault.AppliesTo("api")).To(BeTrue())
	})

	It("derives the definition names from the group resources", func() {
		Expect(RolloutStrategyGVR.GroupResource().String()).To(
			Equal("rolloutstrategies.asalaboratory.com"))
		Expect(NamespaceMonitorGVR.GroupResource().String()).To(
			Equal("namespacemonitors.asalaboratory.com"))
		Expect(ExemptNamespaceGVR.GroupResource().String()).To(
			Equal("exemptnamespaces.asalaboratory.com"))
	})

	It("recognizes the supported strategy values", func() {
		Expect(IsKnownStrategy(RolloutStrategyOff)).To(BeTrue())
		Expect(IsKnownStrategy(RolloutStrategyInitial)).To(BeTrue())
		Expect(IsKnownStrategy(RolloutStrategyAuto)).To(BeTrue())
		Expect(IsKnownStrategy(RolloutStrategyRecreate)).To(BeTrue())
		Expect(IsKnownStrategy("Sometimes")).To(BeFalse())
		Expect(IsKnownStrategy("")).To(BeFalse())
	})
})
