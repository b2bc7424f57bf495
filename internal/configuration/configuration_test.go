/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package configuration

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Operator configuration", func() {
	It("carries sensible defaults", func() {
		config := newDefaultConfig()
		Expect(config.WorkerCount).To(BeNumerically(">", 0))
		Expect(config.RetryBaseDelaySeconds).To(BeNumerically(">", 0))
		Expect(config.RetryMaxDelaySeconds).To(
			BeNumerically(">", config.RetryBaseDelaySeconds))
		Expect(config.ExemptNamespaces).To(ContainElement("kube-system"))
		Expect(config.ReconcilePassTimeoutSeconds).To(BeNumerically(">", 0))
	})

	It("loads values from a ConfigMap", func() {
		config := newDefaultConfig()
		config.ReadConfigMap(map[string]string{
			"WORKER_COUNT":      "3",
			"WATCH_NAMESPACE":   "production",
			"EXEMPT_NAMESPACES": "kube-system, monitoring",
		})
		Expect(config.WorkerCount).To(Equal(3))
		Expect(config.WatchNamespace).To(Equal("production"))
		Expect(config.ExemptNamespaces).To(Equal([]string{"kube-system", "monitoring"}))
	})

	It("converts retry delays to durations", func() {
		config := newDefaultConfig()
		config.RetryBaseDelaySeconds = 2
		config.RetryMaxDelaySeconds = 60
		config.ReconcilePassTimeoutSeconds = 30
		Expect(config.RetryBaseDelay()).To(Equal(2 * time.Second))
		Expect(config.RetryMaxDelay()).To(Equal(time.Minute))
		Expect(config.ReconcilePassTimeout()).To(Equal(30 * time.Second))
	})

	It("exempts the operator's own namespace", func() {
		config := newDefaultConfig()
		config.OperatorNamespace = "rollout-operator-system"
		set := config.ExemptNamespaceSet()
		Expect(set.Has("rollout-operator-system")).To(BeTrue())
		Expect(set.Has("kube-system")).To(BeTrue())
		Expect(set.Has("production")).To(BeFalse())
	})
})
