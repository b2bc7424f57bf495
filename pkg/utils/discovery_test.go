/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package utils

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	vpav1 "k8s.io/autoscaler/vertical-pod-autoscaler/pkg/apis/autoscaling.k8s.io/v1"
	fakediscovery "k8s.io/client-go/discovery/fake"
	fakeclientset "k8s.io/client-go/kubernetes/fake"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Recommender installation detection", func() {
	newDiscoveryClient := func(resources ...metav1.APIResource) *fakediscovery.FakeDiscovery {
		clientset := fakeclientset.NewSimpleClientset()
		discoveryClient := clientset.Discovery().(*fakediscovery.FakeDiscovery)
		discoveryClient.Resources = []*metav1.APIResourceList{
			{
				GroupVersion: vpav1.SchemeGroupVersion.String(),
				APIResources: resources,
			},
		}
		return discoveryClient
	}

	It("detects a complete installation", func() {
		discoveryClient := newDiscoveryClient(
			metav1.APIResource{Name: "verticalpodautoscalers"},
			metav1.APIResource{Name: "verticalpodautoscalercheckpoints"},
		)

		installed, err := DetectRecommenderInstallation(discoveryClient)
		Expect(err).ToNot(HaveOccurred())
		Expect(installed).To(BeTrue())
	})

	It("detects a partial installation as missing", func() {
		discoveryClient := newDiscoveryClient(
			metav1.APIResource{Name: "verticalpodautoscalers"},
		)

		installed, err := DetectRecommenderInstallation(discoveryClient)
		Expect(err).ToNot(HaveOccurred())
		Expect(installed).To(BeFalse())
	})

	It("detects an empty group as missing", func() {
		discoveryClient := newDiscoveryClient()

		installed, err := DetectRecommenderInstallation(discoveryClient)
		Expect(err).ToNot(HaveOccurred())
		Expect(installed).To(BeFalse())
	})
})
