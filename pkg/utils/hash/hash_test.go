/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package hash

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Object hashing", func() {
	buildTemplate := func(cpu string) *corev1.PodTemplateSpec {
		return &corev1.PodTemplateSpec{
			Spec: corev1.PodSpec{
				Containers: []corev1.Container{
					{
						Name:  "web",
						Image: "nginx:1.27",
						Resources: corev1.ResourceRequirements{
							Requests: corev1.ResourceList{
								corev1.ResourceCPU: resource.MustParse(cpu),
							},
						},
					},
				},
			},
		}
	}

	It("is stable for equal templates", func() {
		first, err := ComputeTemplateHash(buildTemplate("100m"))
		Expect(err).ToNot(HaveOccurred())
		second, err := ComputeTemplateHash(buildTemplate("100m"))
		Expect(err).ToNot(HaveOccurred())
		Expect(first).To(Equal(second))
	})

	It("changes when the template content changes", func() {
		first, err := ComputeTemplateHash(buildTemplate("100m"))
		Expect(err).ToNot(HaveOccurred())
		second, err := ComputeTemplateHash(buildTemplate("200m"))
		Expect(err).ToNot(HaveOccurred())
		Expect(first).ToNot(Equal(second))
	})

	It("does not depend on pointer identity", func() {
		template := buildTemplate("100m")
		first, err := ComputeHash(template)
		Expect(err).ToNot(HaveOccurred())
		second, err := ComputeHash(template.DeepCopy())
		Expect(err).ToNot(HaveOccurred())
		Expect(first).To(Equal(second))
	})
})
