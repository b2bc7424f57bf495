/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package configparser

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeData is an example of the configuration structure
// that can be used with this configparser
type fakeData struct {
	WatchNamespace   string   `json:"watchNamespace" env:"WATCH_NAMESPACE"`
	ExemptNamespaces []string `json:"exemptNamespaces" env:"EXEMPT_NAMESPACES"`
	WorkerCount      int      `json:"workerCount" env:"WORKER_COUNT"`
	EnableSomething  bool     `json:"enableSomething" env:"ENABLE_SOMETHING"`
	Untagged         string   `json:"untagged"`
}

var _ = Describe("Configuration parser", func() {
	defaults := &fakeData{
		ExemptNamespaces: []string{"kube-system"},
		WorkerCount:      10,
	}

	It("correctly splits and trims lists", func() {
		list := splitAndTrim("string, with space , inside\t")
		Expect(list).To(Equal([]string{"string", "with space", "inside"}))
	})

	It("loads values from a map", func() {
		config := &fakeData{}
		ReadConfigMapWithEnvironment(config, defaults, map[string]string{
			"WATCH_NAMESPACE":   "one-namespace",
			"EXEMPT_NAMESPACES": "one, two",
			"WORKER_COUNT":      "4",
		}, MapEnvironment{})
		Expect(config.WatchNamespace).To(Equal("one-namespace"))
		Expect(config.ExemptNamespaces).To(Equal([]string{"one", "two"}))
		Expect(config.WorkerCount).To(Equal(4))
	})

	It("loads values from the environment", func() {
		config := &fakeData{}
		ReadConfigMapWithEnvironment(config, defaults, nil, MapEnvironment{
			"WATCH_NAMESPACE":  "one-namespace",
			"ENABLE_SOMETHING": "true",
		})
		Expect(config.WatchNamespace).To(Equal("one-namespace"))
		Expect(config.EnableSomething).To(BeTrue())
	})

	It("prefers map data over the environment", func() {
		config := &fakeData{}
		ReadConfigMapWithEnvironment(config, defaults,
			map[string]string{"WATCH_NAMESPACE": "from-map"},
			MapEnvironment{"WATCH_NAMESPACE": "from-env"})
		Expect(config.WatchNamespace).To(Equal("from-map"))
	})

	It("resets to the default value if the format is not correct", func() {
		config := &fakeData{}
		ReadConfigMapWithEnvironment(config, defaults, map[string]string{
			"WORKER_COUNT":     "many",
			"ENABLE_SOMETHING": "maybe",
		}, MapEnvironment{})
		Expect(config.WorkerCount).To(Equal(10))
		Expect(config.EnableSomething).To(BeFalse())
	})

	It("handles correctly default values of slices", func() {
		config := &fakeData{}
		ReadConfigMapWithEnvironment(config, defaults, nil, MapEnvironment{})
		Expect(config.ExemptNamespaces).To(Equal([]string{"kube-system"}))
	})

	It("ignores fields without the env tag", func() {
		config := &fakeData{}
		ReadConfigMapWithEnvironment(config, defaults,
			map[string]string{"Untagged": "value"}, MapEnvironment{})
		Expect(config.Untagged).To(BeEmpty())
	})
})
