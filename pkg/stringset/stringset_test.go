/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package stringset

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("String set", func() {
	It("starts empty", func() {
		Expect(New().Len()).To(Equal(0))
	})

	It("stores and retrieves strings", func() {
		set := New()
		set.Put("one")
		set.Put("two")
		set.Put("two")
		Expect(set.Len()).To(Equal(2))
		Expect(set.Has("one")).To(BeTrue())
		Expect(set.Has("three")).To(BeFalse())
	})

	It("deletes strings", func() {
		set := From([]string{"one", "two"})
		set.Delete("one")
		set.Delete("missing")
		Expect(set.Has("one")).To(BeFalse())
		Expect(set.Len()).To(Equal(1))
	})

	It("clones without sharing storage", func() {
		set := From([]string{"one"})
		clone := set.Clone()
		clone.Put("two")
		Expect(set.Has("two")).To(BeFalse())
		Expect(clone.Has("one")).To(BeTrue())
	})

	It("returns a sorted list", func() {
		set := From([]string{"charlie", "alpha", "bravo"})
		Expect(set.ToSortedList()).To(Equal([]string{"alpha", "bravo", "charlie"}))
	})
})
