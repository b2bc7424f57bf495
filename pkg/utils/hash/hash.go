/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package hash computes stable fingerprints of Kubernetes objects. The
// operator uses it to detect pod template drift and to stamp a version
// on resource recommendations, whose content has no generation counter
// of its own.
//
// The deep-hashing technique is adapted from:
//
// https://github.com/kubernetes/kubernetes/blob/master/pkg/util/hash/hash.go   // wokeignore:rule=master
package hash

import (
	"fmt"
	"hash"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/rand"
)

// DeepHashObject writes specified object to hash using the spew library
// which follows pointers and prints actual values of the nested objects
// ensuring the hash does not change when a pointer changes.
func DeepHashObject(hasher hash.Hash, objectToWrite interface{}) error {
	hasher.Reset()
	printer := spew.ConfigState{
		Indent:         " ",
		SortKeys:       true,
		DisableMethods: true,
		SpewKeys:       true,
	}

	_, err := printer.Fprintf(hasher, "%#v", objectToWrite)
	return err
}

// ComputeHash returns a safe-encoded hash value calculated from the
// passed object
func ComputeHash(object interface{}) (string, error) {
	hasher := fnv.New32a()
	if err := DeepHashObject(hasher, object); err != nil {
		return "", err
	}

	return rand.SafeEncodeString(fmt.Sprint(hasher.Sum32())), nil
}

// ComputeTemplateHash returns the fingerprint of a Deployment pod
// template. Two templates with the same images, resources and
// annotations always map to the same fingerprint.
func ComputeTemplateHash(template *corev1.PodTemplateSpec) (string, error) {
	return ComputeHash(template)
}
