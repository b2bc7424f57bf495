/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package v1 contains API Schema definitions for the asalaboratory.com v1 API group
// +kubebuilder:object:generate=true
// +groupName=asalaboratory.com
package v1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

var (
	// GroupVersion is group version used to register these objects
	GroupVersion = schema.GroupVersion{Group: "asalaboratory.com", Version: "v1"}

	// RolloutStrategyGVR is the triple to reach RolloutStrategy resources in k8s
	RolloutStrategyGVR = schema.GroupVersionResource{
		Group:    GroupVersion.Group,
		Version:  GroupVersion.Version,
		Resource: "rolloutstrategies",
	}

	// NamespaceMonitorGVR is the triple to reach NamespaceMonitor resources in k8s
	NamespaceMonitorGVR = schema.GroupVersionResource{
		Group:    GroupVersion.Group,
		Version:  GroupVersion.Version,
		Resource: "namespacemonitors",
	}

	// ExemptNamespaceGVR is the triple to reach ExemptNamespace resources in k8s
	ExemptNamespaceGVR = schema.GroupVersionResource{
		Group:    GroupVersion.Group,
		Version:  GroupVersion.Version,
		Resource: "exemptnamespaces",
	}

	// SchemeBuilder is used to add go types to the GroupVersionKind scheme
	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

	// AddToScheme adds the types in this group-version to the given scheme.
	AddToScheme = SchemeBuilder.AddToScheme
)
