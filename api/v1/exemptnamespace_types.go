/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ExemptNamespaceSpec selects a namespace the operator must never touch,
// even when a NamespaceMonitor covers it
type ExemptNamespaceSpec struct {
	// The name of the namespace to exempt
	Namespace string `json:"namespace"`
}

// +genclient
// +genclient:nonNamespaced
// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Cluster
// +kubebuilder:printcolumn:name="Namespace",type="string",JSONPath=".spec.namespace"

// ExemptNamespace is the Schema for the exemptnamespaces API
type ExemptNamespace struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata"`
	Spec              ExemptNamespaceSpec `json:"spec"`
}

// +kubebuilder:object:root=true

// ExemptNamespaceList contains a list of ExemptNamespace
type ExemptNamespaceList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata"`
	Items           []ExemptNamespace `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ExemptNamespace{}, &ExemptNamespaceList{})
}
