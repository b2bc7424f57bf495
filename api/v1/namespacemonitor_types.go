/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// NamespaceMonitorSpec selects a namespace whose Deployments are managed
// by the operator. When at least one NamespaceMonitor exists in the
// cluster, only the listed namespaces are managed.
type NamespaceMonitorSpec struct {
	// The name of the namespace to monitor
	Namespace string `json:"namespace"`
}

// +genclient
// +genclient:nonNamespaced
// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Cluster
// +kubebuilder:printcolumn:name="Namespace",type="string",JSONPath=".spec.namespace"

// NamespaceMonitor is the Schema for the namespacemonitors API
type NamespaceMonitor struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata"`
	Spec              NamespaceMonitorSpec `json:"spec"`
}

// +kubebuilder:object:root=true

// NamespaceMonitorList contains a list of NamespaceMonitor
type NamespaceMonitorList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata"`
	Items           []NamespaceMonitor `json:"items"`
}

func init() {
	SchemeBuilder.Register(&NamespaceMonitor{}, &NamespaceMonitorList{})
}
