/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// RolloutStrategyType describes when and how a rollout of a target
// Deployment should be triggered once a new resource recommendation
// becomes available
type RolloutStrategyType string

const (
	// RolloutStrategyOff disables any automatic rollout of the target
	RolloutStrategyOff RolloutStrategyType = "Off"

	// RolloutStrategyInitial triggers a rollout only on the first
	// recommendation ever observed for the target
	RolloutStrategyInitial RolloutStrategyType = "Initial"

	// RolloutStrategyAuto triggers a rolling update every time a new
	// recommendation is observed
	RolloutStrategyAuto RolloutStrategyType = "Auto"

	// RolloutStrategyRecreate triggers a full recreation of the target
	// Pods every time a new recommendation is observed
	RolloutStrategyRecreate RolloutStrategyType = "Recreate"
)

// RolloutStrategySpec defines the desired rollout behavior for one
// Deployment or for a whole namespace
type RolloutStrategySpec struct {
	// The rollout behavior to apply
	// +kubebuilder:validation:Enum=Off;Initial;Auto;Recreate
	Strategy RolloutStrategyType `json:"strategy"`

	// The name of the Deployment this strategy applies to. When empty
	// the strategy is the default for every Deployment in the namespace
	// which is not covered by a more specific RolloutStrategy
	// +optional
	Target string `json:"target,omitempty"`
}

// +genclient
// +kubebuilder:object:root=true
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"
// +kubebuilder:printcolumn:name="Strategy",type="string",JSONPath=".spec.strategy"
// +kubebuilder:printcolumn:name="Target",type="string",JSONPath=".spec.target"

// RolloutStrategy is the Schema for the rolloutstrategies API
type RolloutStrategy struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata"`
	// Specification of the desired rollout behavior
	Spec RolloutStrategySpec `json:"spec"`
}

// +kubebuilder:object:root=true

// RolloutStrategyList contains a list of RolloutStrategy
type RolloutStrategyList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata"`
	// List of RolloutStrategies
	Items []RolloutStrategy `json:"items"`
}

func init() {
	SchemeBuilder.Register(&RolloutStrategy{}, &RolloutStrategyList{})
}
