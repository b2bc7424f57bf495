/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package v1

// IsNamespaceDefault is true when this strategy applies to every
// Deployment in its namespace which has no specific strategy
func (in *RolloutStrategy) IsNamespaceDefault() bool {
	return in.Spec.Target == ""
}

// AppliesTo checks whether this strategy covers the Deployment with the
// given name, either explicitly or as the namespace default
func (in *RolloutStrategy) AppliesTo(deploymentName string) bool {
	return in.Spec.Target == deploymentName || in.IsNamespaceDefault()
}

// IsKnownStrategy checks whether the given value is one of the supported
// rollout behaviors. The CRD schema validates this too, but an object
// created before a schema change may still carry an unknown value.
func IsKnownStrategy(value RolloutStrategyType) bool {
	switch value {
	case RolloutStrategyOff,
		RolloutStrategyInitial,
		RolloutStrategyAuto,
		RolloutStrategyRecreate:
		return true
	default:
		return false
	}
}
