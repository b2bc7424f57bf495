/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package controllers

import (
	"errors"
	"fmt"

	apierrs "k8s.io/apimachinery/pkg/api/errors"

	apiv1 "github.com/asalaboratory/vpa-rollout-operator/api/v1"
)

// ErrInvalidSpec is raised when the strategy resolved for a target
// carries a value the engine does not recognize. The CRD schema
// normally prevents this, but an object written before a schema change
// can still carry one. Retrying cannot fix a bad object, so targets
// failing with this error are not retried until their spec changes.
var ErrInvalidSpec = errors.New("invalid rollout strategy spec")

// newInvalidSpecError signals an unrecognized strategy value found in
// the named RolloutStrategy object
func newInvalidSpecError(strategyName string, value apiv1.RolloutStrategyType) error {
	return fmt.Errorf("%w: unrecognized strategy %q in RolloutStrategy %q",
		ErrInvalidSpec, value, strategyName)
}

// isPermissionError checks whether an error reports an RBAC
// misconfiguration. These are retried only a bounded number of times,
// since retrying will not change the permission state.
func isPermissionError(err error) bool {
	return apierrs.IsForbidden(err) || apierrs.IsUnauthorized(err)
}
