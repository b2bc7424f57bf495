/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package versions contains the version of the VPA Rollout Operator and
// the software used to build it
package versions

const (
	// Version is the version of the operator
	Version = "0.4.0"

	// DefaultOperatorImageName is the name of the image of the operator
	DefaultOperatorImageName = "ghcr.io/asalaboratory/vpa-rollout-operator:" + Version
)

var (
	// BuildCommit is the git commit the operator was built from,
	// injected at build time
	BuildCommit = "none"

	// BuildDate is the date the operator was built, injected at
	// build time
	BuildDate = "unknown"
)
