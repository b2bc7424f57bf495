/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package versions builds the version subcommand of the manager
package versions

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asalaboratory/vpa-rollout-operator/pkg/versions"
)

// NewCmd is a cobra command printing build information
func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints version, commit sha and date of the build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Version: %s\nCommit: %s\nDate: %s\n",
				versions.Version, versions.BuildCommit, versions.BuildDate)
		},
	}
}
