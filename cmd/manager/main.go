/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

/*
The manager command is the main entrypoint of the VPA Rollout Operator.
*/
package main

import (
	"errors"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/util/retry"

	"github.com/asalaboratory/vpa-rollout-operator/internal/cmd/manager/controller"
	"github.com/asalaboratory/vpa-rollout-operator/internal/cmd/versions"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/log"

	_ "k8s.io/client-go/plugin/pkg/client/auth"
)

func main() {
	if !isK8sRESTServerReadyWithRetries() {
		os.Exit(1)
	}
	logFlags := &log.Flags{}

	cmd := &cobra.Command{
		Use:          "manager [cmd]",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFlags.ConfigureLogging()
		},
	}

	logFlags.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(controller.NewCmd())
	cmd.AddCommand(versions.NewCmd())

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isK8sRESTServerReadyWithRetries attempts to retrieve the version of
// k8s REST API server, retrying the request if some communication error
// is encountered
func isK8sRESTServerReadyWithRetries() bool {
	readinessCheckRetry := wait.Backoff{
		Steps:    10,
		Duration: 10 * time.Millisecond,
		Factor:   5.0,
		Jitter:   0.1,
	}

	isErrorRetryable := func(err error) bool {
		// If it's a timeout, we do not want to retry
		var netError net.Error
		if errors.As(err, &netError) && netError.Timeout() {
			return false
		}

		return true
	}

	err := retry.OnError(readinessCheckRetry, isErrorRetryable, isK8sRESTServerReady)
	return err == nil
}

// isK8sRESTServerReady attempts to retrieve the version of the k8s REST
// API server to test its readiness
func isK8sRESTServerReady() error {
	config, err := rest.InClusterConfig()
	if err != nil {
		return err
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return err
	}

	_, err = clientset.DiscoveryClient.ServerVersion()
	return err
}
