/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package utils contains the detection helpers used during the startup
// of the operator
package utils

import (
	"errors"
	"fmt"
	"time"

	apierrs "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/util/retry"
	ctrl "sigs.k8s.io/controller-runtime"

	vpav1 "k8s.io/autoscaler/vertical-pod-autoscaler/pkg/apis/autoscaling.k8s.io/v1"
)

// ErrRecommenderNotInstalled is raised when the VerticalPodAutoscaler
// CRDs are not installed in the cluster. The operator cannot work
// without a recommendation source, so this is fatal at startup.
var ErrRecommenderNotInstalled = errors.New(
	"the VerticalPodAutoscaler CRDs are not installed in this cluster")

// recommenderResources are the API resources the VPA installation
// provides, all of which must be served before the operator starts
var recommenderResources = []string{
	"verticalpodautoscalers",
	"verticalpodautoscalercheckpoints",
}

// GetDiscoveryClient creates a discovery client or return error
func GetDiscoveryClient() (*discovery.DiscoveryClient, error) {
	config, err := ctrl.GetConfig()
	if err != nil {
		return nil, err
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(config)
	if err != nil {
		return nil, err
	}

	return discoveryClient, nil
}

func resourceExist(client discovery.DiscoveryInterface, groupVersion, name string) (bool, error) {
	apiResourceList, err := client.ServerResourcesForGroupVersion(groupVersion)
	if err != nil {
		if apierrs.IsNotFound(err) {
			return false, nil
		}

		return false, err
	}

	for _, resource := range apiResourceList.APIResources {
		if resource.Name == name {
			return true, nil
		}
	}

	return false, nil
}

// DetectRecommenderInstallation connects to the discovery API and finds
// out whether the VerticalPodAutoscaler CRDs are served
func DetectRecommenderInstallation(client discovery.DiscoveryInterface) (bool, error) {
	for _, resource := range recommenderResources {
		exist, err := resourceExist(client, vpav1.SchemeGroupVersion.String(), resource)
		if err != nil {
			return false, err
		}
		if !exist {
			return false, nil
		}
	}

	return true, nil
}

// EnsureRecommenderInstalled waits for the VerticalPodAutoscaler CRDs
// to be served, retrying with backoff. The VPA installation is often
// applied together with the operator and may become visible a few
// seconds later.
func EnsureRecommenderInstalled(client discovery.DiscoveryInterface) error {
	installationCheckRetry := wait.Backoff{
		Steps:    8,
		Duration: 500 * time.Millisecond,
		Factor:   2.0,
		Jitter:   0.1,
	}

	err := retry.OnError(installationCheckRetry,
		func(err error) bool { return true },
		func() error {
			installed, err := DetectRecommenderInstallation(client)
			if err != nil {
				return fmt.Errorf("cannot inspect the installed API resources: %w", err)
			}
			if !installed {
				return ErrRecommenderNotInstalled
			}
			return nil
		})
	return err
}
