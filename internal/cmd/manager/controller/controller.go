/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package controller implement the command used to start the operator
package controller

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apierrs "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/client"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	apiv1 "github.com/asalaboratory/vpa-rollout-operator/api/v1"
	"github.com/asalaboratory/vpa-rollout-operator/controllers"
	"github.com/asalaboratory/vpa-rollout-operator/internal/configuration"
	schemeBuilder "github.com/asalaboratory/vpa-rollout-operator/internal/scheme"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/log"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/recommender"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/utils"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/versions"
)

var scheme = schemeBuilder.BuildWithAllKnownScheme()

// LeaderElectionID is the operator Leader Election ID
const LeaderElectionID = "db51f9a2.asalaboratory.com"

// operatorCRDNames are the definitions the operator itself relies on.
// They are installed together with the operator, so a missing one is a
// deployment mistake worth failing fast on.
var operatorCRDNames = []string{
	apiv1.RolloutStrategyGVR.GroupResource().String(),
	apiv1.NamespaceMonitorGVR.GroupResource().String(),
	apiv1.ExemptNamespaceGVR.GroupResource().String(),
}

// leaderElectionConfiguration contains the leader parameters that will
// be passed to controllerruntime.Options
type leaderElectionConfiguration struct {
	enable        bool
	leaseDuration time.Duration
	renewDeadline time.Duration
}

// RunController is the main procedure of the operator, driving the
// rollout of the watched Deployments until it is asked to stop
func RunController(
	metricsAddr,
	configMapName string,
	leaderConfig leaderElectionConfiguration,
) error {
	setupLog := log.WithName("setup")
	ctx := log.IntoContext(context.Background(), setupLog)

	setupLog.Info("Starting VPA Rollout Operator",
		"version", versions.Version,
		"commit", versions.BuildCommit,
		"date", versions.BuildDate)

	managerOptions := ctrl.Options{
		Scheme: scheme,
		Metrics: metricsserver.Options{
			BindAddress: metricsAddr,
		},
		LeaderElection:   leaderConfig.enable,
		LeaseDuration:    &leaderConfig.leaseDuration,
		RenewDeadline:    &leaderConfig.renewDeadline,
		LeaderElectionID: LeaderElectionID,
		// The process ends right after the manager stops, so stepping
		// down voluntarily speeds up the leader transition
		LeaderElectionReleaseOnCancel: true,
	}

	if configuration.Current.WatchNamespace != "" {
		managerOptions.Cache = cache.Options{
			DefaultNamespaces: map[string]cache.Config{
				configuration.Current.WatchNamespace: {},
			},
		}
		setupLog.Info("Listening for changes", "watchNamespace", configuration.Current.WatchNamespace)
	} else {
		setupLog.Info("Listening for changes on all namespaces")
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), managerOptions)
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		return err
	}

	// kubeClient is used during the initialization of the operator,
	// before the manager cache is started
	kubeClient, err := client.New(mgr.GetConfig(), client.Options{Scheme: scheme})
	if err != nil {
		setupLog.Error(err, "unable to create Kubernetes client")
		return err
	}

	if err := loadConfiguration(ctx, kubeClient, configMapName); err != nil {
		return err
	}

	setupLog.Info("Operator configuration loaded", "configuration", configuration.Current)

	discoveryClient, err := utils.GetDiscoveryClient()
	if err != nil {
		return err
	}

	if err := utils.EnsureRecommenderInstalled(discoveryClient); err != nil {
		setupLog.Error(err, "unable to detect a working VerticalPodAutoscaler installation")
		return err
	}

	if err := ensureOperatorCRDsInstalled(ctx, kubeClient); err != nil {
		setupLog.Error(err, "the operator CRDs are not installed")
		return err
	}

	reconciler := controllers.NewRolloutReconciler(mgr,
		recommender.NewVPAProvider(mgr.GetClient()))
	if err := reconciler.SetupWithManager(ctx, mgr); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", "Rollout")
		return err
	}

	setupLog.Info("Starting manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running manager")
		return err
	}

	return nil
}

// loadConfiguration merges into the current configuration the content
// of the operator ConfigMap, when one is configured
func loadConfiguration(ctx context.Context, kubeClient client.Client, configMapName string) error {
	if configMapName == "" {
		return nil
	}
	contextLogger := log.FromContext(ctx)

	var configMap corev1.ConfigMap
	err := kubeClient.Get(ctx, types.NamespacedName{
		Namespace: configuration.Current.OperatorNamespace,
		Name:      configMapName,
	}, &configMap)
	if err != nil {
		if apierrs.IsNotFound(err) {
			contextLogger.Info("Operator ConfigMap not found, skipping",
				"namespace", configuration.Current.OperatorNamespace,
				"name", configMapName)
			return nil
		}
		contextLogger.Error(err, "unable to read the operator ConfigMap",
			"namespace", configuration.Current.OperatorNamespace,
			"name", configMapName)
		return err
	}

	configuration.Current.ReadConfigMap(configMap.Data)
	return nil
}

// ensureOperatorCRDsInstalled checks the definitions of the operator
// resources are installed, retrying briefly to absorb an installation
// applied moments before the operator starts
func ensureOperatorCRDsInstalled(ctx context.Context, kubeClient client.Client) error {
	installationCheckRetry := wait.Backoff{
		Steps:    5,
		Duration: 1 * time.Second,
		Factor:   2.0,
		Jitter:   0.1,
	}

	for _, name := range operatorCRDNames {
		err := retry.OnError(installationCheckRetry, apierrs.IsNotFound, func() error {
			var crd apiextensionsv1.CustomResourceDefinition
			return kubeClient.Get(ctx, types.NamespacedName{Name: name}, &crd)
		})
		if err != nil {
			return fmt.Errorf("definition %v is not installed: %w", name, err)
		}
	}

	return nil
}
