/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package metrics exposes the operator metrics on the manager metrics
// endpoint
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	crmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	// ReconcilePasses counts the reconcile passes executed by the
	// engine workers, including the ones which decided to do nothing
	ReconcilePasses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vpa_rollout_reconcile_passes_total",
		Help: "Number of reconcile passes executed by the engine workers",
	})

	// RolloutsTriggered counts the rollout actions accepted by the API
	// server, partitioned by strategy and action kind
	RolloutsTriggered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vpa_rollout_rollouts_triggered_total",
		Help: "Number of rollout actions accepted by the API server",
	}, []string{"strategy", "action"})

	// ReconcileErrors counts the reconcile passes which terminated with
	// an error, partitioned by error kind
	ReconcileErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vpa_rollout_reconcile_errors_total",
		Help: "Number of reconcile passes terminated with an error",
	}, []string{"kind"})
)

func init() {
	crmetrics.Registry.MustRegister(
		ReconcilePasses,
		RolloutsTriggered,
		ReconcileErrors,
	)
}
