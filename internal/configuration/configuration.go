/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package configuration contains the configuration of the operator,
// reading it from environment variables and from the operator ConfigMap
package configuration

import (
	"time"

	"github.com/asalaboratory/vpa-rollout-operator/pkg/configparser"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/stringset"
)

// Data is the struct containing the configuration of the operator
type Data struct {
	// OperatorNamespace is the namespace where the operator is
	// installed. The operator never triggers rollouts in its own
	// namespace.
	OperatorNamespace string `json:"operatorNamespace" env:"OPERATOR_NAMESPACE"`

	// WatchNamespace is the namespace where the operator should watch,
	// and is empty when the operator watches every namespace
	WatchNamespace string `json:"watchNamespace" env:"WATCH_NAMESPACE"`

	// ExemptNamespaces is the list of namespaces the operator never
	// touches, besides the ones exempted via the ExemptNamespace
	// custom resource
	ExemptNamespaces []string `json:"exemptNamespaces" env:"EXEMPT_NAMESPACES"`

	// WorkerCount is the number of concurrent reconcile workers
	WorkerCount int `json:"workerCount" env:"WORKER_COUNT"`

	// RetryBaseDelaySeconds is the backoff applied to the first retry
	// of a failed reconcile pass, doubled on every subsequent failure
	RetryBaseDelaySeconds int `json:"retryBaseDelaySeconds" env:"RETRY_BASE_DELAY_SECONDS"`

	// RetryMaxDelaySeconds caps the retry backoff
	RetryMaxDelaySeconds int `json:"retryMaxDelaySeconds" env:"RETRY_MAX_DELAY_SECONDS"`

	// PermissionRetryLimit is how many times a reconcile pass failing
	// with a permission error is retried before being surfaced as a
	// persistent warning. Retrying won't change the RBAC configuration,
	// so this is kept low.
	PermissionRetryLimit int `json:"permissionRetryLimit" env:"PERMISSION_RETRY_LIMIT"`

	// ReconcilePassTimeoutSeconds bounds the duration of a single
	// reconcile pass. A pass hitting the deadline fails and is retried
	// with backoff, so a hung API server connection cannot pin a worker
	// on one target forever.
	ReconcilePassTimeoutSeconds int `json:"reconcilePassTimeoutSeconds" env:"RECONCILE_PASS_TIMEOUT_SECONDS"`
}

// Current is the configuration used by the operator
var Current = NewConfiguration()

// newDefaultConfig creates a configuration holding the defaults
func newDefaultConfig() *Data {
	return &Data{
		ExemptNamespaces:      []string{"kube-system", "kube-public", "kube-node-lease"},
		WorkerCount:           10,
		RetryBaseDelaySeconds: 1,
		RetryMaxDelaySeconds:  300,
		PermissionRetryLimit:  5,

		ReconcilePassTimeoutSeconds: 60,
	}
}

// NewConfiguration creates a new operator configuration from the
// process environment
func NewConfiguration() *Data {
	configuration := newDefaultConfig()
	configuration.ReadConfigMap(nil)
	return configuration
}

// ReadConfigMap reads the configuration from the environment and the
// passed in ConfigMap data
func (config *Data) ReadConfigMap(data map[string]string) {
	configparser.ReadConfigMap(config, newDefaultConfig(), data)
}

// RetryBaseDelay is the backoff applied to the first retry of a failed
// reconcile pass
func (config *Data) RetryBaseDelay() time.Duration {
	return time.Duration(config.RetryBaseDelaySeconds) * time.Second
}

// RetryMaxDelay is the cap applied to the retry backoff
func (config *Data) RetryMaxDelay() time.Duration {
	return time.Duration(config.RetryMaxDelaySeconds) * time.Second
}

// ReconcilePassTimeout is the deadline applied to a single reconcile
// pass
func (config *Data) ReconcilePassTimeout() time.Duration {
	return time.Duration(config.ReconcilePassTimeoutSeconds) * time.Second
}

// ExemptNamespaceSet returns the statically exempted namespaces as a
// set, including the operator's own namespace
func (config *Data) ExemptNamespaceSet() *stringset.Data {
	result := stringset.From(config.ExemptNamespaces)
	if config.OperatorNamespace != "" {
		result.Put(config.OperatorNamespace)
	}
	return result
}
