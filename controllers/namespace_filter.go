/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package controllers

import (
	"sync"

	"github.com/asalaboratory/vpa-rollout-operator/pkg/stringset"
)

// NamespaceFilter decides which namespaces the operator acts on.
//
// When at least one NamespaceMonitor exists, only the monitored
// namespaces are managed. Namespaces exempted via the ExemptNamespace
// custom resource, the statically configured ones, and the operator's
// own namespace are never managed.
//
// The watch listener writes and the reconcile workers read, so the
// sets are guarded by a read/write mutex.
type NamespaceFilter struct {
	mutex        sync.RWMutex
	monitored    *stringset.Data
	exempt       *stringset.Data
	staticExempt *stringset.Data
}

// NewNamespaceFilter creates a NamespaceFilter with the passed static
// exemptions
func NewNamespaceFilter(staticExempt *stringset.Data) *NamespaceFilter {
	return &NamespaceFilter{
		monitored:    stringset.New(),
		exempt:       stringset.New(),
		staticExempt: staticExempt.Clone(),
	}
}

// IsManaged checks whether the operator is allowed to act on the
// passed namespace
func (filter *NamespaceFilter) IsManaged(namespace string) bool {
	filter.mutex.RLock()
	defer filter.mutex.RUnlock()

	if filter.staticExempt.Has(namespace) || filter.exempt.Has(namespace) {
		return false
	}

	return filter.monitored.Len() == 0 || filter.monitored.Has(namespace)
}

// AddMonitored registers a namespace selected by a NamespaceMonitor
func (filter *NamespaceFilter) AddMonitored(namespace string) {
	filter.mutex.Lock()
	defer filter.mutex.Unlock()

	filter.monitored.Put(namespace)
}

// RemoveMonitored unregisters a namespace whose NamespaceMonitor was
// deleted
func (filter *NamespaceFilter) RemoveMonitored(namespace string) {
	filter.mutex.Lock()
	defer filter.mutex.Unlock()

	filter.monitored.Delete(namespace)
}

// AddExempt registers a namespace selected by an ExemptNamespace
func (filter *NamespaceFilter) AddExempt(namespace string) {
	filter.mutex.Lock()
	defer filter.mutex.Unlock()

	filter.exempt.Put(namespace)
}

// RemoveExempt unregisters a namespace whose ExemptNamespace was
// deleted
func (filter *NamespaceFilter) RemoveExempt(namespace string) {
	filter.mutex.Lock()
	defer filter.mutex.Unlock()

	filter.exempt.Delete(namespace)
}
