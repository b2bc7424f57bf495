/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package controllers

import (
	"sort"
	"sync/atomic"

	apiv1 "github.com/asalaboratory/vpa-rollout-operator/api/v1"
)

// strategiesByNamespace maps a namespace to its RolloutStrategy
// objects, kept sorted by object name
type strategiesByNamespace map[string][]apiv1.RolloutStrategy

// StrategyResolver maps a target Deployment to the RolloutStrategy
// governing it. A strategy with a matching explicit target wins over
// the namespace default; when neither exists the behavior is Off.
//
// The resolver keeps an immutable snapshot of the known strategies,
// swapped atomically on every watch event, so the reconcile workers
// read it without contention while the watch listener writes.
type StrategyResolver struct {
	snapshot atomic.Pointer[strategiesByNamespace]
}

// NewStrategyResolver creates an empty StrategyResolver
func NewStrategyResolver() *StrategyResolver {
	resolver := &StrategyResolver{}
	empty := make(strategiesByNamespace)
	resolver.snapshot.Store(&empty)
	return resolver
}

// Store inserts or replaces a RolloutStrategy in the snapshot
func (resolver *StrategyResolver) Store(strategy *apiv1.RolloutStrategy) {
	resolver.swap(func(strategies strategiesByNamespace) {
		list := strategies[strategy.Namespace]
		replaced := false
		for idx := range list {
			if list[idx].Name == strategy.Name {
				list[idx] = *strategy
				replaced = true
				break
			}
		}
		if !replaced {
			list = append(list, *strategy)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		strategies[strategy.Namespace] = list
	})
}

// Remove deletes a RolloutStrategy from the snapshot. Removing an
// unknown strategy is a no-op.
func (resolver *StrategyResolver) Remove(namespace, name string) {
	resolver.swap(func(strategies strategiesByNamespace) {
		list := strategies[namespace]
		for idx := range list {
			if list[idx].Name == name {
				strategies[namespace] = append(list[:idx:idx], list[idx+1:]...)
				break
			}
		}
		if len(strategies[namespace]) == 0 {
			delete(strategies, namespace)
		}
	})
}

// Resolve returns the effective strategy for the Deployment with the
// given namespace and name.
//
// Two RolloutStrategy objects naming the same explicit target is not
// prevented by the schema: the lexicographically first by object name
// wins, making the resolution deterministic.
func (resolver *StrategyResolver) Resolve(namespace, deploymentName string) (apiv1.RolloutStrategyType, error) {
	strategies := *resolver.snapshot.Load()

	var namespaceDefault *apiv1.RolloutStrategy
	for idx := range strategies[namespace] {
		strategy := &strategies[namespace][idx]
		if strategy.Spec.Target == deploymentName {
			return effectiveStrategy(strategy)
		}
		if strategy.IsNamespaceDefault() && namespaceDefault == nil {
			namespaceDefault = strategy
		}
	}

	if namespaceDefault != nil {
		return effectiveStrategy(namespaceDefault)
	}

	return apiv1.RolloutStrategyOff, nil
}

// namespaceStrategies returns the strategies known for a namespace,
// sorted by object name
func (resolver *StrategyResolver) namespaceStrategies(namespace string) []apiv1.RolloutStrategy {
	strategies := *resolver.snapshot.Load()
	return strategies[namespace]
}

// effectiveStrategy validates the strategy value of the winning object
func effectiveStrategy(strategy *apiv1.RolloutStrategy) (apiv1.RolloutStrategyType, error) {
	if !apiv1.IsKnownStrategy(strategy.Spec.Strategy) {
		return apiv1.RolloutStrategyOff, newInvalidSpecError(strategy.Name, strategy.Spec.Strategy)
	}
	return strategy.Spec.Strategy, nil
}

// swap clones the current snapshot, applies the mutation to the clone,
// and atomically publishes it
func (resolver *StrategyResolver) swap(mutate func(strategiesByNamespace)) {
	current := *resolver.snapshot.Load()
	next := make(strategiesByNamespace, len(current))
	for namespace, list := range current {
		next[namespace] = append([]apiv1.RolloutStrategy(nil), list...)
	}
	mutate(next)
	resolver.snapshot.Store(&next)
}
