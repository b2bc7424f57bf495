/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package controllers

import (
	"sync"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/asalaboratory/vpa-rollout-operator/pkg/queue"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/utils/hash"
)

// RolloutState tracks what the engine applied to one target Deployment.
// It lives in process memory only: on restart it is reconstructed from
// the annotations the executor stamps on the pod template.
type RolloutState struct {
	// LastAppliedRecommendationVersion is the version stamp of the
	// last recommendation applied to the target
	LastAppliedRecommendationVersion string

	// LastActionKind is the kind of the last applied action, empty
	// when no action was ever applied
	LastActionKind ActionKind

	// LastActionTime is when the last action was applied
	LastActionTime time.Time

	// LastObservedTemplateHash is the fingerprint of the pod template
	// as last observed by the engine
	LastObservedTemplateHash string
}

// HasActed is true when at least one action was ever applied to the
// target, in this process or in a previous one
func (state *RolloutState) HasActed() bool {
	return state.LastActionKind != ActionNone
}

// recordApplied updates the state after the API server accepted an
// action. The recorded data is derived entirely from the committed
// observation, so a crash between the mutation and this update loses
// nothing: the next pass re-reads the same truth from the cluster.
func (state *RolloutState) recordApplied(action RolloutAction, template *corev1.PodTemplateSpec) {
	state.LastAppliedRecommendationVersion = action.Snapshot.Version
	state.LastActionKind = action.Kind
	state.LastActionTime = time.Now()
	if templateHash, err := hash.ComputeTemplateHash(template); err == nil {
		state.LastObservedTemplateHash = templateHash
	}
}

// seedStateFromDeployment builds the initial state of a target from
// the annotations recorded on its pod template, if any
func seedStateFromDeployment(deployment *appsv1.Deployment) *RolloutState {
	state := &RolloutState{}

	annotations := deployment.Spec.Template.Annotations
	if version, ok := annotations[AppliedRecommendationAnnotation]; ok {
		state.LastAppliedRecommendationVersion = version
		state.LastActionKind = ActionPatchTemplate
		if stamp, err := time.Parse(time.RFC3339, annotations[RolloutTriggerAnnotation]); err == nil {
			state.LastActionTime = stamp
		}
	}

	if templateHash, err := hash.ComputeTemplateHash(&deployment.Spec.Template); err == nil {
		state.LastObservedTemplateHash = templateHash
	}

	return state
}

// rolloutStateArena holds the RolloutState of every known target,
// keyed by namespace and name. Entries are created lazily and evicted
// only when the target is deleted.
//
// The mutex protects the map itself. Each entry is only ever touched
// by the worker holding the corresponding key in-flight, so the
// entries need no locking of their own.
type rolloutStateArena struct {
	mutex   sync.Mutex
	entries map[queue.Key]*RolloutState
}

func newRolloutStateArena() *rolloutStateArena {
	return &rolloutStateArena{
		entries: make(map[queue.Key]*RolloutState),
	}
}

// Obtain returns the state of a target, creating it with the seed
// function on first sight
func (arena *rolloutStateArena) Obtain(key queue.Key, seed func() *RolloutState) *RolloutState {
	arena.mutex.Lock()
	defer arena.mutex.Unlock()

	if state, ok := arena.entries[key]; ok {
		return state
	}

	state := seed()
	arena.entries[key] = state
	return state
}

// Evict drops the state of a deleted target
func (arena *rolloutStateArena) Evict(key queue.Key) {
	arena.mutex.Lock()
	defer arena.mutex.Unlock()

	delete(arena.entries, key)
}
