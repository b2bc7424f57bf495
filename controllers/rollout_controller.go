/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package controllers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	apierrs "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	apiv1 "github.com/asalaboratory/vpa-rollout-operator/api/v1"
	"github.com/asalaboratory/vpa-rollout-operator/internal/configuration"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/log"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/metrics"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/queue"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/recommender"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/utils/hash"
)

// RolloutReconciler is the reconciliation engine of the operator. It
// drains the event queue with a pool of workers; every worker handles
// one target Deployment end-to-end before taking the next key, so two
// reconcile passes for the same target never run concurrently while
// different targets proceed fully in parallel.
type RolloutReconciler struct {
	client      client.Client
	recorder    record.EventRecorder
	resolver    *StrategyResolver
	namespaces  *NamespaceFilter
	recommender recommender.Provider
	executor    *RolloutExecutor
	queue       *queue.EventQueue
	states      *rolloutStateArena

	workerCount          int
	permissionRetryLimit int
	passTimeout          time.Duration
}

// +kubebuilder:rbac:groups=asalaboratory.com,resources=rolloutstrategies,verbs=get;list;watch
// +kubebuilder:rbac:groups=asalaboratory.com,resources=namespacemonitors,verbs=get;list;watch
// +kubebuilder:rbac:groups=asalaboratory.com,resources=exemptnamespaces,verbs=get;list;watch
// +kubebuilder:rbac:groups=autoscaling.k8s.io,resources=verticalpodautoscalers,verbs=get;list;watch;create;delete
// +kubebuilder:rbac:groups="apps",resources=deployments,verbs=get;list;watch;patch
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch

// NewRolloutReconciler creates a RolloutReconciler configured from the
// current operator configuration
func NewRolloutReconciler(mgr manager.Manager, provider recommender.Provider) *RolloutReconciler {
	config := configuration.Current
	return &RolloutReconciler{
		client:      mgr.GetClient(),
		recorder:    mgr.GetEventRecorderFor("vpa-rollout-operator"),
		resolver:    NewStrategyResolver(),
		namespaces:  NewNamespaceFilter(config.ExemptNamespaceSet()),
		recommender: provider,
		executor:    NewRolloutExecutor(mgr.GetClient()),
		queue:       queue.New(config.RetryBaseDelay(), config.RetryMaxDelay()),
		states:      newRolloutStateArena(),

		workerCount:          config.WorkerCount,
		permissionRetryLimit: config.PermissionRetryLimit,
		passTimeout:          config.ReconcilePassTimeout(),
	}
}

// Start implements manager.Runnable, running the worker pool until the
// passed context is cancelled. In-flight reconcile passes are allowed
// to finish, bounded by their own deadline; pending keys are discarded,
// since on restart the state is reconstructed from a full relist of the
// watched resources.
func (r *RolloutReconciler) Start(ctx context.Context) error {
	contextLogger := log.FromContext(ctx).WithName("engine")
	contextLogger.Info("Starting reconcile workers", "count", r.workerCount)

	go func() {
		<-ctx.Done()
		r.queue.ShutDown()
	}()

	var workers sync.WaitGroup
	for i := 0; i < r.workerCount; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for r.processNextItem(ctx) {
			}
		}()
	}
	workers.Wait()

	contextLogger.Info("Reconcile workers terminated")
	return nil
}

// NeedLeaderElection makes sure only the elected leader runs the
// engine when leader election is enabled
func (r *RolloutReconciler) NeedLeaderElection() bool {
	return true
}

// processNextItem runs one reconcile pass for the next key in the
// queue, returning false when the queue has been shut down
func (r *RolloutReconciler) processNextItem(ctx context.Context) bool {
	key, ok := r.queue.Dequeue()
	if !ok {
		return false
	}
	defer r.queue.Done(key)

	passCtx, cancel := r.passContext(ctx)
	defer cancel()

	metrics.ReconcilePasses.Inc()
	r.completePass(passCtx, key, r.reconcileKey(passCtx, key))
	return true
}

// passContext bounds one reconcile pass. The pass is detached from the
// shutdown cancellation, so an in-flight pass finishes its work when
// the engine stops, and carries its own deadline, so a hung API server
// connection cannot pin a worker on one key forever.
func (r *RolloutReconciler) passContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), r.passTimeout)
}

// completePass translates the outcome of a reconcile pass into the
// retry scheduling of the queue. The queue is the only component
// scheduling retries: the engine never sleeps on its own.
func (r *RolloutReconciler) completePass(ctx context.Context, key queue.Key, err error) {
	contextLogger := log.FromContext(ctx).WithValues("target", key.String())

	switch {
	case err == nil:
		r.queue.Forget(key)

	case errors.Is(err, ErrInvalidSpec):
		// A retry can't fix a permanently-bad object: wait for the
		// next change of the strategy object to re-trigger this target
		contextLogger.Info("Skipping target with invalid rollout strategy",
			"err", err.Error())
		metrics.ReconcileErrors.WithLabelValues("invalid_spec").Inc()
		r.queue.Forget(key)

	case apierrs.IsNotFound(err):
		// The target vanished mid-pass. Its deletion is itself an
		// event which will re-trigger a pass if relevant.
		r.states.Evict(key)
		r.queue.Forget(key)

	case errors.Is(err, context.DeadlineExceeded) || apierrs.IsTimeout(err):
		metrics.ReconcileErrors.WithLabelValues("timeout").Inc()
		contextLogger.Info("Reconcile pass exceeded its deadline, will retry with backoff",
			"err", err.Error(), "attempts", r.queue.Retries(key))
		r.queue.Retry(key)

	case isPermissionError(err):
		metrics.ReconcileErrors.WithLabelValues("permission").Inc()
		if r.queue.Retries(key) >= r.permissionRetryLimit {
			contextLogger.Error(err, "Giving up on target, RBAC denies the mutation",
				"attempts", r.queue.Retries(key))
			r.queue.Forget(key)
			return
		}
		r.queue.Retry(key)

	default:
		metrics.ReconcileErrors.WithLabelValues("transient").Inc()
		contextLogger.Info("Reconcile pass failed, will retry with backoff",
			"err", err.Error(), "attempts", r.queue.Retries(key))
		r.queue.Retry(key)
	}
}

// reconcileKey runs one reconcile pass for a single target. The target
// and its recommendation are re-fetched at the start of every pass:
// watch delivery is at-least-once and events may be stale, so the
// engine acts on the latest known state, never on queue payload.
func (r *RolloutReconciler) reconcileKey(ctx context.Context, key queue.Key) error {
	contextLogger := log.FromContext(ctx).WithValues("target", key.String())

	var deployment appsv1.Deployment
	if err := r.client.Get(ctx,
		types.NamespacedName{Namespace: key.Namespace, Name: key.Name},
		&deployment); err != nil {
		if apierrs.IsNotFound(err) {
			r.states.Evict(key)
			return r.deleteManagedRecommender(ctx, key)
		}
		return fmt.Errorf("cannot get the target deployment: %w", err)
	}

	if !r.namespaces.IsManaged(key.Namespace) {
		// A namespace can become exempt after the operator acted on it:
		// stop feeding recommendations to targets living there
		return r.deleteManagedRecommender(ctx, key)
	}

	strategy, err := r.resolver.Resolve(key.Namespace, key.Name)
	if err != nil {
		return err
	}
	if strategy == apiv1.RolloutStrategyOff {
		return nil
	}

	if err := r.ensureRecommender(ctx, &deployment); err != nil {
		return err
	}

	snapshot, err := r.recommender.Get(ctx, key.Namespace, key.Name)
	if err != nil {
		return err
	}
	if snapshot == nil {
		// No recommendation yet: the VPA status update will
		// re-trigger this target
		return nil
	}

	state := r.states.Obtain(key, func() *RolloutState {
		return seedStateFromDeployment(&deployment)
	})

	action := decideAction(strategy, state, snapshot)
	if action.Kind == ActionNone {
		if templateHash, err := hash.ComputeTemplateHash(&deployment.Spec.Template); err == nil {
			state.LastObservedTemplateHash = templateHash
		}
		return nil
	}

	if err := r.executor.Apply(ctx, &deployment, action); err != nil {
		return err
	}

	state.recordApplied(action, &deployment.Spec.Template)
	metrics.RolloutsTriggered.WithLabelValues(string(strategy), string(action.Kind)).Inc()
	r.recorder.Eventf(&deployment, "Normal", "RolloutTriggered",
		"Applied recommendation %v with strategy %v", snapshot.Version, strategy)
	contextLogger.Info("Triggered rollout",
		"strategy", strategy,
		"action", action.Kind,
		"recommendationVersion", snapshot.Version)

	return nil
}

// decideAction is the strategy state machine. Keeping every behavior
// in one function makes the whole state machine auditable in one
// place.
func decideAction(
	strategy apiv1.RolloutStrategyType,
	state *RolloutState,
	snapshot *recommender.Snapshot,
) RolloutAction {
	switch strategy {
	case apiv1.RolloutStrategyInitial:
		// Only the first sighting triggers an action; subsequent
		// recommendation changes are ignored
		if !state.HasActed() {
			return RolloutAction{Kind: ActionPatchTemplate, Snapshot: snapshot}
		}

	case apiv1.RolloutStrategyAuto:
		if snapshot.Version != state.LastAppliedRecommendationVersion {
			return RolloutAction{Kind: ActionPatchTemplate, Snapshot: snapshot}
		}

	case apiv1.RolloutStrategyRecreate:
		if snapshot.Version != state.LastAppliedRecommendationVersion {
			return RolloutAction{Kind: ActionForceRecreate, Snapshot: snapshot}
		}
	}

	return RolloutAction{Kind: ActionNone}
}
