/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package controllers

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	"k8s.io/apimachinery/pkg/api/equality"
	vpav1 "k8s.io/autoscaler/vertical-pod-autoscaler/pkg/apis/autoscaling.k8s.io/v1"
	toolscache "k8s.io/client-go/tools/cache"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	apiv1 "github.com/asalaboratory/vpa-rollout-operator/api/v1"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/log"
	"github.com/asalaboratory/vpa-rollout-operator/pkg/queue"
)

// SetupWithManager registers the watch handlers feeding the event
// queue and adds the engine to the manager as a runnable
func (r *RolloutReconciler) SetupWithManager(ctx context.Context, mgr manager.Manager) error {
	setups := []func(context.Context, manager.Manager) error{
		r.setupDeploymentWatch,
		r.setupStrategyWatch,
		r.setupRecommendationWatch,
		r.setupNamespaceMonitorWatch,
		r.setupExemptNamespaceWatch,
	}
	for _, setup := range setups {
		if err := setup(ctx, mgr); err != nil {
			return err
		}
	}

	return mgr.Add(r)
}

// setupDeploymentWatch feeds the queue with the keys of created,
// changed and deleted Deployments. Status-only updates are filtered
// out comparing the object generation, which only moves on spec
// changes.
func (r *RolloutReconciler) setupDeploymentWatch(ctx context.Context, mgr manager.Manager) error {
	informer, err := mgr.GetCache().GetInformer(ctx, &appsv1.Deployment{})
	if err != nil {
		return fmt.Errorf("cannot get the deployment informer: %w", err)
	}

	_, err = informer.AddEventHandler(toolscache.ResourceEventHandlerFuncs{
		AddFunc: func(obj interface{}) {
			r.enqueueObject(obj)
		},
		UpdateFunc: func(oldObj, newObj interface{}) {
			oldDeployment, oldOk := oldObj.(*appsv1.Deployment)
			newDeployment, newOk := newObj.(*appsv1.Deployment)
			if oldOk && newOk && oldDeployment.Generation == newDeployment.Generation {
				return
			}
			r.enqueueObject(newObj)
		},
		DeleteFunc: func(obj interface{}) {
			r.enqueueObject(obj)
		},
	})
	return err
}

// setupStrategyWatch keeps the resolver snapshot in sync with the
// RolloutStrategy objects and re-triggers the targets a changed
// strategy governs
func (r *RolloutReconciler) setupStrategyWatch(ctx context.Context, mgr manager.Manager) error {
	informer, err := mgr.GetCache().GetInformer(ctx, &apiv1.RolloutStrategy{})
	if err != nil {
		return fmt.Errorf("cannot get the rollout strategy informer: %w", err)
	}

	storeStrategy := func(obj interface{}) {
		strategy, ok := obj.(*apiv1.RolloutStrategy)
		if !ok {
			return
		}
		r.resolver.Store(strategy.DeepCopy())
		r.enqueueStrategyTargets(ctx, mgr, strategy)
	}

	_, err = informer.AddEventHandler(toolscache.ResourceEventHandlerFuncs{
		AddFunc: storeStrategy,
		UpdateFunc: func(_, newObj interface{}) {
			storeStrategy(newObj)
		},
		DeleteFunc: func(obj interface{}) {
			strategy, ok := decodeObject[*apiv1.RolloutStrategy](obj)
			if !ok {
				return
			}
			r.resolver.Remove(strategy.Namespace, strategy.Name)
			r.enqueueStrategyTargets(ctx, mgr, strategy)
		},
	})
	return err
}

// setupRecommendationWatch re-triggers a target when the
// recommendation of its paired VPA changes
func (r *RolloutReconciler) setupRecommendationWatch(ctx context.Context, mgr manager.Manager) error {
	informer, err := mgr.GetCache().GetInformer(ctx, &vpav1.VerticalPodAutoscaler{})
	if err != nil {
		return fmt.Errorf("cannot get the VPA informer: %w", err)
	}

	_, err = informer.AddEventHandler(toolscache.ResourceEventHandlerFuncs{
		AddFunc: func(obj interface{}) {
			r.enqueueObject(obj)
		},
		UpdateFunc: func(oldObj, newObj interface{}) {
			oldVPA, oldOk := oldObj.(*vpav1.VerticalPodAutoscaler)
			newVPA, newOk := newObj.(*vpav1.VerticalPodAutoscaler)
			if oldOk && newOk &&
				equality.Semantic.DeepEqual(
					oldVPA.Status.Recommendation, newVPA.Status.Recommendation) {
				return
			}
			r.enqueueObject(newObj)
		},
		DeleteFunc: func(obj interface{}) {
			// A VPA deleted out-of-band is recreated by the next pass
			// on its target
			r.enqueueObject(obj)
		},
	})
	return err
}

// setupNamespaceMonitorWatch keeps the namespace filter in sync with
// the NamespaceMonitor objects
func (r *RolloutReconciler) setupNamespaceMonitorWatch(ctx context.Context, mgr manager.Manager) error {
	informer, err := mgr.GetCache().GetInformer(ctx, &apiv1.NamespaceMonitor{})
	if err != nil {
		return fmt.Errorf("cannot get the namespace monitor informer: %w", err)
	}

	_, err = informer.AddEventHandler(toolscache.ResourceEventHandlerFuncs{
		AddFunc: func(obj interface{}) {
			monitor, ok := obj.(*apiv1.NamespaceMonitor)
			if !ok {
				return
			}
			r.namespaces.AddMonitored(monitor.Spec.Namespace)
			r.enqueueNamespace(ctx, mgr, monitor.Spec.Namespace)
		},
		UpdateFunc: func(oldObj, newObj interface{}) {
			oldMonitor, oldOk := oldObj.(*apiv1.NamespaceMonitor)
			newMonitor, newOk := newObj.(*apiv1.NamespaceMonitor)
			if !oldOk || !newOk || oldMonitor.Spec.Namespace == newMonitor.Spec.Namespace {
				return
			}
			r.namespaces.RemoveMonitored(oldMonitor.Spec.Namespace)
			r.namespaces.AddMonitored(newMonitor.Spec.Namespace)
			r.enqueueNamespace(ctx, mgr, newMonitor.Spec.Namespace)
		},
		DeleteFunc: func(obj interface{}) {
			monitor, ok := decodeObject[*apiv1.NamespaceMonitor](obj)
			if !ok {
				return
			}
			r.namespaces.RemoveMonitored(monitor.Spec.Namespace)
			r.enqueueNamespace(ctx, mgr, monitor.Spec.Namespace)
		},
	})
	return err
}

// setupExemptNamespaceWatch keeps the namespace filter in sync with
// the ExemptNamespace objects
func (r *RolloutReconciler) setupExemptNamespaceWatch(ctx context.Context, mgr manager.Manager) error {
	informer, err := mgr.GetCache().GetInformer(ctx, &apiv1.ExemptNamespace{})
	if err != nil {
		return fmt.Errorf("cannot get the exempt namespace informer: %w", err)
	}

	_, err = informer.AddEventHandler(toolscache.ResourceEventHandlerFuncs{
		AddFunc: func(obj interface{}) {
			exemption, ok := obj.(*apiv1.ExemptNamespace)
			if !ok {
				return
			}
			r.namespaces.AddExempt(exemption.Spec.Namespace)
			r.enqueueNamespace(ctx, mgr, exemption.Spec.Namespace)
		},
		DeleteFunc: func(obj interface{}) {
			exemption, ok := decodeObject[*apiv1.ExemptNamespace](obj)
			if !ok {
				return
			}
			r.namespaces.RemoveExempt(exemption.Spec.Namespace)
			r.enqueueNamespace(ctx, mgr, exemption.Spec.Namespace)
		},
	})
	return err
}

// enqueueObject adds to the queue the key of the Deployment an event
// refers to. VPAs are paired with their target by name, so the same
// key extraction works for both kinds.
func (r *RolloutReconciler) enqueueObject(obj interface{}) {
	object, ok := decodeObject[client.Object](obj)
	if !ok {
		return
	}
	r.queue.Enqueue(queue.Key{
		Namespace: object.GetNamespace(),
		Name:      object.GetName(),
	})
}

// enqueueStrategyTargets re-triggers the Deployments governed by a
// strategy: the explicit target for a specific strategy, every
// Deployment of the namespace for a default one
func (r *RolloutReconciler) enqueueStrategyTargets(
	ctx context.Context,
	mgr manager.Manager,
	strategy *apiv1.RolloutStrategy,
) {
	if !strategy.IsNamespaceDefault() {
		r.queue.Enqueue(queue.Key{
			Namespace: strategy.Namespace,
			Name:      strategy.Spec.Target,
		})
		return
	}

	r.enqueueNamespace(ctx, mgr, strategy.Namespace)
}

// enqueueNamespace re-triggers every Deployment of a namespace
func (r *RolloutReconciler) enqueueNamespace(ctx context.Context, mgr manager.Manager, namespace string) {
	var deployments appsv1.DeploymentList
	if err := mgr.GetClient().List(ctx, &deployments,
		client.InNamespace(namespace)); err != nil {
		log.FromContext(ctx).Error(err, "while listing the deployments of a namespace",
			"namespace", namespace)
		return
	}

	for idx := range deployments.Items {
		r.queue.Enqueue(queue.Key{
			Namespace: deployments.Items[idx].Namespace,
			Name:      deployments.Items[idx].Name,
		})
	}
}

// decodeObject extracts a typed object from a watch event payload,
// unwrapping the tombstones delivered when a deletion was missed
func decodeObject[T any](obj interface{}) (T, bool) {
	if object, ok := obj.(T); ok {
		return object, true
	}
	if tombstone, ok := obj.(toolscache.DeletedFinalStateUnknown); ok {
		object, ok := tombstone.Obj.(T)
		return object, ok
	}
	var zero T
	return zero, false
}
