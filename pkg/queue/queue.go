/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package queue implements the work queue feeding the reconciliation
// engine. Keys identify a target Deployment by namespace and name.
//
// The queue coalesces repeated enqueues of the same key, including
// while the key is being processed, and serializes the processing of a
// single key: a key handed to a worker is not handed to another one
// until the first worker declares it done. Failed keys are re-enqueued
// with exponential backoff.
package queue

import (
	"time"

	"golang.org/x/time/rate"
	"k8s.io/client-go/util/workqueue"
)

// Key identifies a target Deployment inside the queue
type Key struct {
	// Namespace is the namespace of the target Deployment
	Namespace string

	// Name is the name of the target Deployment
	Name string
}

// String implements the Stringer interface, used in logs
func (key Key) String() string {
	return key.Namespace + "/" + key.Name
}

// EventQueue is a deduplicating work queue with per-item exponential
// backoff on failures
type EventQueue struct {
	queue workqueue.TypedRateLimitingInterface[Key]
}

// New creates a new event queue. Failed keys are retried after a delay
// starting at baseDelay and doubling on every failure up to maxDelay,
// with a small amount of jitter to avoid thundering herds.
func New(baseDelay, maxDelay time.Duration) *EventQueue {
	limiter := workqueue.NewTypedMaxOfRateLimiter[Key](
		newItemExponentialBackoff(baseDelay, maxDelay),
		// Overall queue-wide backstop, like the one used by the
		// default controller rate limiter
		&workqueue.TypedBucketRateLimiter[Key]{
			Limiter: rate.NewLimiter(rate.Limit(10), 100),
		},
	)

	return &EventQueue{
		queue: workqueue.NewTypedRateLimitingQueue(limiter),
	}
}

// Enqueue adds a key to the queue. If the key is already pending, or
// currently being processed, the repeated enqueue is coalesced into a
// single pending re-process.
func (q *EventQueue) Enqueue(key Key) {
	q.queue.Add(key)
}

// Dequeue blocks until a key is available and returns it, marking it as
// being processed. The second return value is false when the queue has
// been shut down and the worker must exit.
func (q *EventQueue) Dequeue() (Key, bool) {
	key, shutdown := q.queue.Get()
	return key, !shutdown
}

// Done marks the processing of a key as terminated. If the key was
// re-enqueued while being processed it immediately becomes available
// again.
func (q *EventQueue) Done(key Key) {
	q.queue.Done(key)
}

// Retry re-enqueues a key whose processing failed, after the backoff
// delay associated with its failure count
func (q *EventQueue) Retry(key Key) {
	q.queue.AddRateLimited(key)
}

// Forget resets the failure count of a key. Must be called after every
// successful processing, and when giving up on a key.
func (q *EventQueue) Forget(key Key) {
	q.queue.Forget(key)
}

// Retries returns how many times the processing of this key failed
// since the last time it succeeded
func (q *EventQueue) Retries(key Key) int {
	return q.queue.NumRequeues(key)
}

// Len returns the number of keys currently pending, not counting the
// ones being processed
func (q *EventQueue) Len() int {
	return q.queue.Len()
}

// ShutDown stops accepting new keys and unblocks every worker waiting
// in Dequeue. Keys still pending are discarded: on restart the state is
// reconstructed from a full relist of the watched resources.
func (q *EventQueue) ShutDown() {
	q.queue.ShutDown()
}
