/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package queue

import (
	"math"
	"sync"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/workqueue"
)

// backoffJitterFactor spreads the retry delays of keys failing at the
// same time, e.g. after an API server hiccup
const backoffJitterFactor = 0.1

// itemExponentialBackoff is a per-item rate limiter doubling the delay
// on every failure, capped at maxDelay, with jitter
type itemExponentialBackoff struct {
	mutex    sync.Mutex
	failures map[Key]int

	baseDelay time.Duration
	maxDelay  time.Duration
}

// newItemExponentialBackoff creates an itemExponentialBackoff limiter
func newItemExponentialBackoff(baseDelay, maxDelay time.Duration) workqueue.TypedRateLimiter[Key] {
	return &itemExponentialBackoff{
		failures:  make(map[Key]int),
		baseDelay: baseDelay,
		maxDelay:  maxDelay,
	}
}

// When returns the delay to wait before processing this key again
func (r *itemExponentialBackoff) When(key Key) time.Duration {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	exponent := r.failures[key]
	r.failures[key]++

	backoff := float64(r.baseDelay.Nanoseconds()) * math.Pow(2, float64(exponent))
	if backoff > float64(r.maxDelay.Nanoseconds()) {
		return wait.Jitter(r.maxDelay, backoffJitterFactor)
	}

	return wait.Jitter(time.Duration(backoff), backoffJitterFactor)
}

// NumRequeues returns how many failures the key accumulated
func (r *itemExponentialBackoff) NumRequeues(key Key) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.failures[key]
}

// Forget resets the failure count of the key
func (r *itemExponentialBackoff) Forget(key Key) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.failures, key)
}
