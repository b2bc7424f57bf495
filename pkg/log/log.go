/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package log contains the logging subsystem of the operator
package log

import (
	"context"

	"github.com/go-logr/logr"
)

// Log is the logger that will be used in this package
var Log = logr.Discard()

// SetLogger will set the backing logr implementation for the operator.
func SetLogger(logger logr.Logger) {
	Log = logger
}

// WithName returns a logger with the given name attached, based on the
// process-wide logger
func WithName(name string) logr.Logger {
	return Log.WithName(name)
}

// FromContext returns the logger attached to the passed context, or the
// process-wide logger when the context carries none
func FromContext(ctx context.Context) logr.Logger {
	if logger, err := logr.FromContext(ctx); err == nil {
		return logger
	}
	return Log
}

// IntoContext returns a copy of the passed context carrying the given
// logger
func IntoContext(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// SetupLogger attaches the process-wide logger to the passed context,
// unless the context already carries one, and returns both
func SetupLogger(ctx context.Context) (logr.Logger, context.Context) {
	if logger, err := logr.FromContext(ctx); err == nil {
		return logger, ctx
	}
	return Log, logr.NewContext(ctx, Log)
}
