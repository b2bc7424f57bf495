/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package log

import (
	"flag"

	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
	"k8s.io/klog/v2"
	controllerruntime "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const (
	// ErrorLevelString is the string representation of the error level
	ErrorLevelString = "error"

	// WarningLevelString is the string representation of the warning level
	WarningLevelString = "warning"

	// InfoLevelString is the string representation of the info level
	InfoLevelString = "info"

	// DebugLevelString is the string representation of the debug level
	DebugLevelString = "debug"

	// DefaultLevelString is the string representation of the default level
	DefaultLevelString = InfoLevelString
)

// Flags contains the set of values necessary for configuring the logging
// subsystem of the manager
type Flags struct {
	zapOptions zap.Options

	logLevel string
}

// AddFlags binds logging configuration flags to a given flagset
func (l *Flags) AddFlags(flags *pflag.FlagSet) {
	loggingFlagSet := &flag.FlagSet{}
	loggingFlagSet.StringVar(&l.logLevel, "log-level", DefaultLevelString,
		"the desired log level, one of error, warning, info and debug")
	l.zapOptions.BindFlags(loggingFlagSet)
	flags.AddGoFlagSet(loggingFlagSet)
}

// ConfigureLogging configure the logging honoring the flags
// passed from the user
func (l *Flags) ConfigureLogging() {
	logger := zap.New(
		zap.UseFlagOptions(&l.zapOptions),
		zap.Level(parseLevel(l.logLevel)),
	)

	controllerruntime.SetLogger(logger)
	klog.SetLogger(logger)
	SetLogger(logger)

	if !isValidLevel(l.logLevel) {
		logger.Info("Invalid log level, defaulting",
			"level", l.logLevel, "default", DefaultLevelString)
	}
}

func isValidLevel(level string) bool {
	switch level {
	case ErrorLevelString, WarningLevelString, InfoLevelString, DebugLevelString:
		return true
	default:
		return false
	}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case ErrorLevelString:
		return zapcore.ErrorLevel
	case WarningLevelString:
		return zapcore.WarnLevel
	case DebugLevelString:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
