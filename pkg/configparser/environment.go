/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

package configparser

import (
	"os"
)

// EnvironmentSource is an interface to identify an environment values source.
type EnvironmentSource interface {
	Getenv(key string) string
}

// OsEnvironment is an EnvironmentSource that fetch data from the OS environment.
type OsEnvironment struct{}

// Getenv retrieves the value of the environment variable named by the key.
func (OsEnvironment) Getenv(key string) string {
	return os.Getenv(key)
}

// MapEnvironment is an EnvironmentSource backed by a map, used in the
// unit tests
type MapEnvironment map[string]string

// Getenv retrieves the value of the variable named by the key.
func (env MapEnvironment) Getenv(key string) string {
	return env[key]
}
