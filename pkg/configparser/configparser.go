/*
This file is part of the VPA Rollout Operator.

Copyright (C) 2024-2026 ASA Laboratory
*/

// Package configparser loads a configuration structure from the process
// environment and from the data of a Kubernetes ConfigMap. Every field
// of the structure carrying an `env` tag is bound to the variable with
// that name; values from the ConfigMap data win over the environment.
package configparser

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/asalaboratory/vpa-rollout-operator/pkg/log"
)

var configparserLog = log.WithName("configparser")

// ReadConfigMap reads the configuration from the environment and the
// passed in data map, writing the result into target. Fields that are
// missing from both sources, or whose value cannot be parsed, keep the
// value they have in defaults.
func ReadConfigMap(target interface{}, defaults interface{}, data map[string]string) {
	ReadConfigMapWithEnvironment(target, defaults, data, OsEnvironment{})
}

// ReadConfigMapWithEnvironment works like ReadConfigMap, getting the
// environment values from the passed source. Used in the unit tests.
func ReadConfigMapWithEnvironment(
	target interface{},
	defaults interface{},
	data map[string]string,
	env EnvironmentSource,
) {
	targetValue := reflect.ValueOf(target).Elem()
	defaultsValue := reflect.ValueOf(defaults).Elem()
	targetType := targetValue.Type()

	for idx := 0; idx < targetType.NumField(); idx++ {
		field := targetType.Field(idx)
		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value := env.Getenv(envName)
		if mapValue, ok := data[envName]; ok {
			value = mapValue
		}

		fieldValue := targetValue.Field(idx)
		defaultValue := defaultsValue.Field(idx)
		if value == "" {
			fieldValue.Set(defaultValue)
			continue
		}

		switch field.Type.Kind() {
		case reflect.String:
			fieldValue.SetString(value)

		case reflect.Slice:
			fieldValue.Set(reflect.ValueOf(splitAndTrim(value)))

		case reflect.Int:
			intValue, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				configparserLog.Info(
					"Skipping invalid integer value, using default",
					"name", envName, "value", value)
				fieldValue.Set(defaultValue)
				continue
			}
			fieldValue.SetInt(intValue)

		case reflect.Bool:
			boolValue, err := strconv.ParseBool(value)
			if err != nil {
				configparserLog.Info(
					"Skipping invalid boolean value, using default",
					"name", envName, "value", value)
				fieldValue.Set(defaultValue)
				continue
			}
			fieldValue.SetBool(boolValue)

		default:
			configparserLog.Info(
				"Skipping configuration field of unsupported type",
				"name", envName, "type", field.Type.Kind().String())
		}
	}
}

// splitAndTrim slices a comma-separated string into the substrings
// between the commas, trimming the whitespace around every substring
func splitAndTrim(commaSeparatedList string) []string {
	list := strings.Split(commaSeparatedList, ",")
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}
	return list
}
