//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Package optconfig loads the optimiser's YAML + environment-variable
// tunables: a typed struct with yaml tags, built-in defaults, and
// OPTIMISER_* environment overrides applied after the YAML unmarshal.
package optconfig

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds optimiser tunables. Absence of a config file is not an
// error: Load returns defaultConfig() with only the environment
// overrides applied.
type Config struct {
	Trace bool `yaml:"trace"`
	// MetricsEnabled gates whether the Optimiser records to its
	// optmetrics.Collector; false makes every recording call a no-op
	// even if a live collector was supplied.
	MetricsEnabled bool `yaml:"metricsEnabled"`
	// EliteSetMinChildren is a floor below which elite-set pruning is
	// skipped even when the child count exceeds k; it lets an operator
	// force pruning off for diagnosis without touching query trees.
	// The default of 1 never skips anything pruning itself wouldn't.
	EliteSetMinChildren int `yaml:"eliteSetMinChildren"`
}

func defaultConfig() Config {
	return Config{
		Trace:               false,
		MetricsEnabled:      true,
		EliteSetMinChildren: 1,
	}
}

// Load reads a YAML document (if path is non-empty) and applies
// OPTIMISER_* environment-variable overrides on top. An empty path, or
// a path whose file does not exist, yields the built-in defaults.
func Load(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return applyEnvOverrides(cfg), nil
			}
			return Config{}, fmt.Errorf("optconfig: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("optconfig: parsing %s: %w", path, err)
		}
	}
	return applyEnvOverrides(cfg), nil
}

// applyEnvOverrides reads OPTIMISER_* environment variables and
// overrides the corresponding fields; env always wins over YAML.
func applyEnvOverrides(cfg Config) Config {
	if v := os.Getenv("OPTIMISER_TRACE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Trace = b
		}
	}
	if v := os.Getenv("OPTIMISER_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MetricsEnabled = b
		}
	}
	if v := os.Getenv("OPTIMISER_ELITE_SET_MIN_CHILDREN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EliteSetMinChildren = n
		}
	}
	return cfg
}
