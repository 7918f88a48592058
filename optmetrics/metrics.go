//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Package optmetrics instruments Optimiser.Optimise calls: a struct of
// Prometheus collectors constructed and registered together. New takes
// an explicit prometheus.Registerer instead of reaching for the global
// default registry, so tests and multiple concurrent Optimisers never
// collide.
package optmetrics

import "github.com/prometheus/client_golang/prometheus"

// Collector wraps the collectors observing optimiser calls. A nil
// *Collector is valid and every method on it is a no-op (see Noop).
type Collector struct {
	callsTotal        prometheus.Counter
	durationSeconds   prometheus.Histogram
	flattenedChildren prometheus.Histogram
	elitePrunedTotal  prometheus.Counter
}

// New constructs and registers a Collector's collectors against reg.
// Pass prometheus.NewRegistry() for an isolated registry (the default
// tests use); pass prometheus.DefaultRegisterer to expose on the
// process-wide /metrics endpoint.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		callsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimise_calls_total",
			Help: "Total number of top-level Optimiser.Optimise calls.",
		}),
		durationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "optimise_duration_seconds",
			Help:    "Wall-clock time of a top-level Optimise call.",
			Buckets: prometheus.DefBuckets,
		}),
		flattenedChildren: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "optimise_flattened_children",
			Help:    "Flat child count produced by a single do_and_like call.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
		elitePrunedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimise_elite_pruned_total",
			Help: "Total children dropped by elite-set pruning.",
		}),
	}
	reg.MustRegister(c.callsTotal, c.durationSeconds, c.flattenedChildren, c.elitePrunedTotal)
	return c
}

// Noop returns a nil *Collector: every recording method below is a
// no-op on a nil receiver, with no allocation.
func Noop() *Collector { return nil }

func (c *Collector) ObserveCall(seconds float64) {
	if c == nil {
		return
	}
	c.callsTotal.Inc()
	c.durationSeconds.Observe(seconds)
}

func (c *Collector) ObserveFlattened(n int) {
	if c == nil {
		return
	}
	c.flattenedChildren.Observe(float64(n))
}

func (c *Collector) ObserveElitePruned(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.elitePrunedTotal.Add(float64(n))
}
