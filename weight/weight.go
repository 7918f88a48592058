//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Package weight is the scoring abstraction consumed, not defined, by
// the optimiser. Scheme is the narrow interface a leaf postlist calls
// into; Stub is a minimal BM25-shaped implementation sufficient to
// drive tests and cmd/optimisedemo without a real index.
package weight

import (
	"math"

	"github.com/danc86/xapian/stats"
)

// Scheme computes an upper bound on the score contribution of a term
// leaf, given its collection statistics. The optimiser never calls
// Scheme directly; the PostListFactory does when it builds a leaf.
type Scheme interface {
	MaxWeight(termfreq uint64, collStats *stats.Aggregator) float64
}

// Stub is a minimal BM25-shaped scheme: bounded by a saturating
// function of inverse document frequency, good enough that the
// cmd/optimisedemo elite-set and OR samples see realistic, distinct
// weights.
type Stub struct {
	K1 float64
}

func NewStub() *Stub { return &Stub{K1: 1.2} }

func (s *Stub) MaxWeight(termfreq uint64, collStats *stats.Aggregator) float64 {
	if termfreq == 0 || collStats == nil || collStats.CollectionSize == 0 {
		return 0
	}
	n := float64(collStats.CollectionSize)
	nt := float64(termfreq)
	idf := 0.0
	if nt < n {
		idf = math.Log(n/nt) + 1
	}
	return idf * (s.K1 + 1)
}
