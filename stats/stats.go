//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Package stats holds the per-collection statistics record weighted
// leaves consult: total document length and count, the caller's
// relevance-set size, and per-term document frequencies, both
// collection-wide and restricted to the relevance set. In a
// multi-database search each sub-database contributes a partial record
// and Merge folds them into the global view.
package stats

import "github.com/danc86/xapian/database"

// Aggregator is read-only for the duration of a single optimisation;
// callers are responsible for freezing it — via Merge calls
// completing — before handing it to the optimiser.
type Aggregator struct {
	TotalLength    uint64
	CollectionSize uint64
	RSetSize       uint64
	termfreq       map[string]uint64
	reltermfreq    map[string]uint64
	db             database.Database
}

// New returns a zeroed Aggregator.
func New() *Aggregator {
	return &Aggregator{termfreq: map[string]uint64{}, reltermfreq: map[string]uint64{}}
}

// NewCopyGlobal copies src's scalar fields and database reference; all
// term-specific statistics start at 0.
func NewCopyGlobal(src *Aggregator) *Aggregator {
	return &Aggregator{
		TotalLength:    src.TotalLength,
		CollectionSize: src.CollectionSize,
		RSetSize:       src.RSetSize,
		db:             src.db,
		termfreq:       map[string]uint64{},
		reltermfreq:    map[string]uint64{},
	}
}

// NewCopyWithTerm copies src's scalar fields and database reference,
// and seeds the term maps with only the entries for term (0 if term is
// absent from src).
func NewCopyWithTerm(src *Aggregator, term string) *Aggregator {
	a := NewCopyGlobal(src)
	a.termfreq[term] = src.GetTermFreq(term)
	a.reltermfreq[term] = src.GetRelTermFreq(term)
	return a
}

// Merge folds other's statistics into this Aggregator in place: scalar
// fields add elementwise, term maps add key-wise (a missing key
// contributes 0). Merge is commutative and associative, so shard
// aggregation order is irrelevant.
func (this *Aggregator) Merge(other *Aggregator) {
	this.TotalLength += other.TotalLength
	this.CollectionSize += other.CollectionSize
	this.RSetSize += other.RSetSize
	for term, n := range other.termfreq {
		this.termfreq[term] += n
	}
	for term, n := range other.reltermfreq {
		this.reltermfreq[term] += n
	}
}

func (this *Aggregator) GetTermFreq(term string) uint64 {
	return this.termfreq[term]
}

func (this *Aggregator) SetTermFreq(term string, n uint64) {
	this.termfreq[term] = n
}

func (this *Aggregator) GetRelTermFreq(term string) uint64 {
	return this.reltermfreq[term]
}

func (this *Aggregator) SetRelTermFreq(term string, n uint64) {
	this.reltermfreq[term] = n
}

// AverageLength is total_length / collection_size, or 0 when the
// collection is empty.
func (this *Aggregator) AverageLength() float64 {
	if this.CollectionSize == 0 {
		return 0
	}
	return float64(this.TotalLength) / float64(this.CollectionSize)
}

// Database returns the database reference bound-from via
// SetBoundsFromDB, or nil if none has been set.
func (this *Aggregator) Database() database.Database { return this.db }

// SetBoundsFromDB points this Aggregator at db for doclength bounds. The database reference can be (re)pointed after
// construction, which matters when folding per-shard stats gathered
// against distinct sub-databases.
func (this *Aggregator) SetBoundsFromDB(db database.Database) {
	this.db = db
}
