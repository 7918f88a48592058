//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Package optimiser converts a querynode expression tree into an
// executable postlist tree: flattening AND-family operators into a
// single multi-way conjunction with deferred positional filters,
// Huffman-balancing OR-family operators by estimated term frequency,
// pruning elite sets to their top-k children by max weight, and
// threading a multiplicative weight factor down the recursion so that
// unscored subtrees (factor 0) get cheaper leaves.
//
// The optimiser borrows the query tree and the stats aggregator, and
// owns every postlist it constructs until Optimise returns: on success
// ownership of the whole tree transfers to the caller through the root;
// on failure everything already built is released before the error
// comes back.
package optimiser

import (
	"fmt"
	"time"

	"github.com/danc86/xapian/database"
	"github.com/danc86/xapian/internal/optlog"
	"github.com/danc86/xapian/optconfig"
	"github.com/danc86/xapian/opterrors"
	"github.com/danc86/xapian/optmetrics"
	"github.com/danc86/xapian/postlist"
	"github.com/danc86/xapian/querynode"
	"github.com/danc86/xapian/stats"
)

// Debug enables defensive re-validation of operator invariants on every
// recursive call. The querynode constructors already enforce these, so
// release callers leave this off; it exists for callers that build
// querynode values through their own code paths and want the optimiser
// to catch a malformed tree at the point of use.
var Debug bool

// Optimiser rewrites one query tree per Optimise call. A single value
// may be reused for many sequential calls against the same database and
// aggregator; it holds no per-call state.
type Optimiser struct {
	cfg     optconfig.Config
	db      database.Database
	dbSize  uint64
	factory postlist.Factory
	stats   *stats.Aggregator
	metrics *optmetrics.Collector
}

// New constructs an Optimiser over one sub-database. dbSize is the
// document count the postlist constructors clamp their estimates to;
// it is passed separately from db because a multi-database search
// clamps against the whole collection, not the shard. collector may be
// optmetrics.Noop().
func New(cfg optconfig.Config, db database.Database, dbSize int, factory postlist.Factory,
	st *stats.Aggregator, collector *optmetrics.Collector) *Optimiser {
	return &Optimiser{
		cfg:     cfg,
		db:      db,
		dbSize:  uint64(dbSize),
		factory: factory,
		stats:   st,
		metrics: collector,
	}
}

// Stats returns the aggregator this Optimiser was constructed with, for
// factories that derive leaf statistics from it.
func (this *Optimiser) Stats() *stats.Aggregator { return this.stats }

// Optimise rewrites query into an executable postlist tree. A nil query
// is a valid "match nothing" input. factor scales every weight the tree
// will contribute; 0 means the weights will never be read, which the
// optimiser propagates aggressively so unscored subtrees use cheaper
// leaves. The returned root owns the whole tree; it is never nil on
// success. On failure every partially constructed postlist has already
// been released.
func (this *Optimiser) Optimise(query querynode.Node, factor float64) (postlist.PostList, error) {
	if factor < 0 {
		return nil, opterrors.NewPrecondition(fmt.Sprintf("factor must be non-negative, got %v", factor))
	}
	if this.factory == nil {
		return nil, opterrors.NewPrecondition("optimiser constructed with a nil postlist factory")
	}

	start := time.Now()
	pl, err := this.doSubquery(query, factor)
	this.collector().ObserveCall(time.Since(start).Seconds())
	if err != nil {
		optlog.Errorf("optimise of %s failed: %v (%s)", describe(query), err,
			opterrors.Describe(err.Code()).Description)
		return nil, err
	}
	return pl, nil
}

// doSubquery is the recursive dispatch over the operator set. Dispatch
// is on the concrete node type first, so the shape/op pairing is
// checked for free; an unknown pairing is a precondition violation.
func (this *Optimiser) doSubquery(query querynode.Node, factor float64) (postlist.PostList, opterrors.Error) {
	this.trace("do_subquery", query, factor)

	if query == nil {
		return postlist.NewEmpty(), nil
	}
	if Debug {
		if err := validate(query); err != nil {
			return nil, err
		}
	}

	switch q := query.(type) {
	case querynode.MatchNothing:
		return postlist.NewEmpty(), nil

	case *querynode.Leaf:
		return this.doLeaf(q, factor)

	case *querynode.External:
		wrapped := database.NewConstView(this.db)
		inner, err := q.Source.PostList(wrapped)
		if err != nil {
			return nil, opterrors.NewResource(err, "external posting source failed")
		}
		return postlist.NewExternal(inner, factor), nil

	case *querynode.Nary:
		switch q.Op() {
		case querynode.AND, querynode.FILTER, querynode.NEAR, querynode.PHRASE:
			return this.doAndLike(q, factor)
		case querynode.OR, querynode.XOR, querynode.ELITE_SET:
			return this.doOrLike(q, factor)
		case querynode.SYNONYM:
			return this.doSynonym(q, factor)
		}

	case *querynode.Binary:
		switch q.Op() {
		case querynode.AND_NOT:
			l, err := this.doSubquery(q.Left, factor)
			if err != nil {
				return nil, err
			}
			r, err := this.doSubquery(q.Right, 0.0)
			if err != nil {
				l.Release()
				return nil, err
			}
			return postlist.NewAndNot(l, r), nil
		case querynode.AND_MAYBE:
			l, err := this.doSubquery(q.Left, factor)
			if err != nil {
				return nil, err
			}
			r, err := this.doSubquery(q.Right, factor)
			if err != nil {
				l.Release()
				return nil, err
			}
			return postlist.NewAndMaybe(l, r), nil
		}

	case *querynode.ValueRange:
		switch q.Op() {
		case querynode.VALUE_RANGE:
			return postlist.NewValueRange(q.Slot, q.Lo, q.Hi, this.dbSize), nil
		case querynode.VALUE_GE:
			return postlist.NewValueGE(q.Slot, q.Lo, this.dbSize), nil
		case querynode.VALUE_LE:
			return postlist.NewValueRange(q.Slot, "", q.Hi, this.dbSize), nil
		}

	case *querynode.ScaleWeight:
		subFactor := factor
		if subFactor != 0.0 {
			subFactor *= q.Scale
		}
		return this.doSubquery(q.Child, subFactor)
	}

	return nil, opterrors.NewPrecondition(fmt.Sprintf("impossible op %s for node %T", query.Op(), query))
}

// doLeaf hands a term leaf to the factory. An empty term name marks a
// non-scoring leaf, so its factor is forced to 0 regardless of what the
// caller passed in.
func (this *Optimiser) doLeaf(query *querynode.Leaf, factor float64) (postlist.PostList, opterrors.Error) {
	this.trace("do_leaf", query, factor)
	if query.TName == "" {
		factor = 0.0
	}
	pl, err := this.factory.LeafPostList(query.TName, query.Wqf, factor)
	if err != nil {
		return nil, opterrors.NewResource(err, fmt.Sprintf("constructing leaf postlist for %q", query.TName))
	}
	return pl, nil
}

// collector returns the metrics collector, or nil (every recording
// method on a nil Collector is a no-op) when metrics are configured
// off.
func (this *Optimiser) collector() *optmetrics.Collector {
	if !this.cfg.MetricsEnabled {
		return nil
	}
	return this.metrics
}

// trace is the debug hook entered on each recursive call: the node's
// description and the current factor, built lazily so a disabled trace
// costs nothing on the hot path.
func (this *Optimiser) trace(fn string, query querynode.Node, factor float64) {
	if !this.cfg.Trace {
		return
	}
	optlog.Tracea(func() string {
		return fmt.Sprintf("%s(%s, %v)", fn, describe(query), factor)
	})
}

func describe(query querynode.Node) string {
	if query == nil {
		return "MATCH_NOTHING"
	}
	return query.Describe()
}

// validate re-checks the arity invariants the querynode constructors
// enforce, for Debug mode only.
func validate(query querynode.Node) opterrors.Error {
	switch q := query.(type) {
	case *querynode.Nary:
		if len(q.Subqs) < 2 {
			return opterrors.NewPrecondition(fmt.Sprintf("%s has %d children, need at least 2", q.Op(), len(q.Subqs)))
		}
	case *querynode.Binary:
		if q.Left == nil || q.Right == nil {
			return opterrors.NewPrecondition(fmt.Sprintf("%s has a nil child", q.Op()))
		}
	case *querynode.ScaleWeight:
		if q.Child == nil {
			return opterrors.NewPrecondition("SCALE_WEIGHT has a nil child")
		}
		if q.Scale < 0 {
			return opterrors.NewPrecondition(fmt.Sprintf("SCALE_WEIGHT scale is negative: %v", q.Scale))
		}
	}
	return nil
}

// releaseAll releases every postlist in plists exactly once; used on
// the error paths where a sibling failed mid-construction.
func releaseAll(plists []postlist.PostList) {
	for _, pl := range plists {
		postlist.Release(pl)
	}
}
