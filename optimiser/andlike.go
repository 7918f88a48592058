//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

package optimiser

import (
	"github.com/danc86/xapian/internal/optlog"
	"github.com/danc86/xapian/opterrors"
	"github.com/danc86/xapian/postlist"
	"github.com/danc86/xapian/querynode"
)

// posFilter records a NEAR/PHRASE constraint deferred during
// flattening: the operator, the [begin, end) index range of its
// children within the flat postlist vector, and the position window.
// The range is recorded as soon as this node's own children are all in
// the flat vector, before any later sibling appends more.
type posFilter struct {
	op         querynode.Op
	begin, end int
	window     int
}

func isAndLike(op querynode.Op) bool {
	return op == querynode.AND || op == querynode.FILTER ||
		op == querynode.NEAR || op == querynode.PHRASE
}

// doAndLike builds a multi-way conjunction from an AND/FILTER/NEAR/
// PHRASE node: the whole AND-like subtree is flattened into one child
// vector, a single AndPostList is built over it, and any positional
// constraints encountered during flattening are applied on top,
// innermost first.
func (this *Optimiser) doAndLike(query *querynode.Nary, factor float64) (postlist.PostList, opterrors.Error) {
	this.trace("do_and_like", query, factor)

	var plists []postlist.PostList
	var posFilters []posFilter
	if err := this.flattenAndLike(query, factor, &plists, &posFilters); err != nil {
		releaseAll(plists)
		return nil, err
	}
	this.collector().ObserveFlattened(len(plists))

	var pl postlist.PostList = postlist.NewAnd(plists)

	// The order filters apply in is whatever flattening produced.
	// Sorting them by selectivity might apply the cheapest first, but
	// it is not known what the best order actually is, and the result
	// set is the same either way.
	for _, filter := range posFilters {
		// The wrappers get a copy of their slice of the flat vector;
		// the postlists themselves stay owned by the And underneath.
		terms := make([]postlist.PostList, filter.end-filter.begin)
		copy(terms, plists[filter.begin:filter.end])

		switch {
		case filter.op == querynode.NEAR:
			pl = postlist.NewNear(pl, filter.window, terms)
		case filter.window == filter.end-filter.begin:
			pl = postlist.NewExactPhrase(pl, terms)
		default:
			pl = postlist.NewPhrase(pl, filter.window, terms)
		}
	}

	return pl, nil
}

// flattenAndLike walks an AND-like subtree left to right, appending
// each non-AND-like child's postlist to plists and inlining AND-like
// children transitively. A PHRASE/NEAR node against a sub-database
// with no positional information is demoted to plain AND: the matches
// are a superset, and returning scored matches beats returning none.
func (this *Optimiser) flattenAndLike(query *querynode.Nary, factor float64,
	plists *[]postlist.PostList, posFilters *[]posFilter) opterrors.Error {
	this.trace("flatten_and_like", query, factor)

	op := query.Op()
	positional := false
	if op == querynode.PHRASE || op == querynode.NEAR {
		if !this.db.HasPositions() {
			optlog.Warnf("sub-database has no positional information, demoting %s to AND", op)
			op = querynode.AND
		} else {
			positional = true
		}
	}

	for i, subq := range query.Subqs {
		// The second branch of FILTER is always boolean.
		childFactor := factor
		if i == 1 && op == querynode.FILTER {
			childFactor = 0.0
		}

		if n, ok := subq.(*querynode.Nary); ok && isAndLike(n.Op()) {
			if err := this.flattenAndLike(n, childFactor, plists, posFilters); err != nil {
				return err
			}
		} else {
			pl, err := this.doSubquery(subq, childFactor)
			if err != nil {
				return err
			}
			*plists = append(*plists, pl)
		}
	}

	if positional {
		end := len(*plists)
		begin := end - len(query.Subqs)
		*posFilters = append(*posFilters, posFilter{op: op, begin: begin, end: end, window: query.Parameter})
	}
	return nil
}
