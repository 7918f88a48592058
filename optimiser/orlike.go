//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

package optimiser

import (
	"container/heap"
	"math"
	"sort"

	"github.com/danc86/xapian/opterrors"
	"github.com/danc86/xapian/postlist"
	"github.com/danc86/xapian/querynode"
)

// cmpMaxOrTerms reports whether a must order strictly before b when
// selecting an elite set: strictly greater max weight wins, with the
// proviso that a postlist whose termfreq_max is 0 can never score and
// always loses. termfreq_max rather than termfreq_est, because a
// postlist with a low but non-zero term frequency quite likely has an
// estimate of zero, and it must not be excluded for that.
//
// Both weights are pinned to IEEE-754 double width through their bit
// patterns before comparing. Excess-precision registers on some
// architectures can otherwise make a>b and b>a simultaneously true
// when the two calls produce identical values, which violates the
// strict weak ordering the partial sort needs.
func cmpMaxOrTerms(a, b postlist.PostList) bool {
	if a.TermFreqMax() == 0 {
		return false
	}
	if b.TermFreqMax() == 0 {
		return true
	}
	aw := math.Float64frombits(math.Float64bits(a.MaxWeight()))
	bw := math.Float64frombits(math.Float64bits(b.MaxWeight()))
	return aw > bw
}

// huffEntry pairs a postlist with its insertion sequence number so that
// heap ordering is stable: equal estimates pop in input order, keeping
// the build deterministic across runs.
type huffEntry struct {
	pl  postlist.PostList
	seq int
}

// huffHeap pops the entry with the smallest termfreq_est first.
type huffHeap []huffEntry

func (h huffHeap) Len() int { return len(h) }

func (h huffHeap) Less(i, j int) bool {
	ei, ej := h[i].pl.TermFreqEst(), h[j].pl.TermFreqEst()
	if ei != ej {
		return ei < ej
	}
	return h[i].seq < h[j].seq
}

func (h huffHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *huffHeap) Push(x interface{}) { *h = append(*h, x.(huffEntry)) }

func (h *huffHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// doOrLike builds the tree for OR, XOR and ELITE_SET (and, through
// doSynonym, the OR tree under a SynonymPostList). An ELITE_SET is
// first pruned to its k best children by max weight and then merged
// exactly like an OR.
//
// Adjacent ELITE_SET and OR operators could be merged here the way
// doAndLike merges the AND-like operators; they are not, and each level
// builds its own tree.
func (this *Optimiser) doOrLike(query *querynode.Nary, factor float64) (postlist.PostList, opterrors.Error) {
	this.trace("do_or_like", query, factor)

	// A SYNONYM builds a plain OR tree; the synonym weighting comes
	// from the SynonymPostList it gets wrapped in afterwards.
	op := query.Op()
	if op == querynode.SYNONYM {
		op = querynode.OR
	}

	postlists := make([]postlist.PostList, 0, len(query.Subqs))
	for _, subq := range query.Subqs {
		pl, err := this.doSubquery(subq, factor)
		if err != nil {
			releaseAll(postlists)
			return nil, err
		}
		postlists = append(postlists, pl)
	}

	if op == querynode.ELITE_SET {
		postlists = this.pruneEliteSet(postlists, query.Parameter)
		if len(postlists) == 1 {
			return postlists[0], nil
		}
	}

	// Build a tree of binary Or/Xor nodes the way an optimal Huffman
	// coding tree is built: repeatedly merge the two children with the
	// smallest estimated term frequencies. If the tree were advanced
	// sequentially to the end this arrangement would minimise the
	// number of method calls, and it minimises the work in the worst
	// case either way.
	h := make(huffHeap, len(postlists))
	for i, pl := range postlists {
		h[i] = huffEntry{pl: pl, seq: i}
	}
	heap.Init(&h)

	seq := len(postlists)
	for {
		// Each binary node keeps l.termfreq_est() >= r.termfreq_est();
		// the Or and Xor iterators are free to rely on that.
		r := heap.Pop(&h).(huffEntry)
		l := heap.Pop(&h).(huffEntry)

		var pl postlist.PostList
		if op == querynode.XOR {
			pl = postlist.NewXor(l.pl, r.pl, this.dbSize)
		} else {
			pl = postlist.NewOr(l.pl, r.pl, this.dbSize)
		}

		if h.Len() == 0 {
			return pl, nil
		}
		heap.Push(&h, huffEntry{pl: pl, seq: seq})
		seq++
	}
}

// pruneEliteSet keeps the k children with the greatest max weight and
// releases the rest. Pruning is skipped when there is nothing to prune
// or when the configured floor disables it for small child counts.
func (this *Optimiser) pruneEliteSet(postlists []postlist.PostList, k int) []postlist.PostList {
	if len(postlists) <= k || len(postlists) < this.cfg.EliteSetMinChildren {
		return postlists
	}

	// MaxWeight may not be valid before the first advance unless
	// recalculated explicitly.
	for _, pl := range postlists {
		pl.RecalcMaxWeight()
	}

	sort.SliceStable(postlists, func(i, j int) bool {
		return cmpMaxOrTerms(postlists[i], postlists[j])
	})

	for _, pl := range postlists[k:] {
		pl.Release()
	}
	this.collector().ObserveElitePruned(len(postlists) - k)
	return postlists[:k]
}

// doSynonym builds the OR tree over the synonym's children with factor
// 0, so they contribute document matches but no individual weights,
// then wraps it in a SynonymPostList carrying the group's own weighting
// at the incoming factor. With factor 0 the wrapper is pointless and a
// plain OR tree comes back instead.
//
// The node's wqf plays no part here; whether it should is an open
// question inherited from the original matcher, and the current
// behaviour is to ignore it.
func (this *Optimiser) doSynonym(query *querynode.Nary, factor float64) (postlist.PostList, opterrors.Error) {
	this.trace("do_synonym", query, factor)

	if factor == 0.0 {
		return this.doOrLike(query, 0.0)
	}

	inner, err := this.doOrLike(query, 0.0)
	if err != nil {
		return nil, err
	}
	pl, ferr := this.factory.SynonymPostList(inner, factor)
	if ferr != nil {
		inner.Release()
		return nil, opterrors.NewResource(ferr, "constructing synonym postlist")
	}
	return pl, nil
}
