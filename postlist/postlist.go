//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Package postlist holds the document-iterator operators the optimiser
// composes: AndPostList, OrPostList, XorPostList, AndNotPostList,
// AndMaybePostList, NearPostList, PhrasePostList, ExactPhrasePostList,
// ValueRangePostList, ValueGePostList, ExternalPostList,
// SynonymPostList, EmptyPostList. The optimiser constructs and
// composes these but does not define their traversal over real posting
// lists; what is implemented here is the part the optimiser itself
// reads back while planning — TermFreqEst, TermFreqMax, MaxWeight,
// RecalcMaxWeight — plus the minimal Advance behaviour an empty result
// must have.
package postlist

import "fmt"

// PostList is the capability set the optimiser needs from every
// constructed node. The optimiser treats every PostList as an owning
// handle and never copies one.
type PostList interface {
	// Advance moves to the next matching document. It returns false once
	// exhausted. EmptyPostList's Advance returns false immediately.
	Advance() bool
	// TermFreqEst is a cheap approximation of the number of matching
	// documents, used for Huffman balancing.
	TermFreqEst() uint64
	// TermFreqMax upper-bounds the number of matching documents; the
	// elite-set comparator uses it to treat a postlist that can never
	// match as strictly worst.
	TermFreqMax() uint64
	// MaxWeight upper-bounds this postlist's score contribution.
	MaxWeight() float64
	// RecalcMaxWeight recomputes MaxWeight from current state. It must
	// be called once before the first MaxWeight read, which may
	// otherwise be invalid before the first advance.
	RecalcMaxWeight()
	// Describe renders a short textual form for the debug-trace hook.
	Describe() string
	// Release relinquishes this postlist and, transitively, every
	// postlist it owns. Safe to call exactly once; the optimiser calls
	// it on every partially-built subtree when a later sibling fails.
	Release()
}

// Factory is the submatch collaborator that turns a term leaf into a
// leaf postlist consulting the configured weighting scheme, and wraps
// an already-built OR tree into a SynonymPostList.
type Factory interface {
	LeafPostList(tname string, wqf int, factor float64) (PostList, error)
	SynonymPostList(inner PostList, factor float64) (PostList, error)
}

// Empty is the well-defined empty result: a nil or MATCH_NOTHING query
// never yields a nil postlist, it yields this.
type Empty struct{}

func NewEmpty() *Empty { return &Empty{} }

func (*Empty) Advance() bool       { return false }
func (*Empty) TermFreqEst() uint64 { return 0 }
func (*Empty) TermFreqMax() uint64 { return 0 }
func (*Empty) MaxWeight() float64  { return 0 }
func (*Empty) RecalcMaxWeight()    {}
func (*Empty) Describe() string    { return "EmptyPostList" }
func (*Empty) Release()            {}

// Leaf is a term leaf postlist. Est and Max come straight from the
// collection statistics (n_t); Weight is the weighting scheme's bound,
// already scaled by factor — a factor of 0 forces Weight to 0 so an
// unscored leaf is cheap to carry through the tree.
type Leaf struct {
	TName  string
	Factor float64
	Est    uint64
	Max    uint64
	Weight float64
}

func NewLeaf(tname string, factor float64, est, max uint64, weight float64) *Leaf {
	if factor == 0 {
		weight = 0
	}
	return &Leaf{TName: tname, Factor: factor, Est: est, Max: max, Weight: weight}
}

func (l *Leaf) Advance() bool       { return false }
func (l *Leaf) TermFreqEst() uint64 { return l.Est }
func (l *Leaf) TermFreqMax() uint64 { return l.Max }
func (l *Leaf) MaxWeight() float64  { return l.Weight }
func (l *Leaf) RecalcMaxWeight()    {}
func (l *Leaf) Release()            {}
func (l *Leaf) Describe() string {
	return fmt.Sprintf("Leaf(%q,factor=%v,est=%d)", l.TName, l.Factor, l.Est)
}

// Release calls pl.Release() if pl is non-nil. Defined at package scope
// so a slice of PostList values can be released uniformly, including a
// nil entry left by a not-yet-constructed sibling.
func Release(pl PostList) {
	if pl != nil {
		pl.Release()
	}
}
