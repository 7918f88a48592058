//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

package postlist

import "strconv"

// positional wraps an already-built conjunction, adding a
// position-window check over Terms that the optimiser doesn't itself
// evaluate. Root may be
// the And itself or a previously applied positional filter: filters
// stack outermost-last. Terms is a copy of a slice of the And's child
// vector; the children stay owned by the And, so Release only releases
// Root and never walks Terms.
//
// Estimates are inherited unchanged from Root: positional filtering can
// only narrow the match set further, and without access to a real
// positional index there is no better bound to give than the one the
// conjunction already computed.
type positional struct {
	Root   PostList
	Terms  []PostList
	Window int
	kind   string
}

func (p *positional) Advance() bool       { return p.Root.Advance() }
func (p *positional) TermFreqEst() uint64 { return p.Root.TermFreqEst() }
func (p *positional) TermFreqMax() uint64 { return p.Root.TermFreqMax() }
func (p *positional) MaxWeight() float64  { return p.Root.MaxWeight() }
func (p *positional) RecalcMaxWeight()    { p.Root.RecalcMaxWeight() }
func (p *positional) Release()            { Release(p.Root) }
func (p *positional) Describe() string {
	return p.kind + "(window=" + strconv.Itoa(p.Window) + ", " + p.Root.Describe() + ")"
}

// Near requires all of Terms to occur within Window term positions of
// each other, in any order.
type Near struct{ positional }

func NewNear(root PostList, window int, terms []PostList) *Near {
	return &Near{positional{Root: root, Terms: terms, Window: window, kind: "NearPostList"}}
}

// Phrase requires all of Terms to occur within Window term positions,
// in the order given.
type Phrase struct{ positional }

func NewPhrase(root PostList, window int, terms []PostList) *Phrase {
	return &Phrase{positional{Root: root, Terms: terms, Window: window, kind: "PhrasePostList"}}
}

// ExactPhrase is Phrase with the window fixed to the term count: every
// term must occur consecutively, in order.
type ExactPhrase struct{ positional }

func NewExactPhrase(root PostList, terms []PostList) *ExactPhrase {
	return &ExactPhrase{positional{Root: root, Terms: terms, Window: len(terms), kind: "ExactPhrasePostList"}}
}
