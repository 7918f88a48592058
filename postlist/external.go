//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

package postlist

// External wraps a caller-supplied postlist produced by an
// EXTERNAL_SOURCE query node. The optimiser never
// inspects the wrapped postlist's internals; it only multiplies
// whatever weight it reports by Factor, and a zero Factor means the
// source contributes no score at all.
type External struct {
	Inner  PostList
	Factor float64
}

func NewExternal(inner PostList, factor float64) *External {
	return &External{Inner: inner, Factor: factor}
}

func (e *External) Advance() bool       { return e.Inner.Advance() }
func (e *External) TermFreqEst() uint64 { return e.Inner.TermFreqEst() }
func (e *External) TermFreqMax() uint64 { return e.Inner.TermFreqMax() }

func (e *External) MaxWeight() float64 {
	if e.Factor == 0 {
		return 0
	}
	return e.Factor * e.Inner.MaxWeight()
}

func (e *External) RecalcMaxWeight() { e.Inner.RecalcMaxWeight() }
func (e *External) Release()         { Release(e.Inner) }
func (e *External) Describe() string { return "ExternalPostList(" + e.Inner.Describe() + ")" }
