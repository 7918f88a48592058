//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

package postlist

// Synonym wraps the OR tree built over a SYNONYM node's children: the
// match set is whatever the inner OR matches, but scoring
// treats the whole group as a single term with an aggregated wqf rather
// than summing each child's individual weight. Weight is therefore
// supplied by the Factory at construction time, not derived from
// Inner.MaxWeight().
type Synonym struct {
	Inner  PostList
	Factor float64
	Weight float64
}

func NewSynonym(inner PostList, factor, weight float64) *Synonym {
	if factor == 0 {
		weight = 0
	}
	return &Synonym{Inner: inner, Factor: factor, Weight: weight}
}

func (s *Synonym) Advance() bool       { return s.Inner.Advance() }
func (s *Synonym) TermFreqEst() uint64 { return s.Inner.TermFreqEst() }
func (s *Synonym) TermFreqMax() uint64 { return s.Inner.TermFreqMax() }
func (s *Synonym) MaxWeight() float64  { return s.Weight }
func (s *Synonym) RecalcMaxWeight()    { s.Inner.RecalcMaxWeight() }
func (s *Synonym) Release()            { Release(s.Inner) }
func (s *Synonym) Describe() string    { return "SynonymPostList(" + s.Inner.Describe() + ")" }
