//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

package postlist

import "strconv"

// ValueRange and ValueGE are boolean filter postlists: they select
// documents by a stored value and contribute no score, so they always
// report a MaxWeight of 0. Lacking a real value index, Est/Max fall
// back to generic bounds derived from the database's document count.
type ValueRange struct {
	Slot   int
	Lo, Hi string
	DBSize uint64
}

func NewValueRange(slot int, lo, hi string, dbSize uint64) *ValueRange {
	return &ValueRange{Slot: slot, Lo: lo, Hi: hi, DBSize: dbSize}
}

func (v *ValueRange) Advance() bool       { return false }
func (v *ValueRange) TermFreqEst() uint64 { return v.DBSize / 2 }
func (v *ValueRange) TermFreqMax() uint64 { return v.DBSize }
func (v *ValueRange) MaxWeight() float64  { return 0 }
func (v *ValueRange) RecalcMaxWeight()    {}
func (v *ValueRange) Release()            {}
func (v *ValueRange) Describe() string {
	return "ValueRangePostList(slot=" + strconv.Itoa(v.Slot) + ")"
}

// ValueGE is the single-bounded variant of ValueRange.
type ValueGE struct {
	Slot   int
	Lo     string
	DBSize uint64
}

func NewValueGE(slot int, lo string, dbSize uint64) *ValueGE {
	return &ValueGE{Slot: slot, Lo: lo, DBSize: dbSize}
}

func (v *ValueGE) Advance() bool       { return false }
func (v *ValueGE) TermFreqEst() uint64 { return v.DBSize / 2 }
func (v *ValueGE) TermFreqMax() uint64 { return v.DBSize }
func (v *ValueGE) MaxWeight() float64  { return 0 }
func (v *ValueGE) RecalcMaxWeight()    {}
func (v *ValueGE) Release()            {}
func (v *ValueGE) Describe() string {
	return "ValueGePostList(slot=" + strconv.Itoa(v.Slot) + ")"
}
