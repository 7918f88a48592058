//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Package database defines the Database collaborator the optimiser
// calls into for positional capability; it also carries the doclength
// bounds the weighting scheme consumes.
// Storage, posting-list decoding, and positional index access live
// elsewhere; this package defines only the narrow interface the
// optimiser needs, plus an in-memory Stub good enough to drive tests
// and the cmd/optimisedemo walkthrough without a real index.
package database

// Database is the narrow view of a sub-database the optimiser needs.
// The optimiser must not assume a Database outlives the Optimise call
// except through references it has transferred into constructed
// postlists.
type Database interface {
	// HasPositions reports whether this sub-database stores positional
	// information. When false, PHRASE and NEAR are demoted to AND.
	HasPositions() bool
	// Size is the number of documents in this sub-database.
	Size() int
	// DocLengthUpper and DocLengthLower bound document length across
	// the sub-database; consumed opaquely by the weighting scheme, the
	// optimiser itself never reads them directly.
	DocLengthUpper() uint64
	DocLengthLower() uint64
}

// ConstView is the read-only wrapper the optimiser hands to an
// external posting source: the source can query capabilities and
// bounds but holds no reference through which it could reach anything
// wider.
type ConstView struct {
	db Database
}

func NewConstView(db Database) *ConstView { return &ConstView{db: db} }

func (v *ConstView) HasPositions() bool     { return v.db.HasPositions() }
func (v *ConstView) Size() int              { return v.db.Size() }
func (v *ConstView) DocLengthUpper() uint64 { return v.db.DocLengthUpper() }
func (v *ConstView) DocLengthLower() uint64 { return v.db.DocLengthLower() }

// Stub is an in-memory Database good for tests and demos: fixed
// capability flags and length bounds, no documents actually stored.
type Stub struct {
	Positions   bool
	NumDocs     int
	LengthUpper uint64
	LengthLower uint64
}

func NewStub(positions bool, numDocs int) *Stub {
	return &Stub{Positions: positions, NumDocs: numDocs, LengthUpper: 1000, LengthLower: 1}
}

func (s *Stub) HasPositions() bool     { return s.Positions }
func (s *Stub) Size() int              { return s.NumDocs }
func (s *Stub) DocLengthUpper() uint64 { return s.LengthUpper }
func (s *Stub) DocLengthLower() uint64 { return s.LengthLower }
