//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Package querynode is the immutable expression tree the optimiser
// consumes: the caller/parser builds one of these and hands it,
// borrowed, to optimiser.Optimise. Rather than one fat node struct
// with op-dependent fields that most operators leave unused, this is a
// Go sum type: an interface with one concrete type per operator shape,
// each carrying only the fields that shape needs. Construction
// validates the arity invariants up front, so a Node handed to the
// optimiser is always well-formed; the optimiser itself only
// re-validates when optimiser.Debug is set.
package querynode

import (
	"fmt"
	"strings"

	"github.com/danc86/xapian/database"
	"github.com/danc86/xapian/opterrors"
	"github.com/danc86/xapian/postlist"
)

type Op int

const (
	LEAF Op = iota
	AND
	FILTER
	NEAR
	PHRASE
	OR
	XOR
	ELITE_SET
	AND_NOT
	AND_MAYBE
	VALUE_RANGE
	VALUE_GE
	VALUE_LE
	SCALE_WEIGHT
	SYNONYM
	EXTERNAL_SOURCE
	MATCH_NOTHING
)

func (op Op) String() string { return _opNames[op] }

var _opNames = map[Op]string{
	LEAF:            "LEAF",
	AND:             "AND",
	FILTER:          "FILTER",
	NEAR:            "NEAR",
	PHRASE:          "PHRASE",
	OR:              "OR",
	XOR:             "XOR",
	ELITE_SET:       "ELITE_SET",
	AND_NOT:         "AND_NOT",
	AND_MAYBE:       "AND_MAYBE",
	VALUE_RANGE:     "VALUE_RANGE",
	VALUE_GE:        "VALUE_GE",
	VALUE_LE:        "VALUE_LE",
	SCALE_WEIGHT:    "SCALE_WEIGHT",
	SYNONYM:         "SYNONYM",
	EXTERNAL_SOURCE: "EXTERNAL_SOURCE",
	MATCH_NOTHING:   "MATCH_NOTHING",
}

// Node is implemented by every concrete query-node variant. A nil Node
// is a valid, well-formed "match nothing" query.
type Node interface {
	Op() Op
	// Describe renders a short textual form of the node and its
	// immediate operator, for the optimiser's debug-trace hook. It does
	// not recurse into children.
	Describe() string
}

// ExternalSource is the opaque handle an EXTERNAL_SOURCE leaf carries.
// The optimiser never looks inside it: it asks it to produce a
// postlist against the current sub-database, then wraps the result in
// postlist.NewExternal with the effective factor. db is a read-only
// view; the source must not mutate it.
type ExternalSource interface {
	Describe() string
	PostList(db database.Database) (postlist.PostList, error)
}

// Leaf is a term leaf. An empty TName denotes a non-scoring leaf: the
// optimiser forces such a leaf's effective factor to 0 regardless of
// what the caller passed in.
type Leaf struct {
	TName string
	Wqf   int
}

func NewLeaf(tname string, wqf int) *Leaf { return &Leaf{TName: tname, Wqf: wqf} }

func (n *Leaf) Op() Op { return LEAF }
func (n *Leaf) Describe() string {
	if n.TName == "" {
		return "LEAF()"
	}
	return fmt.Sprintf("LEAF(%s,wqf=%d)", n.TName, n.Wqf)
}

// Nary covers every variable-arity operator: AND, FILTER, NEAR, PHRASE,
// OR, XOR, ELITE_SET, SYNONYM. Parameter is the window size for
// NEAR/PHRASE, the elite-set size k for ELITE_SET, and unused otherwise.
type Nary struct {
	op        Op
	Subqs     []Node
	Parameter int
}

// newNary validates the ≥2-children invariant shared by every operator
// this shape represents.
func newNary(op Op, parameter int, subqs ...Node) (*Nary, opterrors.Error) {
	if len(subqs) < 2 {
		return nil, opterrors.NewPrecondition(fmt.Sprintf("%s requires at least 2 children, got %d", op, len(subqs)))
	}
	return &Nary{op: op, Subqs: subqs, Parameter: parameter}, nil
}

func NewAnd(subqs ...Node) (*Nary, opterrors.Error)     { return newNary(AND, 0, subqs...) }
func NewFilter(subqs ...Node) (*Nary, opterrors.Error)  { return newNary(FILTER, 0, subqs...) }
func NewOr(subqs ...Node) (*Nary, opterrors.Error)      { return newNary(OR, 0, subqs...) }
func NewXor(subqs ...Node) (*Nary, opterrors.Error)     { return newNary(XOR, 0, subqs...) }
func NewSynonym(subqs ...Node) (*Nary, opterrors.Error) { return newNary(SYNONYM, 0, subqs...) }

// NewNear builds a NEAR node: all subqs must be within window terms of
// each other, in any order.
func NewNear(window int, subqs ...Node) (*Nary, opterrors.Error) {
	return newNary(NEAR, window, subqs...)
}

// NewPhrase builds a PHRASE node: subqs must occur in order, within
// window terms of each other. window == len(subqs) denotes an exact
// phrase.
func NewPhrase(window int, subqs ...Node) (*Nary, opterrors.Error) {
	return newNary(PHRASE, window, subqs...)
}

// NewEliteSet builds an ELITE_SET node, keeping only the k best-scoring
// children by max-weight once there are more than k of them.
func NewEliteSet(k int, subqs ...Node) (*Nary, opterrors.Error) {
	if k <= 0 {
		return nil, opterrors.NewPrecondition(fmt.Sprintf("ELITE_SET requires k > 0, got %d", k))
	}
	return newNary(ELITE_SET, k, subqs...)
}

func (n *Nary) Op() Op { return n.op }
func (n *Nary) Describe() string {
	parts := make([]string, len(n.Subqs))
	for i, s := range n.Subqs {
		if s == nil {
			parts[i] = "()"
		} else {
			parts[i] = s.Op().String()
		}
	}
	if n.op == NEAR || n.op == PHRASE || n.op == ELITE_SET {
		return fmt.Sprintf("%s(%d,%s)", n.op, n.Parameter, strings.Join(parts, ","))
	}
	return fmt.Sprintf("%s(%s)", n.op, strings.Join(parts, ","))
}

// Binary covers the two fixed-arity, asymmetric operators AND_NOT and
// AND_MAYBE: Left is the scoring/defining branch, Right is the
// subtracted or maybe-boosting branch.
type Binary struct {
	op          Op
	Left, Right Node
}

func newBinary(op Op, left, right Node) (*Binary, opterrors.Error) {
	if left == nil || right == nil {
		return nil, opterrors.NewPrecondition(fmt.Sprintf("%s requires exactly 2 non-nil children", op))
	}
	return &Binary{op: op, Left: left, Right: right}, nil
}

func NewAndNot(left, right Node) (*Binary, opterrors.Error)   { return newBinary(AND_NOT, left, right) }
func NewAndMaybe(left, right Node) (*Binary, opterrors.Error) { return newBinary(AND_MAYBE, left, right) }

func (n *Binary) Op() Op { return n.op }
func (n *Binary) Describe() string {
	left, right := "()", "()"
	if n.Left != nil {
		left = n.Left.Op().String()
	}
	if n.Right != nil {
		right = n.Right.Op().String()
	}
	return fmt.Sprintf("%s(%s,%s)", n.op, left, right)
}

// ScaleWeight multiplies the factor propagated to its single child by
// Scale. Scale must be non-negative.
type ScaleWeight struct {
	Child Node
	Scale float64
}

func NewScaleWeight(child Node, scale float64) (*ScaleWeight, opterrors.Error) {
	if child == nil {
		return nil, opterrors.NewPrecondition("SCALE_WEIGHT requires exactly 1 non-nil child")
	}
	if scale < 0 {
		return nil, opterrors.NewPrecondition(fmt.Sprintf("SCALE_WEIGHT requires dbl_parameter >= 0, got %v", scale))
	}
	return &ScaleWeight{Child: child, Scale: scale}, nil
}

func (n *ScaleWeight) Op() Op { return SCALE_WEIGHT }
func (n *ScaleWeight) Describe() string {
	child := "()"
	if n.Child != nil {
		child = n.Child.Op().String()
	}
	return fmt.Sprintf("SCALE_WEIGHT(%v,%s)", n.Scale, child)
}

// ValueRange covers VALUE_RANGE, VALUE_GE, and VALUE_LE, distinguished
// by op. For VALUE_GE, Hi is unused; for VALUE_LE, Lo is unused and Hi
// holds the upper bound.
type ValueRange struct {
	op     Op
	Slot   int
	Lo, Hi string
}

func NewValueRange(slot int, lo, hi string) *ValueRange {
	return &ValueRange{op: VALUE_RANGE, Slot: slot, Lo: lo, Hi: hi}
}

func NewValueGE(slot int, lo string) *ValueRange {
	return &ValueRange{op: VALUE_GE, Slot: slot, Lo: lo}
}

func NewValueLE(slot int, hi string) *ValueRange {
	return &ValueRange{op: VALUE_LE, Slot: slot, Hi: hi}
}

func (n *ValueRange) Op() Op { return n.op }
func (n *ValueRange) Describe() string {
	switch n.op {
	case VALUE_GE:
		return fmt.Sprintf("VALUE_GE(slot=%d,>=%q)", n.Slot, n.Lo)
	case VALUE_LE:
		return fmt.Sprintf("VALUE_LE(slot=%d,<=%q)", n.Slot, n.Hi)
	default:
		return fmt.Sprintf("VALUE_RANGE(slot=%d,%q..%q)", n.Slot, n.Lo, n.Hi)
	}
}

// External wraps an opaque ExternalSource handle.
type External struct {
	Source ExternalSource
}

func NewExternal(source ExternalSource) (*External, opterrors.Error) {
	if source == nil {
		return nil, opterrors.NewPrecondition("EXTERNAL_SOURCE requires a non-nil external_source")
	}
	return &External{Source: source}, nil
}

func (n *External) Op() Op { return EXTERNAL_SOURCE }
func (n *External) Describe() string {
	return fmt.Sprintf("EXTERNAL_SOURCE(%s)", n.Source.Describe())
}

// MatchNothing is the explicit MATCH_NOTHING tag. A nil Node means the
// same thing and is equally valid input to the optimiser.
type MatchNothing struct{}

func (MatchNothing) Op() Op           { return MATCH_NOTHING }
func (MatchNothing) Describe() string { return "MATCH_NOTHING" }
