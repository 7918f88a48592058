//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

package querynode

import (
	"testing"

	"github.com/danc86/xapian/opterrors"
)

func TestNaryArityEnforced(t *testing.T) {
	if _, err := NewAnd(NewLeaf("a", 1)); err == nil {
		t.Errorf("AND with one child accepted")
	}
	if _, err := NewOr(); err == nil {
		t.Errorf("OR with no children accepted")
	}
	if _, err := NewPhrase(2, NewLeaf("a", 1)); err == nil {
		t.Errorf("PHRASE with one child accepted")
	}
	if n, err := NewXor(NewLeaf("a", 1), NewLeaf("b", 1)); err != nil || n.Op() != XOR {
		t.Errorf("XOR with two children rejected: %v", err)
	}
}

func TestArityErrorIsFatalPrecondition(t *testing.T) {
	_, err := NewAnd(NewLeaf("a", 1))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Code() != opterrors.E_PRECONDITION || !err.Fatal() {
		t.Errorf("arity violation = code %v fatal %v, want E_PRECONDITION/fatal", err.Code(), err.Fatal())
	}
}

func TestEliteSetRequiresPositiveK(t *testing.T) {
	if _, err := NewEliteSet(0, NewLeaf("a", 1), NewLeaf("b", 1)); err == nil {
		t.Errorf("ELITE_SET with k=0 accepted")
	}
}

func TestBinaryRequiresBothChildren(t *testing.T) {
	if _, err := NewAndNot(NewLeaf("a", 1), nil); err == nil {
		t.Errorf("AND_NOT with nil right child accepted")
	}
	if _, err := NewAndMaybe(nil, NewLeaf("b", 1)); err == nil {
		t.Errorf("AND_MAYBE with nil left child accepted")
	}
}

func TestScaleWeightRejectsNegativeScale(t *testing.T) {
	if _, err := NewScaleWeight(NewLeaf("a", 1), -0.5); err == nil {
		t.Errorf("SCALE_WEIGHT with negative scale accepted")
	}
	if _, err := NewScaleWeight(nil, 1.0); err == nil {
		t.Errorf("SCALE_WEIGHT with nil child accepted")
	}
}

func TestDescribe(t *testing.T) {
	leaf := NewLeaf("cat", 2)
	if got, want := leaf.Describe(), "LEAF(cat,wqf=2)"; got != want {
		t.Errorf("leaf.Describe() = %q, want %q", got, want)
	}
	if got, want := NewLeaf("", 0).Describe(), "LEAF()"; got != want {
		t.Errorf("non-scoring leaf.Describe() = %q, want %q", got, want)
	}

	phrase, err := NewPhrase(3, NewLeaf("a", 1), NewLeaf("b", 1))
	if err != nil {
		t.Fatalf("NewPhrase: %v", err)
	}
	if got, want := phrase.Describe(), "PHRASE(3,LEAF,LEAF)"; got != want {
		t.Errorf("phrase.Describe() = %q, want %q", got, want)
	}

	vr := NewValueRange(2, "a", "z")
	if got, want := vr.Describe(), `VALUE_RANGE(slot=2,"a".."z")`; got != want {
		t.Errorf("value range.Describe() = %q, want %q", got, want)
	}

	if got, want := (MatchNothing{}).Describe(), "MATCH_NOTHING"; got != want {
		t.Errorf("MatchNothing.Describe() = %q, want %q", got, want)
	}
}
