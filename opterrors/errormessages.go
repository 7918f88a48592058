//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

package opterrors

// ErrData documents an ErrorCode for operators surfacing optimiser
// failures to users; it carries no behaviour.
type ErrData struct {
	Code        ErrorCode
	Description string
	Causes      []string
	Actions     []string
}

var errmap = map[ErrorCode]ErrData{
	E_PRECONDITION: {
		Code:        E_PRECONDITION,
		Description: "The query tree handed to the optimiser violates an operator invariant.",
		Causes: []string{
			"An AND/FILTER/NEAR/PHRASE/OR/XOR/ELITE_SET/SYNONYM node has fewer than 2 children.",
			"An AND_NOT/AND_MAYBE node does not have exactly 2 children.",
			"A SCALE_WEIGHT node does not have exactly 1 child, or its scale factor is negative.",
			"A node carries an operator code the optimiser does not recognise.",
		},
		Actions: []string{
			"This is a bug in the caller that built the QueryNode tree, not a user-correctable condition.",
		},
	},
	E_RESOURCE: {
		Code:        E_RESOURCE,
		Description: "A collaborator (PostListFactory or Database) failed while the optimiser was constructing a postlist tree.",
		Causes: []string{
			"Allocation failure while constructing a postlist.",
			"The database could not answer a capability query (has_positions, doclength bounds).",
		},
		Actions: []string{
			"Retry the optimisation; if it recurs, inspect the wrapped cause.",
		},
	},
}

// Describe returns the documentation registered for code, or the zero
// ErrData if code is unregistered.
func Describe(code ErrorCode) ErrData {
	return errmap[code]
}
