//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Package opterrors distinguishes the two error kinds the optimiser can
// produce: a precondition violation (the caller handed the optimiser a
// malformed QueryNode; fatal, the caller has a bug) and a resource failure
// (allocation or a database capability call failed; recoverable, the caller
// may retry).
package opterrors

import (
	"fmt"
	"path"
	"runtime"
	"strings"
)

type ErrorCode int32

const (
	// E_PRECONDITION marks a malformed QueryNode or an impossible op code.
	// Always fatal: the caller has a bug.
	E_PRECONDITION ErrorCode = 1000
	// E_RESOURCE marks an allocation or database-capability failure
	// encountered while constructing a postlist. Recoverable: the caller
	// may retry the whole Optimise call.
	E_RESOURCE ErrorCode = 2000
)

type Error interface {
	error
	Code() ErrorCode
	// Fatal reports whether the optimisation must be aborted and surfaced
	// as an internal error rather than retried.
	Fatal() bool
	Cause() error
}

type optErr struct {
	code   ErrorCode
	msg    string
	cause  error
	caller string
}

func (e *optErr) Error() string {
	switch {
	case e.msg != "" && e.cause != nil:
		return e.msg + " - cause: " + e.cause.Error()
	case e.msg != "":
		return e.msg
	case e.cause != nil:
		return e.cause.Error()
	default:
		return "optimiser: unspecified error"
	}
}

func (e *optErr) Code() ErrorCode { return e.code }
func (e *optErr) Fatal() bool     { return e.code == E_PRECONDITION }
func (e *optErr) Cause() error    { return e.cause }

// NewPrecondition reports a programming error in the QueryNode passed to
// the optimiser: wrong operator arity, a nil required field, a negative
// factor. Debug builds of the caller are expected to assert on these
// before ever reaching the optimiser; release builds reach here instead.
func NewPrecondition(msg string) Error {
	return &optErr{code: E_PRECONDITION, msg: msg, caller: CallerN(1)}
}

// NewResource wraps a failure from a collaborator (the PostListFactory,
// the Database, or plain allocation) encountered mid-construction. The
// caller of Optimise may retry.
func NewResource(cause error, msg string) Error {
	return &optErr{code: E_RESOURCE, msg: msg, cause: cause, caller: CallerN(1)}
}

// Caller returns "file:line" of its caller, for attaching to log lines
// alongside a newly constructed Error.
func Caller() string {
	return CallerN(1)
}

func CallerN(level int) string {
	_, fname, lineno, ok := runtime.Caller(1 + level)
	if !ok {
		return "unknown:0"
	}
	return fmt.Sprintf("%s:%d", strings.Split(path.Base(fname), ".")[0], lineno)
}
