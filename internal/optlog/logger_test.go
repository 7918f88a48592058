//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

package optlog

import "testing"

type countingLogger struct {
	traces, debugs, warns, errors int
	level                         Level
}

func (c *countingLogger) Tracea(f func() string) { c.traces++; f() }
func (c *countingLogger) Debuga(f func() string) { c.debugs++; f() }
func (c *countingLogger) Warnf(format string, args ...interface{})  { c.warns++ }
func (c *countingLogger) Errorf(format string, args ...interface{}) { c.errors++ }
func (c *countingLogger) Level() Level                               { return c.level }
func (c *countingLogger) SetLevel(l Level)                           { c.level = l }

func TestTraceaSkippedBelowLevel(t *testing.T) {
	c := &countingLogger{level: WARN}
	SetLogger(c)
	defer SetLogger(NewWriterLogger(nil, WARN))

	called := false
	Tracea(func() string { called = true; return "trace" })
	if called {
		t.Fatal("Tracea should not evaluate its argument when TRACE is disabled")
	}
	if c.traces != 0 {
		t.Fatalf("expected 0 trace lines, got %d", c.traces)
	}
}

func TestTraceaFiresAtTraceLevel(t *testing.T) {
	c := &countingLogger{level: TRACE}
	SetLogger(c)
	defer SetLogger(NewWriterLogger(nil, WARN))

	called := false
	Tracea(func() string { called = true; return "trace" })
	if !called || c.traces != 1 {
		t.Fatalf("expected Tracea to fire once, called=%v traces=%d", called, c.traces)
	}
}

func TestWarnfAlwaysAtDefaultLevel(t *testing.T) {
	c := &countingLogger{level: WARN}
	SetLogger(c)
	defer SetLogger(NewWriterLogger(nil, WARN))

	Warnf("positional demotion: %s", "no positions")
	if c.warns != 1 {
		t.Fatalf("expected 1 warn line, got %d", c.warns)
	}
}

func TestNilLoggerDisablesLogging(t *testing.T) {
	SetLogger(nil)
	defer SetLogger(NewWriterLogger(nil, WARN))

	Warnf("should be dropped")
	Tracea(func() string { t.Fatal("should not be called"); return "" })
}
