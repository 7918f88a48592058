//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Command optimisedemo runs the query optimiser end-to-end against an
// in-memory stub database and prints the postlist tree each sample
// query produces, so the effect of flattening, Huffman balancing,
// elite-set pruning and positional demotion can be inspected without a
// real index.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danc86/xapian/database"
	"github.com/danc86/xapian/internal/optlog"
	"github.com/danc86/xapian/optconfig"
	"github.com/danc86/xapian/opterrors"
	"github.com/danc86/xapian/optimiser"
	"github.com/danc86/xapian/optmetrics"
	"github.com/danc86/xapian/postlist"
	"github.com/danc86/xapian/querynode"
	"github.com/danc86/xapian/stats"
	"github.com/danc86/xapian/weight"
)

var (
	configPath = flag.String("config", "", "path to an optimiser YAML config file")
	positions  = flag.Bool("positions", true, "whether the stub database reports positional information")
	numDocs    = flag.Int("docs", 10000, "document count of the stub database")
)

// termFactory derives leaf postlists from the collection statistics and
// a BM25-shaped weighting stub, the way a real submatch would consult
// the configured weighting scheme.
type termFactory struct {
	st     *stats.Aggregator
	scheme weight.Scheme
}

func (f *termFactory) LeafPostList(tname string, wqf int, factor float64) (postlist.PostList, error) {
	nt := f.st.GetTermFreq(tname)
	var w float64
	if factor != 0 {
		w = factor * f.scheme.MaxWeight(nt, f.st)
	}
	return postlist.NewLeaf(tname, factor, nt, nt, w), nil
}

func (f *termFactory) SynonymPostList(inner postlist.PostList, factor float64) (postlist.PostList, error) {
	w := factor * f.scheme.MaxWeight(inner.TermFreqEst(), f.st)
	return postlist.NewSynonym(inner, factor, w), nil
}

func buildStats(db database.Database) *stats.Aggregator {
	// Two "shards" merged into a global view, the way a multi-database
	// search folds per-shard statistics together.
	shard1 := stats.New()
	shard1.TotalLength, shard1.CollectionSize = 300000, 6000
	shard1.SetTermFreq("cat", 800)
	shard1.SetTermFreq("dog", 70)
	shard1.SetTermFreq("fish", 2500)
	shard1.SetTermFreq("bird", 4)

	shard2 := stats.New()
	shard2.TotalLength, shard2.CollectionSize = 200000, 4000
	shard2.SetTermFreq("cat", 400)
	shard2.SetTermFreq("dog", 30)
	shard2.SetTermFreq("fish", 1500)
	shard2.SetTermFreq("feline", 60)

	global := stats.New()
	global.Merge(shard1)
	global.Merge(shard2)
	global.SetBoundsFromDB(db)
	return global
}

func sampleQueries() []struct {
	name  string
	query querynode.Node
} {
	leaf := querynode.NewLeaf

	and, _ := querynode.NewAnd(leaf("cat", 1), leaf("dog", 1))
	nested, _ := querynode.NewAnd(leaf("cat", 1), and)

	or, _ := querynode.NewOr(leaf("cat", 1), leaf("dog", 1), leaf("fish", 1), leaf("bird", 1))

	phrase, _ := querynode.NewPhrase(3, leaf("cat", 1), leaf("dog", 1), leaf("fish", 1))

	elite, _ := querynode.NewEliteSet(2, leaf("cat", 1), leaf("dog", 1), leaf("fish", 1), leaf("bird", 1))

	syn, _ := querynode.NewSynonym(leaf("cat", 1), leaf("feline", 1))

	scaled, _ := querynode.NewScaleWeight(leaf("dog", 1), 0.5)
	maybe, _ := querynode.NewAndMaybe(leaf("cat", 1), scaled)

	return []struct {
		name  string
		query querynode.Node
	}{
		{"nested AND", nested},
		{"OR over four terms", or},
		{"PHRASE window 3", phrase},
		{"ELITE_SET k=2", elite},
		{"SYNONYM", syn},
		{"AND_MAYBE with scaled arm", maybe},
		{"match nothing", nil},
	}
}

func main() {
	flag.Parse()

	cfg, err := optconfig.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "optimisedemo: %v\n", err)
		os.Exit(1)
	}
	if cfg.Trace {
		optlog.SetLevel(optlog.TRACE)
	}

	db := database.NewStub(*positions, *numDocs)
	st := buildStats(db)
	factory := &termFactory{st: st, scheme: weight.NewStub()}
	collector := optmetrics.New(prometheus.NewRegistry())

	opt := optimiser.New(cfg, db, db.Size(), factory, st, collector)

	fmt.Printf("stub database: %d docs, positions=%v, average doc length %.1f\n\n",
		db.Size(), db.HasPositions(), st.AverageLength())

	for _, sample := range sampleQueries() {
		pl, err := opt.Optimise(sample.query, 1.0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "optimisedemo: %s: %v\n", sample.name, err)
			var oe opterrors.Error
			if errors.As(err, &oe) {
				for _, action := range opterrors.Describe(oe.Code()).Actions {
					fmt.Fprintf(os.Stderr, "  %s\n", action)
				}
			}
			os.Exit(1)
		}
		fmt.Printf("%s:\n  %s\n  termfreq_est=%d maxweight=%.3f\n\n",
			sample.name, pl.Describe(), pl.TermFreqEst(), pl.MaxWeight())
		pl.Release()
	}
}
