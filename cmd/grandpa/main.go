// Command grandpa is a simple UCI chess engine: iterative-deepening principal variation
// search with quiescence, a classical piece-square-table evaluator and a transposition table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corvidlabs/grandpa/pkg/engine"
	"github.com/corvidlabs/grandpa/pkg/engine/console"
	"github.com/corvidlabs/grandpa/pkg/engine/uci"
	"github.com/corvidlabs/grandpa/pkg/eval"
	"github.com/corvidlabs/grandpa/pkg/pawncache"
	"github.com/corvidlabs/grandpa/pkg/search"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Uint("depth", 0, "Search depth limit (zero for no limit)")
	hash  = flag.Uint("hash", 32, "Transposition table size in MB (zero disables it)")
	noise = flag.Uint("noise", 0, "Evaluation noise in millipawns (zero if deterministic)")
	pawns = flag.Uint64("pawncache", 1<<16, "Pawn structure cache entry count")
	book  = flag.String("book", "", "Path to a Polyglot opening book (none if empty)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: grandpa [options]

grandpa is a simple UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	classical := eval.Classical{Pawns: pawncache.New(*pawns)}

	s := search.PVS{
		Eval: search.Quiescence{
			Eval: classical,
		},
	}
	e := engine.New(ctx, "grandpa", "corvidlabs", s,
		engine.WithOptions(engine.Options{Depth: *depth, Hash: *hash, Noise: *noise}))

	var uciOpts []uci.Option
	if *book != "" {
		f, err := os.Open(*book)
		if err != nil {
			logw.Exitf(ctx, "Failed to open book %v: %v", *book, err)
		}
		defer f.Close()

		b, err := engine.NewPolyglotBook(f, e.Zobrist(), 0)
		if err != nil {
			logw.Exitf(ctx, "Failed to parse book %v: %v", *book, err)
		}
		uciOpts = append(uciOpts, uci.UseBook(b, 0))
	}

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in, uciOpts...)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
