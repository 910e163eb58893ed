package search_test

import (
	"context"
	"testing"

	"github.com/corvidlabs/grandpa/pkg/eval"
	"github.com/corvidlabs/grandpa/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestQuiescenceStandPat(t *testing.T) {
	ctx := context.Background()

	// Quiet position, no captures available: quiescence should return the stand-pat score
	// immediately without searching further.
	b := newTestBoard(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	q := search.Quiescence{Eval: eval.Material{}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf}

	nodes, score := q.Run(ctx, sctx, b)
	assert.Equal(t, uint64(1), nodes)
	assert.Equal(t, eval.Score(0), score)
}

func TestQuiescenceFindsWinningCapture(t *testing.T) {
	ctx := context.Background()

	// White pawn can capture a hanging black knight; quiescence must explore it since it
	// is a capture, even though only captures (not quiet moves) are considered here.
	b := newTestBoard(t, "4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")

	q := search.Quiescence{Eval: eval.Material{}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf}

	_, score := q.Run(ctx, sctx, b)
	assert.True(t, score > eval.Score(0), "expected the capture to improve the score, got %v", score)
}

func TestQuiescenceRespectsBetaCutoff(t *testing.T) {
	ctx := context.Background()

	b := newTestBoard(t, "4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")

	q := search.Quiescence{Eval: eval.Material{}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Score(1)}

	_, score := q.Run(ctx, sctx, b)
	assert.True(t, score >= eval.Score(1))
}

func TestQuiescenceIgnoresQuietMoves(t *testing.T) {
	ctx := context.Background()

	// No captures or queen promotions available: quiescence must not descend past the
	// stand-pat evaluation regardless of quiet tactical tries available on the board.
	b := newTestBoard(t, "4k3/8/8/8/8/4K3/8/8 w - - 0 1")

	q := search.Quiescence{Eval: eval.Material{}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf}

	nodes, score := q.Run(ctx, sctx, b)
	assert.Equal(t, uint64(1), nodes)
	assert.Equal(t, eval.Score(0), score)
}
