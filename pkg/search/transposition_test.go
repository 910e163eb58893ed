package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/corvidlabs/grandpa/pkg/eval"
	"github.com/corvidlabs/grandpa/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTable(t *testing.T) {
	ctx := context.Background()

	// (1) Test that we round down to a power-of-two entry count.

	tt := search.NewTranspositionTable(ctx, 0x1000)
	assert.Equal(t, uint64(0x1000), tt.Size())
	tt2 := search.NewTranspositionTable(ctx, 0x1f00)
	assert.Equal(t, uint64(0x1000), tt2.Size())

	// (2) Test read/write.

	a := board.ZobristHash(rand.Uint64())

	_, _, _, _, ok := tt.Read(a)
	assert.False(t, ok)

	m := board.Move{From: board.G4, To: board.G8, Promotion: board.Queen}
	s := eval.Score(200)
	_ = tt.Write(a, search.PVBound, 5, 2, s, m)

	bound, depth, score, move, ok := tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, search.PVBound, bound)
	assert.Equal(t, 2, depth)
	assert.Equal(t, s, score)
	assert.Equal(t, m, move)

	_, _, _, _, ok = tt.Read(a ^ 0xff0000)
	assert.False(t, ok)

	// (3) Test replacement by value (ply + 2*depth): a write of lower value than the stored
	// entry is rejected, one of equal or higher value replaces it.

	norepl := tt.Write(a, search.PVBound, 2, 1, eval.Score(5), m)
	assert.False(t, norepl)

	repl := tt.Write(a, search.PVBound, 6, 3, eval.Score(5), m)
	assert.True(t, repl)
}

func TestNoTranspositionTable(t *testing.T) {
	tt := search.NoTranspositionTable{}
	_, _, _, _, ok := tt.Read(board.ZobristHash(1))
	assert.False(t, ok)
	assert.False(t, tt.Write(board.ZobristHash(1), search.CutBound, 0, 1, eval.Score(10), board.Move{}))
}
