package search_test

import (
	"context"
	"testing"

	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/corvidlabs/grandpa/pkg/board/fen"
	"github.com/corvidlabs/grandpa/pkg/eval"
	"github.com/corvidlabs/grandpa/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, f string) *board.Board {
	t.Helper()
	pos, turn, noprogress, fullmoves, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(1), pos, turn, noprogress, fullmoves)
}

func TestPVSFindsMateInOne(t *testing.T) {
	ctx := context.Background()

	// White to move: Ra1-a8 is a textbook back-rank mate.
	b := newTestBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")

	s := search.PVS{Eval: search.Quiescence{Eval: eval.Material{}}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf, TT: search.NoTranspositionTable{}}

	_, score, moves, err := s.Search(ctx, sctx, b, 2)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	d, ok := score.MateDistance()
	assert.True(t, ok, "expected a mate score, got %v", score)
	assert.Equal(t, 1, d)
	assert.True(t, score > 0)
	assert.Equal(t, board.Move{Type: board.Normal, Piece: board.Rook, From: board.A1, To: board.A8}, moves[0])
}

func TestPVSPrefersMaterialWinningCapture(t *testing.T) {
	ctx := context.Background()

	// White rook can capture an undefended black queen.
	b := newTestBoard(t, "4k3/8/8/8/3q4/8/8/3R2K1 w - - 0 1")

	s := search.PVS{Eval: search.Quiescence{Eval: eval.Material{}}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf, TT: search.NoTranspositionTable{}}

	_, score, moves, err := s.Search(ctx, sctx, b, 2)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	assert.Equal(t, board.Move{Type: board.Capture, Piece: board.Rook, From: board.D1, To: board.D4, Capture: board.Queen}, moves[0])
	assert.True(t, score > eval.Score(600), "expected a large material swing, got %v", score)
}

func TestPVSRoundTripsThroughTranspositionTable(t *testing.T) {
	ctx := context.Background()

	b := newTestBoard(t, fen.Initial)
	tt := search.NewTranspositionTable(ctx, 1<<16)

	s := search.PVS{Eval: search.Quiescence{Eval: eval.Material{}}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf, TT: tt}

	_, score1, _, err := s.Search(ctx, sctx, b, 2)
	require.NoError(t, err)

	sctx2 := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf, TT: tt}
	_, score2, _, err := s.Search(ctx, sctx2, b, 2)
	require.NoError(t, err)

	assert.Equal(t, score1, score2)
	assert.True(t, tt.Used() > 0)
}

func TestPVSHonorsPonderMove(t *testing.T) {
	ctx := context.Background()

	b := newTestBoard(t, fen.Initial)
	s := search.PVS{Eval: search.Quiescence{Eval: eval.Material{}}}

	move := board.Move{Type: board.Jump, Piece: board.Pawn, From: board.E2, To: board.E4}
	sctx := &search.Context{
		Alpha: eval.NegInf, Beta: eval.Inf,
		TT:     search.NoTranspositionTable{},
		Ponder: []board.Move{move},
	}

	_, _, moves, err := s.Search(ctx, sctx, b, 2)
	require.NoError(t, err)
	require.NotEmpty(t, moves)
	assert.Equal(t, move, moves[0])
}

func TestPVSDetectsForcedMateDespitePruning(t *testing.T) {
	ctx := context.Background()

	// White, with a lone king, is to move and gets mated within two black moves: at this depth the search must find the mate despite null-move, futility and LMR pruning,
	// all of which are only permitted to skip moves that cannot be the best move.
	b := newTestBoard(t, "8/4K3/2b5/3kp3/8/8/1n6/b4r2 w - - 1 10")
	tt := search.NewTranspositionTable(ctx, 1<<16)

	s := search.PVS{Eval: search.Quiescence{Eval: eval.Material{}}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf, TT: tt}

	_, score, moves, err := s.Search(ctx, sctx, b, 4)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	assert.True(t, score.IsMate(), "expected a mate score, got %v", score)
	assert.True(t, score < 0, "white to move is the side that gets mated, expected a losing score")
}

func TestPVSNullMovePruningPreservesBestMove(t *testing.T) {
	ctx := context.Background()

	// Same winning capture as above, but at a depth where null-move pruning (depth >= 3) is
	// active: the prune may shrink the tree, but it must never change the chosen best move.
	b := newTestBoard(t, "4k3/8/8/8/3q4/8/8/3R2K1 w - - 0 1")

	s := search.PVS{Eval: search.Quiescence{Eval: eval.Material{}}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf, TT: search.NoTranspositionTable{}}

	_, score, moves, err := s.Search(ctx, sctx, b, 3)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	assert.Equal(t, board.Move{Type: board.Capture, Piece: board.Rook, From: board.D1, To: board.D4, Capture: board.Queen}, moves[0])
	assert.True(t, score > eval.Score(600), "expected a large material swing, got %v", score)
}
