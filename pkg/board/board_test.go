package board_test

import (
	"testing"

	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/corvidlabs/grandpa/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, f string) *board.Board {
	t.Helper()
	pos, turn, noprogress, fullmoves, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(1), pos, turn, noprogress, fullmoves)
}

func TestPushNullMoveFlipsTurnAndClearsEnPassant(t *testing.T) {
	b := newBoard(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")

	before := b.Position()
	_, hasEP := before.EnPassant()
	require.True(t, hasEP)

	ok := b.PushNullMove()
	require.True(t, ok)

	assert.Equal(t, board.Black, b.Turn())
	_, hasEP = b.Position().EnPassant()
	assert.False(t, hasEP, "null move clears en passant")
	assert.Equal(t, before.Piece(board.White, board.Pawn), b.Position().Piece(board.White, board.Pawn))
}

func TestPopNullMoveRestoresPosition(t *testing.T) {
	b := newBoard(t, fen.Initial)

	before := b.Position()
	beforeHash := b.Hash()
	beforeTurn := b.Turn()

	require.True(t, b.PushNullMove())
	b.PopNullMove()

	assert.Equal(t, beforeTurn, b.Turn())
	assert.Equal(t, beforeHash, b.Hash())
	assert.Equal(t, *before, *b.Position())
}

func TestPushNullMoveRejectedInCheck(t *testing.T) {
	// White king on E1 in check from a black rook on E4: passing is not legal.
	pos, err := board.NewPosition([]board.Placement{
		{board.E1, board.White, board.King},
		{board.E8, board.Black, board.King},
		{board.A8, board.Black, board.Rook},
		{board.E4, board.Black, board.Rook},
	}, 0, 0)
	require.NoError(t, err)

	b := board.NewBoard(board.NewZobristTable(1), pos, board.White, 0, 1)
	assert.False(t, b.PushNullMove())
	assert.Equal(t, board.White, b.Turn())
}
