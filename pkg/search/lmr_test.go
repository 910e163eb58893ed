package search

import (
	"testing"

	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestLateMoveReductionSkipsInterestingMoves(t *testing.T) {
	quiet := board.Move{Type: board.Normal, Piece: board.Knight, From: board.B1, To: board.C3}
	capture := board.Move{Type: board.Capture, Piece: board.Knight, From: board.B1, To: board.C3, Capture: board.Pawn}
	promo := board.Move{Type: board.Promotion, Piece: board.Pawn, From: board.A7, To: board.A8, Promotion: board.Queen}
	castle := board.Move{Type: board.KingSideCastle, Piece: board.King, From: board.E1, To: board.G1}

	assert.Equal(t, 0, lateMoveReduction(6, false, false, board.White, capture))
	assert.Equal(t, 0, lateMoveReduction(6, false, false, board.White, promo))
	assert.Equal(t, 0, lateMoveReduction(6, false, false, board.White, castle))
	assert.Equal(t, 0, lateMoveReduction(6, true, false, board.White, quiet), "escaping check is never reduced")
	assert.Equal(t, 0, lateMoveReduction(6, false, true, board.White, quiet), "giving check is never reduced")
}

func TestLateMoveReductionScalesWithDepth(t *testing.T) {
	quiet := board.Move{Type: board.Normal, Piece: board.Knight, From: board.B1, To: board.C3}

	assert.Equal(t, 0, lateMoveReduction(2, false, false, board.White, quiet), "below the reduction threshold")
	assert.Equal(t, 1, lateMoveReduction(3, false, false, board.White, quiet))
	assert.Equal(t, 1, lateMoveReduction(4, false, false, board.White, quiet))
	assert.Equal(t, 1, lateMoveReduction(5, false, false, board.White, quiet), "depth/4 == 1 at depth 5")
	assert.Equal(t, 2, lateMoveReduction(8, false, false, board.White, quiet), "depth/4 == 2 at depth 8")
}

func TestLateMoveReductionExcludesPawnPushIntoEnemyHalf(t *testing.T) {
	whitePush := board.Move{Type: board.Push, Piece: board.Pawn, From: board.E4, To: board.E5}
	blackPush := board.Move{Type: board.Push, Piece: board.Pawn, From: board.E5, To: board.E4}
	ownHalf := board.Move{Type: board.Push, Piece: board.Pawn, From: board.E2, To: board.E3}

	assert.Equal(t, 0, lateMoveReduction(6, false, false, board.White, whitePush))
	assert.Equal(t, 0, lateMoveReduction(6, false, false, board.Black, blackPush))
	assert.Equal(t, 1, lateMoveReduction(6, false, false, board.White, ownHalf), "push still in own half is reducible")
}

func TestEntersEnemyHalf(t *testing.T) {
	assert.True(t, entersEnemyHalf(board.White, board.Move{To: board.D5}))
	assert.False(t, entersEnemyHalf(board.White, board.Move{To: board.D4}))
	assert.True(t, entersEnemyHalf(board.Black, board.Move{To: board.D4}))
	assert.False(t, entersEnemyHalf(board.Black, board.Move{To: board.D5}))
}
