package eval_test

import (
	"context"
	"testing"

	"github.com/corvidlabs/grandpa/pkg/board/fen"
	"github.com/corvidlabs/grandpa/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestClassicalStartingPositionIsNearlyBalanced(t *testing.T) {
	ctx := context.Background()
	b := newEvalBoard(t, fen.Initial)

	// Every term is color-symmetric and Black's piece-square tables are rank mirrors of
	// White's, so the starting position scores 0, well inside the bound asserted here.
	score := eval.Classical{}.Evaluate(ctx, b)
	assert.True(t, score > -50 && score < 50, "expected a near-balanced opening score, got %v", score)
}

func TestClassicalFlipsWithSideToMove(t *testing.T) {
	ctx := context.Background()
	white := newEvalBoard(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	black := newEvalBoard(t, "4k3/8/8/8/8/8/4P3/4K3 b - - 0 1")

	assert.Equal(t, eval.Classical{}.Evaluate(ctx, white), -eval.Classical{}.Evaluate(ctx, black))
}

func TestClassicalRewardsExtraMaterial(t *testing.T) {
	ctx := context.Background()
	even := newEvalBoard(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	up := newEvalBoard(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")

	assert.True(t, eval.Classical{}.Evaluate(ctx, up) > eval.Classical{}.Evaluate(ctx, even)+500)
}

func TestClassicalPenalizesPinnedPiece(t *testing.T) {
	ctx := context.Background()

	// White knight on d2 is pinned to the king by the rook on d8; moving the king one file
	// over breaks the pin without otherwise changing the position.
	pinned := newEvalBoard(t, "3rk3/8/8/8/8/8/3N4/3K4 w - - 0 1")
	unpinned := newEvalBoard(t, "3rk3/8/8/8/8/8/3N4/4K3 w - - 0 1")

	assert.True(t, eval.Classical{}.Evaluate(ctx, pinned) < eval.Classical{}.Evaluate(ctx, unpinned))
}
