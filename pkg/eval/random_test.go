package eval_test

import (
	"context"
	"testing"

	"github.com/corvidlabs/grandpa/pkg/board/fen"
	"github.com/corvidlabs/grandpa/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestRandomZeroValueIsDeterministic(t *testing.T) {
	ctx := context.Background()
	b := newEvalBoard(t, fen.Initial)

	var r eval.Random
	assert.Equal(t, eval.Score(0), r.Evaluate(ctx, b))
}

func TestRandomSameSeedReproducesSequence(t *testing.T) {
	ctx := context.Background()
	b := newEvalBoard(t, fen.Initial)

	a := eval.NewRandom(40, 7)
	c := eval.NewRandom(40, 7)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Evaluate(ctx, b), c.Evaluate(ctx, b))
	}
}

func TestRandomStaysWithinLimit(t *testing.T) {
	ctx := context.Background()
	b := newEvalBoard(t, fen.Initial)

	r := eval.NewRandom(10, 3)
	for i := 0; i < 50; i++ {
		score := r.Evaluate(ctx, b)
		assert.True(t, score >= -5 && score <= 5, "noise out of [-limit/2;limit/2]: %v", score)
	}
}
