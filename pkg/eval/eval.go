// Package eval contains static position evaluation: material, piece-square tables, pawn
// structure and king safety, plus the pawn-structure cache that memoizes the pawn-only terms.
package eval

import (
	"context"

	"github.com/corvidlabs/grandpa/pkg/board"
)

// Evaluator is a static position evaluator. It must be a pure function of the position: no
// history, no side effects, safe to call concurrently.
type Evaluator interface {
	// Evaluate returns the position score, in centipawns, from the perspective of the side
	// to move.
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Material returns the nominal material advantage balance for the side to move. Useful as a
// cheap baseline evaluator, e.g. for perft-style move ordering or tests.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()

	var score Score
	for p := board.Pawn; p <= board.King; p++ {
		gain := pos.Piece(turn, p).PopCount() - pos.Piece(turn.Opponent(), p).PopCount()
		score += Score(gain) * NominalValue(p) * 100
	}
	return score
}

// NominalValue is the absolute nominal value in pawns of a piece. The King has an arbitrary
// value, since it is never traded, used only to rank captures.
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 1
	case board.Bishop, board.Knight:
		return 3
	case board.Rook:
		return 5
	case board.Queen:
		return 9
	case board.King:
		return 100
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain for a move, used for MVV-LVA move ordering
// and static-exchange-free futility checks.
func NominalValueGain(m board.Move) Score {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}

// Randomize wraps an Evaluator with a small amount of Random noise, so that otherwise
// deterministic play varies from game to game. A limit of zero disables the noise and
// returns the Evaluator unchanged.
func Randomize(e Evaluator, limitCP int, seed int64) Evaluator {
	if limitCP <= 0 {
		return e
	}
	return noisy{Evaluator: e, noise: NewRandom(limitCP, seed)}
}

type noisy struct {
	Evaluator
	noise Random
}

func (n noisy) Evaluate(ctx context.Context, b *board.Board) Score {
	return n.Evaluator.Evaluate(ctx, b) + n.noise.Evaluate(ctx, b)
}
