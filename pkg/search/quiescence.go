package search

import (
	"context"

	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/corvidlabs/grandpa/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// deltaMargin is added to the best possible gain of a capture before it is discarded as
// hopeless against alpha: a capture that cannot close the gap even in the best case for the
// side to move is not worth the recursion.
const deltaMargin = eval.Score(100)

// standPatDeltaMargin bounds the stand-pat delta prune at node entry: a queen's worth below
// alpha, no single remaining capture can make up the difference, so the node is resolved
// immediately without enumerating moves at all.
const standPatDeltaMargin = eval.Score(975)

// maxQuiescenceDepth bounds the capture-only recursion below the nominal search horizon: deep
// enough to resolve ordinary exchanges, shallow enough to guarantee termination independent
// of the (finite, but sometimes long) sequence of captures a position allows.
const maxQuiescenceDepth = 6

// Quiescence extends a full-width search with a capture-only search to the point where the
// position is "quiet" -- no more captures to consider -- before handing off to the static
// evaluator. This avoids the horizon effect of evaluating a position mid-exchange.
type Quiescence struct {
	Eval eval.Evaluator
}

// Run returns the node count and the quiescence score for b, from the perspective of the side
// to move, within the given alpha-beta window.
func (q Quiescence) Run(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	run := &runQuiescence{eval: q.Eval, noise: sctx.Noise, b: b}
	score := run.search(ctx, sctx.Alpha, sctx.Beta, maxQuiescenceDepth)
	return run.nodes, score
}

type runQuiescence struct {
	eval  eval.Evaluator
	noise eval.Random
	b     *board.Board
	nodes uint64
}

// search returns the score for the side to move, within [alpha;beta]. cap bounds the
// remaining recursion depth; at cap zero the stand-pat score is returned unconditionally.
func (r *runQuiescence) search(ctx context.Context, alpha, beta eval.Score, cap int) eval.Score {
	if contextx.IsCancelled(ctx) {
		return 0
	}
	if r.b.Result().Outcome == board.Draw {
		return 0
	}
	r.nodes++

	if r.b.Position().IsChecked(r.b.Turn()) && len(r.b.Position().LegalMoves(r.b.Turn())) == 0 {
		return -eval.MateScore // checkmated at the horizon
	}

	standPat := r.eval.Evaluate(ctx, r.b) + r.noise.Evaluate(ctx, r.b)
	if standPat >= beta {
		return standPat
	}
	if !standPat.IsMate() && standPat < alpha-standPatDeltaMargin {
		return alpha // delta pruning: no single capture can close a queen's worth of gap
	}
	alpha = eval.Max(alpha, standPat)
	if cap <= 0 {
		return standPat
	}

	turn := r.b.Turn()
	checkExtension := cap == maxQuiescenceDepth // bound the cost: only extend checks at the first ply
	moves := board.NewMoveList(r.b.Position().PseudoLegalMoves(turn), captureOrder(r.b.Position(), turn))
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		capture := isQuiescenceMove(m)
		if !capture && !checkExtension {
			continue
		}
		if capture && !standPat.IsMate() && standPat+eval.NominalValueGain(m)*100+deltaMargin <= alpha {
			continue // delta pruning: even winning the exchange outright can't raise alpha
		}
		if !r.b.PushMove(m) {
			continue // skip: not legal
		}
		if !capture && !r.b.Position().IsChecked(r.b.Turn()) {
			r.b.PopMove()
			continue // quiet move that doesn't give check: not a quiescence move
		}

		score := r.search(ctx, beta.Negate(), alpha.Negate(), cap-1)
		score = eval.IncrementMateDistance(score).Negate()
		r.b.PopMove()

		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break // cutoff
		}
	}
	return alpha
}

// isQuiescenceMove selects captures and queen promotions: the moves that can change a
// "quiet" evaluation's verdict within a bounded number of further plies.
func isQuiescenceMove(m board.Move) bool {
	return m.IsCapture() || (m.IsPromotion() && m.Promotion == board.Queen)
}

// captureOrder returns the MVV-LVA move priority, refined by a one-ply static-exchange check:
// a capture of a high-value piece with a low-value attacker is searched first, since it is most
// likely to produce an early beta cutoff; a capture left defended by a cheaper piece is pushed
// to the back, since it is unlikely to survive the exchange.
func captureOrder(pos *board.Position, turn board.Color) board.MovePriorityFn {
	return func(m board.Move) board.MovePriority {
		p := board.MovePriority(100 * eval.NominalValueGain(m))
		if p <= 0 {
			return 0
		}
		if !isSafeCapture(pos, turn, m) {
			p -= 20000 // push likely-losing trades to the back, but keep them above quiet moves
		}
		return p - board.MovePriority(eval.NominalValue(m.Piece))
	}
}

// isSafeCapture reports whether the capturing piece is worth at least as much as the cheapest
// defender recapturing on the target square, using FindCapture/SortByNominalValue as a one-ply
// static exchange estimate -- not a full SEE, but enough to deprioritize losing trades.
func isSafeCapture(pos *board.Position, turn board.Color, m board.Move) bool {
	defenders := eval.SortByNominalValue(eval.FindCapture(pos, turn.Opponent(), m.To))
	if len(defenders) == 0 {
		return true
	}
	return eval.NominalValue(m.Piece) <= eval.NominalValue(defenders[0].Piece)
}
