package search

import (
	"context"
	"fmt"

	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/corvidlabs/grandpa/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// PVS implements principal variation search: the first move at each node is searched with a
// full window, and every later move is first probed with a null window (alpha, alpha+1) on the
// assumption that the first move is already the best; a fail-high on that probe triggers a full
// re-search. Combined with good move ordering this prunes far more than plain alpha-beta without
// changing the result. Pseudo-code:
//
// function pvs(node, depth, alpha, beta, color) is
//
//	if depth = 0 or node is a terminal node then
//	    return color * the heuristic value of node
//	for each child of node do
//	    if child is first child then
//	        score := -pvs(child, depth-1, -beta, -alpha, -color)
//	    else
//	        score := -pvs(child, depth-1, -alpha-1, -alpha, -color)
//	        if alpha < score < beta then
//	            score := -pvs(child, depth-1, -beta, -score, -color)
//	    alpha := max(alpha, score)
//	    if alpha >= beta then
//	        break
//	return alpha
//
// See: https://en.wikipedia.org/wiki/Principal_variation_search.
//
// Beyond plain PVS, each node applies three pruning heuristics before the move loop and one
// reduction inside it:
//
//   - Null-move pruning: if the side to move can pass (not in check) and a much shallower
//     search of the resulting position still fails high, the position is so good that the
//     real move will too; prune the whole subtree.
//   - Futility/razoring: a cheap material-only estimate that already falls hopelessly short
//     of alpha at shallow depth marks ordinary quiet moves here as unlikely to recover, so
//     they are skipped rather than searched.
//   - Late-move reduction (LMR): a quiet, non-check move searched after the first few,
//     ordered-by-merit moves is probed at reduced depth on the assumption that move ordering
//     is approximately right; a fail-high promotes it to a full-depth re-search.
type PVS struct {
	Eval Quiescence
}

const (
	// nullMoveMinDepth is the shallowest depth at which a null-move probe is attempted.
	nullMoveMinDepth = 3
	// nullMoveReduction is the ply reduction applied to the null-move probe itself.
	nullMoveReduction = 3

	// Futility margins: a side-to-move whose cheap material balance plus the margin for its
	// depth still cannot reach alpha is considered hopeless for ordinary quiet moves. Razoring
	// (depth 3) uses the largest margin since it is furthest from the quiescence horizon.
	futMargin    = eval.Score(150)
	extFutMargin = eval.Score(300)
	razorMargin  = eval.Score(900)
)

func (p PVS) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runPVS{eval: p.Eval, tt: sctx.TT, noise: sctx.Noise, b: b}

	var score eval.Score
	var moves []board.Move
	if len(sctx.Ponder) > 0 {
		move := sctx.Ponder[0]
		if !b.PushMove(move) {
			return 0, 0, nil, fmt.Errorf("ponder move %v is not legal", move)
		}
		var rem []board.Move
		score, rem = run.search(ctx, depth-1, sctx.Beta.Negate(), sctx.Alpha.Negate())
		score = eval.IncrementMateDistance(score).Negate()
		b.PopMove()
		moves = append([]board.Move{move}, rem...)
	} else {
		score, moves = run.search(ctx, depth, sctx.Alpha, sctx.Beta)
	}

	if contextx.IsCancelled(ctx) {
		return 0, 0, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runPVS struct {
	eval  Quiescence
	tt    TranspositionTable
	noise eval.Random
	b     *board.Board
	nodes uint64
}

// search returns the score for the side to move, within [alpha;beta], plus the line that
// achieves it.
func (m *runPVS) search(ctx context.Context, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return 0, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return 0, nil
	}

	hash := m.b.Hash()

	var best board.Move
	if bound, d, score, tm, ok := m.tt.Read(hash); ok {
		best = tm
		if d >= depth {
			switch {
			case bound == PVBound:
				return score, nil
			case bound == CutBound && score >= beta:
				return score, nil
			case bound == AllBound && score <= alpha:
				return score, nil
			}
		}
	}

	if depth <= 0 {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise}
		nodes, score := m.eval.Run(ctx, sctx, m.b)
		m.nodes += nodes
		return score, nil
	}

	m.nodes++

	inCheck := m.b.Position().IsChecked(m.b.Turn())

	if !inCheck && depth >= nullMoveMinDepth && m.b.PushNullMove() {
		score, _ := m.search(ctx, depth-nullMoveReduction, beta.Negate(), beta.Negate()+1)
		score = eval.IncrementMateDistance(score).Negate()
		m.b.PopNullMove()
		if score >= beta {
			return beta, nil
		}
	}

	var futile bool
	var futilityMax eval.Score
	if !inCheck {
		material := eval.Material{}.Evaluate(ctx, m.b)
		switch {
		case depth == 3 && material+razorMargin <= alpha:
			futile, futilityMax = true, material+razorMargin
		case depth == 2 && material+extFutMargin <= alpha:
			futile, futilityMax = true, material+extFutMargin
		case depth == 1 && material+futMargin <= alpha:
			futile, futilityMax = true, material+futMargin
		}
	}

	hasLegalMove := false
	bound := AllBound
	var pv []board.Move

	turn := m.b.Turn()
	moves := board.NewMoveList(m.b.Position().PseudoLegalMoves(turn), board.First(best, mvvlva))
	first := true
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !m.b.PushMove(move) {
			continue // skip: not legal
		}
		hasLegalMove = true
		givesCheck := m.b.Position().IsChecked(m.b.Turn())

		if !first && futile && !givesCheck && futilityMax+eval.NominalValueGain(move)*100 <= alpha {
			m.b.PopMove()
			continue // futility: even winning this move's capture outright can't reach alpha
		}

		var score eval.Score
		var rem []board.Move
		if first {
			score, rem = m.search(ctx, depth-1, beta.Negate(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
		} else {
			reduction := lateMoveReduction(depth, inCheck, givesCheck, turn, move)

			score, rem = m.search(ctx, depth-1-reduction, -alpha-1, alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
			if alpha < score && score < beta {
				score, rem = m.search(ctx, depth-1, beta.Negate(), score.Negate())
				score = eval.IncrementMateDistance(score).Negate()
			}
		}
		m.b.PopMove()
		first = false

		if score > alpha {
			alpha = score
			pv = append([]board.Move{move}, rem...)
			bound = PVBound
			best = move
		}
		if alpha >= beta {
			bound = CutBound
			break // beta cutoff
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return -eval.MateScore, nil // mate in 0 at this node; discounted as it unwinds
		}
		return 0, nil
	}

	m.tt.Write(hash, bound, m.b.Ply(), depth, alpha, best)
	return alpha, pv
}

// mvvlva implements the most-valuable-victim/least-valuable-attacker move priority: captures
// of high-value pieces by low-value attackers are explored first.
func mvvlva(m board.Move) board.MovePriority {
	if p := board.MovePriority(100 * eval.NominalValueGain(m)); p > 0 {
		return p - board.MovePriority(eval.NominalValue(m.Piece))
	}
	return 0
}

// lateMoveReduction returns the ply reduction for a move searched past the first in the scout
// loop: zero for anything "interesting" -- a capture, a promotion, a castle, a pawn push past
// the board's midline, or a move that gives or escapes check -- since those are exactly the
// moves whose tactical value move ordering can't be trusted to predict.
func lateMoveReduction(depth int, inCheck, givesCheck bool, turn board.Color, m board.Move) int {
	if inCheck || givesCheck {
		return 0
	}
	if m.IsCapture() || m.IsPromotion() {
		return 0
	}
	if m.Type == board.KingSideCastle || m.Type == board.QueenSideCastle {
		return 0
	}
	if m.Piece == board.Pawn && entersEnemyHalf(turn, m) {
		return 0
	}

	switch {
	case depth >= 5:
		return depth / 4
	case depth >= 3:
		return 1
	default:
		return 0
	}
}

// entersEnemyHalf reports whether a pawn push lands in the opponent's half of the board.
func entersEnemyHalf(turn board.Color, m board.Move) bool {
	if turn == board.White {
		return m.To.Rank() >= board.Rank5
	}
	return m.To.Rank() <= board.Rank4
}
