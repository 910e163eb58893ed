package search

import (
	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/corvidlabs/grandpa/pkg/eval"
)

// Context carries the per-search state threaded through every node of a single Search call:
// the alpha-beta window, the transposition table to probe and populate, and any evaluation
// noise to add at leaf nodes. It is separate from the standard context.Context, which carries
// cancellation/deadline only.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
	Noise       eval.Random

	// Ponder, if set, forces the root move: search explores only this one move at the top of
	// the tree instead of the full legal move list. Used to break down a completed search's
	// score by candidate move, not by the search itself.
	Ponder []board.Move
}
