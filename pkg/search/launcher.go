// Package search contains the game-tree search: principal variation search with quiescence,
// transposition table and the iterative-deepening harness (package searchctl) that drives them
// to a time or depth limit.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/corvidlabs/grandpa/pkg/eval"
)

// ErrHalted indicates that a search was stopped before it completed a depth, via context
// cancellation. The caller should fall back on the last PV produced at a shallower depth.
var ErrHalted = errors.New("search halted")

// PV represents the principal variation found for one completed iterative-deepening depth.
type PV struct {
	Depth int           // depth of search, in plies
	Moves []board.Move  // principal variation, deepest-first truncated
	Score eval.Score    // evaluation at depth, from the side-to-move's perspective
	Nodes uint64        // interior/leaf nodes searched
	Time  time.Duration // wall-clock time taken
	Hash  float64       // transposition table utilization [0;1] at the end of the search
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v",
		p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), board.PrintMoves(p.Moves))
}

// Search implements search of the game tree to a given depth, given an alpha-beta window and a
// transposition table. Must be safe to invoke sequentially at increasing depths against the
// same board, as iterative deepening does.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}
