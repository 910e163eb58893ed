package eval

import "github.com/corvidlabs/grandpa/pkg/board"

// Phase selects between the middlegame and endgame column of a tapered table. The evaluator
// uses a binary phase flag rather than a continuously tapered blend.
type Phase int

const (
	Middlegame Phase = 0
	Endgame    Phase = 1
)

// phaseBonus is a {middlegame, endgame} pair of centipawn bonuses.
type phaseBonus struct {
	mid, end Score
}

// materialValue is the centipawn value of each piece type, by phase. Values follow the
// classical Michniewski set, same figures zurichess ships under FigureBonus.
var materialValue = [board.NumPieces]phaseBonus{
	board.NoPiece: {0, 0},
	board.Pawn:    {100, 100},
	board.Knight:  {320, 320},
	board.Bishop:  {330, 330},
	board.Rook:    {500, 500},
	board.Queen:   {900, 900},
	board.King:    {20000, 20000},
}

const (
	bishopPairBonus = Score(30)
)

// pieceSquareTable holds, for one piece type, a {mid,end} bonus indexed by [rank][file-from-a].
// Entries are given from White's point of view with rank 1 first; a Black piece's bonus is
// read off the rank-mirrored row. This is the well-known "simplified evaluation" square table
// set (Tomasz Michniewski), also used nearly verbatim by other bitboard engines in the wild.
type pieceSquareTable [8][8]phaseBonus

func value(sq board.Square, c board.Color, t *pieceSquareTable) phaseBonus {
	rank := int(sq.Rank())
	file := 7 - int(sq.File()) // File is H=0..A=7 in this layout; flip to a=0..h=7.
	if c == board.Black {
		rank = 7 - rank
	}
	return t[rank][file]
}

var pawnPST = pieceSquareTable{
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
	{{5, 5}, {10, 10}, {10, 10}, {-20, -20}, {-20, -20}, {10, 10}, {10, 10}, {5, 5}},
	{{5, 5}, {-5, -5}, {-10, -10}, {0, 0}, {0, 0}, {-10, -10}, {-5, -5}, {5, 5}},
	{{0, 0}, {0, 0}, {0, 0}, {20, 20}, {20, 20}, {0, 0}, {0, 0}, {0, 0}},
	{{5, 5}, {5, 5}, {10, 10}, {25, 25}, {25, 25}, {10, 10}, {5, 5}, {5, 5}},
	{{10, 10}, {10, 10}, {20, 20}, {30, 30}, {30, 30}, {20, 20}, {10, 10}, {10, 10}},
	{{50, 50}, {50, 50}, {50, 50}, {50, 50}, {50, 50}, {50, 50}, {50, 50}, {50, 50}},
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
}

var knightPST = pieceSquareTable{
	{{-50, -50}, {-40, -40}, {-30, -30}, {-30, -30}, {-30, -30}, {-30, -30}, {-40, -40}, {-50, -50}},
	{{-40, -40}, {-20, -20}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-20, -20}, {-40, -40}},
	{{-30, -30}, {0, 0}, {10, 10}, {15, 15}, {15, 15}, {10, 10}, {0, 0}, {-30, -30}},
	{{-30, -30}, {5, 5}, {15, 15}, {20, 20}, {20, 20}, {15, 15}, {5, 5}, {-30, -30}},
	{{-30, -30}, {0, 0}, {15, 15}, {20, 20}, {20, 20}, {15, 15}, {0, 0}, {-30, -30}},
	{{-30, -30}, {5, 5}, {10, 10}, {15, 15}, {15, 15}, {10, 10}, {5, 5}, {-30, -30}},
	{{-40, -40}, {-20, -20}, {0, 0}, {5, 5}, {5, 5}, {0, 0}, {-20, -20}, {-40, -40}},
	{{-50, -50}, {-40, -40}, {-30, -30}, {-30, -30}, {-30, -30}, {-30, -30}, {-40, -40}, {-50, -50}},
}

var bishopPST = pieceSquareTable{
	{{-20, -20}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-20, -20}},
	{{-10, -10}, {5, 5}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {5, 5}, {-10, -10}},
	{{-10, -10}, {10, 10}, {10, 10}, {10, 10}, {10, 10}, {10, 10}, {10, 10}, {-10, -10}},
	{{-10, -10}, {0, 0}, {10, 10}, {10, 10}, {10, 10}, {10, 10}, {0, 0}, {-10, -10}},
	{{-10, -10}, {5, 5}, {5, 5}, {10, 10}, {10, 10}, {5, 5}, {5, 5}, {-10, -10}},
	{{-10, -10}, {0, 0}, {5, 5}, {10, 10}, {10, 10}, {5, 5}, {0, 0}, {-10, -10}},
	{{-10, -10}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10}},
	{{-20, -20}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-20, -20}},
}

var rookPST = pieceSquareTable{
	{{0, 0}, {0, 0}, {0, 0}, {5, 5}, {5, 5}, {0, 0}, {0, 0}, {0, 0}},
	{{-5, -5}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, -5}},
	{{-5, -5}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, -5}},
	{{-5, -5}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, -5}},
	{{-5, -5}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, -5}},
	{{-5, -5}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, -5}},
	{{5, 5}, {10, 10}, {10, 10}, {10, 10}, {10, 10}, {10, 10}, {10, 10}, {5, 5}},
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
}

var queenPST = pieceSquareTable{
	{{-20, -20}, {-10, -10}, {-10, -10}, {-5, -5}, {-5, -5}, {-10, -10}, {-10, -10}, {-20, -20}},
	{{-10, -10}, {0, 0}, {5, 5}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10}},
	{{-10, -10}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-10, -10}},
	{{0, 0}, {0, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-5, -5}},
	{{-5, -5}, {0, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-5, -5}},
	{{-10, -10}, {0, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-10, -10}},
	{{-10, -10}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10}},
	{{-20, -20}, {-10, -10}, {-10, -10}, {-5, -5}, {-5, -5}, {-10, -10}, {-10, -10}, {-20, -20}},
}

var kingPST = pieceSquareTable{
	{{20, -50}, {30, -30}, {10, -30}, {0, -30}, {0, -30}, {10, -30}, {30, -30}, {20, -50}},
	{{20, -30}, {20, -30}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {20, -30}, {20, -30}},
	{{-10, -30}, {-20, -10}, {-20, 20}, {-20, 30}, {-20, 30}, {-20, 20}, {-20, -10}, {-10, -30}},
	{{-20, -30}, {-30, -10}, {-30, 30}, {-40, 40}, {-40, 40}, {-30, 30}, {-30, 10}, {-20, -30}},
	{{-30, -30}, {-40, -10}, {-40, 30}, {-50, 40}, {-50, 40}, {-40, 30}, {-40, -10}, {-30, -30}},
	{{-30, -30}, {-40, -10}, {-40, 20}, {-50, 30}, {-50, 30}, {-40, 20}, {-40, -10}, {-30, -30}},
	{{-30, -30}, {-40, -20}, {-40, -10}, {-50, 0}, {-50, 0}, {-40, -10}, {-40, -20}, {-30, -30}},
	{{-30, -50}, {-40, -40}, {-40, -30}, {-50, -20}, {-50, -20}, {-40, -30}, {-40, -40}, {-30, -50}},
}

// outpostPST is the knight-outpost bonus, indexed the same way as pieceSquareTable but with a
// single phase-independent value; outposts matter in both the middlegame and the endgame.
var outpostPST = [8][8]Score{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 5, 10, 15, 15, 10, 5, 0},
	{0, 5, 15, 25, 25, 15, 5, 0},
	{0, 5, 10, 15, 15, 10, 5, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

func outpostValue(sq board.Square, c board.Color) Score {
	rank := int(sq.Rank())
	file := 7 - int(sq.File())
	if c == board.Black {
		rank = 7 - rank
	}
	return outpostPST[rank][file]
}

// passedPawnBonus is rank-indexed (rank 0/7 never apply: pawns there have promoted or not
// moved), with the endgame column larger than the middlegame one per the "passed pawns become
// more valuable as pieces come off the board" rule of thumb.
var passedPawnBonus = [8]phaseBonus{
	{0, 0}, {0, 10}, {5, 20}, {10, 35}, {20, 60}, {35, 100}, {60, 150}, {0, 0},
}

func passedPawnValue(sq board.Square, c board.Color) phaseBonus {
	rank := int(sq.Rank())
	if c == board.Black {
		rank = 7 - rank
	}
	return passedPawnBonus[rank]
}

// attackWeight is the per-attacker-type weight used by the "attackers on king" term.
var attackWeight = [board.NumPieces]int{
	board.Bishop: 1,
	board.Knight: 1,
	board.Rook:   2,
	board.Queen:  4,
}

// kingSafetyScaling is indexed by the number of enemy pieces attacking the king zone (0..7, clipped).
var kingSafetyScaling = [8]int{0, 0, 50, 75, 88, 94, 97, 99}
