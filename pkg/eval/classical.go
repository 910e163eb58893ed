package eval

import (
	"context"

	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/corvidlabs/grandpa/pkg/pawncache"
)

const (
	openFileBonus     = Score(20)
	halfOpenFileBonus = Score(10)
	blockedPenalty    = Score(50)

	pawnShieldPenaltyPerMissing = Score(-25)
	pawnStormPenaltyPerUnit     = Score(-10)

	doubledPawnPenalty  = Score(-10)
	isolatedPawnPenalty = Score(-10)
	backwardPawnPenalty = Score(-8)

	attackersOnKingUnit = Score(-20)

	pinnedPenaltyPerUnit = Score(-15)
)

// Classical is the material + piece-square-table + structural evaluator. It is a pure function
// of the position: given the same board it always returns the same score. The only mutable
// part, the pawn-structure cache, is memoization over a pure key, but it is not thread-safe:
// a Classical is safe to share across goroutines only when Pawns is nil.
type Classical struct {
	// Pawns memoizes the pawn-only structural term. Nil disables the cache (every call
	// recomputes it), which is useful for tests that want to observe the raw computation.
	Pawns *pawncache.Cache
}

func (e Classical) Evaluate(ctx context.Context, b *board.Board) Score {
	pos := b.Position()
	endgame := isEndgame(pos)

	white := e.evaluateSide(pos, board.White, endgame)
	black := e.evaluateSide(pos, board.Black, endgame)
	total := white - black

	if b.Turn() == board.Black {
		total = -total
	}
	return Crop(total)
}

// isEndgame implements the binary phase flag: no queens on the board, and at most two
// rooks/bishops/knights remain in total.
func isEndgame(pos *board.Position) bool {
	queens := pos.Piece(board.White, board.Queen).PopCount() + pos.Piece(board.Black, board.Queen).PopCount()
	if queens > 0 {
		return false
	}
	minors := pos.Piece(board.White, board.Rook).PopCount() + pos.Piece(board.Black, board.Rook).PopCount() +
		pos.Piece(board.White, board.Bishop).PopCount() + pos.Piece(board.Black, board.Bishop).PopCount() +
		pos.Piece(board.White, board.Knight).PopCount() + pos.Piece(board.Black, board.Knight).PopCount()
	return minors <= 2
}

// evaluateSide returns the White-perspective contribution of one color's pieces: always
// computed from that color's own point of view, never negated here. Evaluate takes the
// difference and folds to the side-to-move exactly once, at the very end.
func (e Classical) evaluateSide(pos *board.Position, c board.Color, endgame bool) Score {
	score := materialAndPSQT(pos, c, endgame)
	score += rookFiles(pos, c)
	score += bishopPairScore(pos, c)
	score += knightOutposts(pos, c)
	score += blockedBishops(pos, c)
	score += blockedRookBehindKing(pos, c)
	score += e.pawnStructure(pos, c, endgame)
	score += pinnedPieces(pos, c)

	if !endgame {
		score += kingSafety(pos, c)
		score += attackersOnKing(pos, c)
	}
	return score
}

// pinnedPieces penalizes own pieces, pawns included, that are pinned to the king: a pinned
// piece can only move along the pin line, so it loses most of its mobility.
func pinnedPieces(pos *board.Position, c board.Color) Score {
	kingSq := pos.Piece(c, board.King).LastPopSquare()

	var score Score
	for _, pin := range FindPins(pos, c, board.King) {
		if pin.Target != kingSq {
			continue
		}
		_, piece, ok := pos.Square(pin.Pinned)
		if !ok {
			continue
		}
		score += pinnedPenaltyPerUnit * Score(NominalValue(piece))
	}
	return score
}

func materialAndPSQT(pos *board.Position, c board.Color, endgame bool) Score {
	var mid, end Score
	for _, p := range [...]board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King} {
		bb := pos.Piece(c, p)
		mv := materialValue[p]

		n := Score(bb.PopCount())
		mid += n * mv.mid
		end += n * mv.end

		t := pieceSquareTableFor(p)
		for _, sq := range bb.ToSquares() {
			v := value(sq, c, t)
			mid += v.mid
			end += v.end
		}
	}
	if endgame {
		return end
	}
	return mid
}

func pieceSquareTableFor(p board.Piece) *pieceSquareTable {
	switch p {
	case board.Pawn:
		return &pawnPST
	case board.Knight:
		return &knightPST
	case board.Bishop:
		return &bishopPST
	case board.Rook:
		return &rookPST
	case board.Queen:
		return &queenPST
	default:
		return &kingPST
	}
}

func rookFiles(pos *board.Position, c board.Color) Score {
	var score Score
	for _, sq := range pos.Piece(c, board.Rook).ToSquares() {
		file := board.BitFile(sq.File())
		own := pos.Piece(c, board.Pawn) & file
		enemy := pos.Piece(c.Opponent(), board.Pawn) & file

		switch {
		case own == 0 && enemy == 0:
			score += openFileBonus
		case own == 0:
			score += halfOpenFileBonus
		}
	}
	return score
}

func bishopPairScore(pos *board.Position, c board.Color) Score {
	if pos.Piece(c, board.Bishop).PopCount() >= 2 {
		return bishopPairBonus
	}
	return 0
}

func knightOutposts(pos *board.Position, c board.Color) Score {
	enemy := c.Opponent()
	ownAttacks := board.PawnCaptureboard(c, pos.Piece(c, board.Pawn))

	enemyPawns := pos.Piece(enemy, board.Pawn)
	everReachable := board.PawnCaptureboard(enemy, enemyPawns|board.FrontSpan(enemy, enemyPawns))

	var score Score
	for _, sq := range pos.Piece(c, board.Knight).ToSquares() {
		defended := ownAttacks.IsSet(sq)
		safe := !everReachable.IsSet(sq)
		if defended && safe {
			score += outpostValue(sq, c)
		}
	}
	return score
}

func blockedBishops(pos *board.Position, c board.Color) Score {
	type site struct{ bishop, pawn, blocker board.Square }

	var sites [2]site
	if c == board.White {
		sites = [2]site{{board.C1, board.D2, board.D3}, {board.F1, board.E2, board.E3}}
	} else {
		sites = [2]site{{board.C8, board.D7, board.D6}, {board.F8, board.E7, board.E6}}
	}

	var score Score
	for _, s := range sites {
		_, piece, ok := pos.Square(s.bishop)
		if !ok || piece != board.Bishop {
			continue
		}
		pawnColor, pawnPiece, ok := pos.Square(s.pawn)
		if !ok || pawnPiece != board.Pawn || pawnColor != c {
			continue
		}
		if !pos.IsEmpty(s.blocker) {
			score += -blockedPenalty
		}
	}
	return score
}

func blockedRookBehindKing(pos *board.Position, c board.Color) Score {
	kingSq := pos.Piece(c, board.King).LastPopSquare()
	rooks := pos.Piece(c, board.Rook)

	var queenside, kingside [3]board.Square
	var queensideKing, kingsideKing [2]board.Square
	if c == board.White {
		queensideKing, queenside = [2]board.Square{board.B1, board.C1}, [3]board.Square{board.A1, board.A2, board.B1}
		kingsideKing, kingside = [2]board.Square{board.G1, board.F1}, [3]board.Square{board.H1, board.H2, board.G1}
	} else {
		queensideKing, queenside = [2]board.Square{board.B8, board.C8}, [3]board.Square{board.A8, board.A7, board.B8}
		kingsideKing, kingside = [2]board.Square{board.G8, board.F8}, [3]board.Square{board.H8, board.H7, board.G8}
	}

	var score Score
	if kingSq == queensideKing[0] || kingSq == queensideKing[1] {
		if rooks&(board.BitMask(queenside[0])|board.BitMask(queenside[1])|board.BitMask(queenside[2])) != 0 {
			score += -blockedPenalty
		}
	}
	if kingSq == kingsideKing[0] || kingSq == kingsideKing[1] {
		if rooks&(board.BitMask(kingside[0])|board.BitMask(kingside[1])|board.BitMask(kingside[2])) != 0 {
			score += -blockedPenalty
		}
	}
	return score
}

func kingSafety(pos *board.Position, c board.Color) Score {
	kingSq := pos.Piece(c, board.King).LastPopSquare()
	zone := board.KingZone(kingSq)

	shieldCount := (pos.Piece(c, board.Pawn) & zone).PopCount()
	if shieldCount > 3 {
		shieldCount = 3
	}
	score := Score(3-shieldCount) * pawnShieldPenaltyPerMissing

	enemy := c.Opponent()
	for _, sq := range pos.Piece(enemy, board.Pawn).ToSquares() {
		if board.FrontSpan(enemy, board.BitMask(sq))&zone == 0 {
			continue
		}
		d := chebyshevDistance(sq, kingSq)
		score += Score(7-d) * pawnStormPenaltyPerUnit
	}
	return score
}

func attackersOnKing(pos *board.Position, c board.Color) Score {
	kingSq := pos.Piece(c, board.King).LastPopSquare()
	zone := board.KingZone(kingSq)
	enemy := c.Opponent()

	var weighted, distinct int
	for _, piece := range board.KingQueenRookKnightBishop {
		if piece == board.King {
			continue
		}
		for _, from := range pos.Piece(enemy, piece).ToSquares() {
			if board.Attackboard(pos.Rotated(), from, piece)&zone == 0 {
				continue
			}
			weighted += attackWeight[piece]
			distinct++
		}
	}
	if distinct == 0 {
		return 0
	}
	if distinct >= len(kingSafetyScaling) {
		distinct = len(kingSafetyScaling) - 1
	}
	return attackersOnKingUnit * Score(weighted) * Score(kingSafetyScaling[distinct]) / 100
}

func (e Classical) pawnStructure(pos *board.Position, c board.Color, endgame bool) Score {
	if c == board.Black {
		return 0 // the White-perspective balance covers both colors; it is counted once, for White
	}

	white := pos.Piece(board.White, board.Pawn)
	black := pos.Piece(board.Black, board.Pawn)

	var total Score
	if e.Pawns != nil {
		key := pawncache.Key(white, black, endgame)
		if v, ok := e.Pawns.Lookup(key); ok {
			total = Score(v)
		} else {
			total = computePawnStructure(white, black, endgame)
			e.Pawns.Store(key, int32(total))
		}
	} else {
		total = computePawnStructure(white, black, endgame)
	}
	return total
}

// computePawnStructure returns the doubled/isolated/backward/passed pawn balance from White's
// perspective. It depends only on the two pawn bitboards and the phase bit, which is exactly
// the pawn-structure cache key.
func computePawnStructure(white, black board.Bitboard, endgame bool) Score {
	var score Score

	score += Score(board.DoubledPawns(board.White, white).PopCount()) * doubledPawnPenalty
	score += Score(board.IsolatedPawns(white).PopCount()) * isolatedPawnPenalty
	score += Score(board.BackwardPawns(board.White, white, black).PopCount()) * backwardPawnPenalty

	score -= Score(board.DoubledPawns(board.Black, black).PopCount()) * doubledPawnPenalty
	score -= Score(board.IsolatedPawns(black).PopCount()) * isolatedPawnPenalty
	score -= Score(board.BackwardPawns(board.Black, black, white).PopCount()) * backwardPawnPenalty

	for _, sq := range board.PassedPawns(board.White, white, black).ToSquares() {
		v := passedPawnValue(sq, board.White)
		if endgame {
			score += v.end
		} else {
			score += v.mid
		}
	}
	for _, sq := range board.PassedPawns(board.Black, black, white).ToSquares() {
		v := passedPawnValue(sq, board.Black)
		if endgame {
			score -= v.end
		} else {
			score -= v.mid
		}
	}
	return score
}

func chebyshevDistance(a, b board.Square) int {
	df := abs(int(a.File()) - int(b.File()))
	dr := abs(int(a.Rank()) - int(b.Rank()))
	if df > dr {
		return df
	}
	return dr
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
