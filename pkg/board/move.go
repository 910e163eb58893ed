package board

import (
	"fmt"
	"strings"
)

// MoveType indicates the type of move. The no-progress counter is reset with any non-Normal move.
type MoveType uint8

const (
	Normal    MoveType = iota
	Push               // Pawn move
	Jump               // Pawn 2-square move
	EnPassant          // Implicitly a pawn capture
	QueenSideCastle
	KingSideCastle
	Capture
	Promotion
	CapturePromotion
)

// TODO(herohde) 2/21/2021: add remarks, like "dubious", to represent standard notation?

// Move represents a not-necessarily legal move along with contextual metadata. 48bits.
type Move struct {
	Type      MoveType
	Piece     Piece // piece being moved
	From, To  Square
	Promotion Piece // desired piece for promotion, if any.
	Capture   Piece // captured piece, if any.
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
// The parsed move does not contain contextual information like castling or en passant.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		return Move{From: from, To: to, Promotion: promo}, nil
	}

	return Move{From: from, To: to}, nil
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// IsCapture reports whether the move captures a piece, including en passant.
func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == CapturePromotion || m.Type == EnPassant
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Type == Promotion || m.Type == CapturePromotion
}

func (m Move) String() string {
	if m.Promotion.IsValid() {
		return strings.ToLower(fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion))
	}
	return strings.ToLower(fmt.Sprintf("%v%v", m.From, m.To))
}

// EnPassantCapture returns the square of the pawn captured en passant, if the move is
// an EnPassant move.
func (m Move) EnPassantCapture() (Square, bool) {
	if m.Type != EnPassant {
		return ZeroSquare, false
	}
	return NewSquare(m.To.File(), m.From.Rank()), true
}

// EnPassantTarget returns the new en passant target square created by this move, if it
// is a 2-square pawn Jump.
func (m Move) EnPassantTarget() (Square, bool) {
	if m.Type != Jump {
		return ZeroSquare, false
	}
	return Square((int(m.From) + int(m.To)) / 2), true
}

// CastlingRookMove returns the rook "from" and "to" squares implied by a castling move.
func (m Move) CastlingRookMove() (Square, Square, bool) {
	switch m.Type {
	case KingSideCastle:
		if m.From == E1 {
			return H1, F1, true
		}
		return H8, F8, true
	case QueenSideCastle:
		if m.From == E1 {
			return A1, D1, true
		}
		return A8, D8, true
	default:
		return ZeroSquare, ZeroSquare, false
	}
}

// CastlingRightsLost returns the mask of castling rights revoked purely by the squares
// this move touches: the king or a rook moving off its home square, or a rook being
// captured on its home square. The actual rights lost also depend on which rights were
// still held, see ZobristTable.Move.
func (m Move) CastlingRightsLost() Castling {
	var c Castling
	switch m.From {
	case E1:
		c |= WhiteKingSideCastle | WhiteQueenSideCastle
	case E8:
		c |= BlackKingSideCastle | BlackQueenSideCastle
	case A1:
		c |= WhiteQueenSideCastle
	case H1:
		c |= WhiteKingSideCastle
	case A8:
		c |= BlackQueenSideCastle
	case H8:
		c |= BlackKingSideCastle
	}
	switch m.To {
	case A1:
		c |= WhiteQueenSideCastle
	case H1:
		c |= WhiteKingSideCastle
	case A8:
		c |= BlackQueenSideCastle
	case H8:
		c |= BlackKingSideCastle
	}
	return c
}
