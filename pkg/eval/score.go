package eval

import (
	"fmt"

	"github.com/corvidlabs/grandpa/pkg/board"
)

// Score is a signed search/evaluation score in centipawns, from the perspective of the side
// to move (positive favors the mover). Mate scores are encoded near +/-MateScore, discounted
// by one unit per ply of distance from the position where the mate was found, so that shorter
// mates always outrank longer ones and a mate score can never be confused with a large but
// ordinary material evaluation.
type Score int32

const (
	MinScore Score = -30000
	MaxScore Score = 30000

	// NegInf and Inf are used as the initial alpha-beta window; one past Min/MaxScore so
	// that every real score, including a mate score, compares strictly inside the window.
	NegInf = MinScore - 1
	Inf    = MaxScore + 1

	// MateScore is the score of delivering mate on the current move. MateThreshold is the
	// smallest magnitude still considered "a mate score" -- anything above it encodes a
	// forced mate found within a very large (but bounded) number of plies.
	MateScore     Score = 9999
	MateThreshold Score = MateScore - 1000
)

func (s Score) String() string {
	if d, ok := s.MateDistance(); ok {
		if s > 0 {
			return fmt.Sprintf("mate %v", (d+1)/2)
		}
		return fmt.Sprintf("mate -%v", (d+1)/2)
	}
	return fmt.Sprintf("%.2f", float64(s)/100)
}

// Negate flips the score to the opponent's perspective, for negamax recursion.
func (s Score) Negate() Score {
	return -s
}

// IsMate returns true iff the score encodes a forced mate (for either side).
func (s Score) IsMate() bool {
	return s > MateThreshold || s < -MateThreshold
}

// MateDistance returns the number of plies to the encoded mate, and whether the score is
// in fact a mate score. A positive distance favors the side to move.
func (s Score) MateDistance() (int, bool) {
	if !s.IsMate() {
		return 0, false
	}
	if s > 0 {
		return int(MateScore - s), true
	}
	return int(MateScore + s), true
}

// IncrementMateDistance adjusts a mate score by one ply, as it is returned up one level of
// search recursion. Non-mate scores are unaffected.
func IncrementMateDistance(s Score) Score {
	switch {
	case s > MateThreshold:
		return s - 1
	case s < -MateThreshold:
		return s + 1
	default:
		return s
	}
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black. Useful to
// convert an absolute (White-relative) evaluation into the side-to-move perspective Score
// uses, or back again.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}

// Crop clamps a score into [MinScore;MaxScore], preserving mate scores as-is.
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	case s.IsMate():
		return s
	default:
		return s
	}
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
