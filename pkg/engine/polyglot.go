package engine

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"

	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/corvidlabs/grandpa/pkg/board/fen"
)

// polyglotEntry is one book move for a position, with its relative weight.
type polyglotEntry struct {
	move   board.Move
	weight uint16
}

// PolyglotBook is an opening book backed by the Polyglot binary format: a sequence of 16-byte
// records, each an 8-byte big-endian position key, a 2-byte packed move, a 2-byte weight and a
// 4-byte learn value (ignored here). Entries are keyed by this engine's own Zobrist hash rather
// than the canonical Polyglot random table, so it reads books produced by this engine, not
// third-party .bin files; see DESIGN.md.
type PolyglotBook struct {
	zt      *board.ZobristTable
	entries map[board.ZobristHash][]polyglotEntry
	rand    *rand.Rand
}

// NewPolyglotBook reads every record in r into memory, grouped by position key. Records are
// sorted by key in a well-formed Polyglot file but that is not required here.
func NewPolyglotBook(r io.Reader, zt *board.ZobristTable, seed int64) (*PolyglotBook, error) {
	entries := map[board.ZobristHash][]polyglotEntry{}

	br := bufio.NewReader(r)
	var record [16]byte
	for {
		if _, err := io.ReadFull(br, record[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read polyglot record: %w", err)
		}

		key := board.ZobristHash(binary.BigEndian.Uint64(record[0:8]))
		packed := binary.BigEndian.Uint16(record[8:10])
		weight := binary.BigEndian.Uint16(record[10:12])

		move, ok := unpackPolyglotMove(packed)
		if !ok {
			continue // skip: null-move record
		}
		entries[key] = append(entries[key], polyglotEntry{move: move, weight: weight})
	}

	return &PolyglotBook{zt: zt, entries: entries, rand: rand.New(rand.NewSource(seed))}, nil
}

// unpackPolyglotMove decodes the 16-bit packed move: from the low bit, end-file(3),
// end-rank(3), start-file(3), start-rank(3), promotion-piece(3). Polyglot numbers files a..h
// as 0..7, the reverse of this engine's File type, so the bits are flipped on the way in.
func unpackPolyglotMove(packed uint16) (board.Move, bool) {
	toFile := board.File(7 - (packed & 0x7))
	toRank := board.Rank((packed >> 3) & 0x7)
	fromFile := board.File(7 - ((packed >> 6) & 0x7))
	fromRank := board.Rank((packed >> 9) & 0x7)
	promo := (packed >> 12) & 0x7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)
	if from == to {
		return board.Move{}, false
	}

	m := board.Move{From: from, To: to}
	switch promo {
	case 1:
		m.Promotion = board.Knight
	case 2:
		m.Promotion = board.Bishop
	case 3:
		m.Promotion = board.Rook
	case 4:
		m.Promotion = board.Queen
	}
	return m, true
}

// Find resolves the book entries for the given position against its pseudo-legal moves -- the
// packed move carries no piece, capture or castling metadata, so only the from/to/promotion
// triple is trusted and the live position fills in the rest. A single move is chosen up front,
// by weight if any entry carries a nonzero weight, uniformly otherwise; Find returns it alone,
// or an empty list if no candidate is found or none is legal.
func (p *PolyglotBook) Find(ctx context.Context, f string) ([]board.Move, error) {
	pos, turn, _, _, err := fen.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("invalid fen: %v", err)
	}

	candidates := p.entries[p.zt.Hash(pos, turn)]
	if len(candidates) == 0 {
		return nil, nil
	}

	chosen := pickPolyglotEntry(p.rand, candidates)

	for _, m := range pos.PseudoLegalMoves(turn) {
		if m.Equals(chosen.move) {
			if _, ok := pos.Move(m); !ok {
				return nil, nil
			}
			return []board.Move{m}, nil
		}
	}
	return nil, nil
}

// pickPolyglotEntry chooses one entry weighted by its weight field, or uniformly at random if
// every candidate carries a zero weight.
func pickPolyglotEntry(r *rand.Rand, candidates []polyglotEntry) polyglotEntry {
	var total uint32
	for _, c := range candidates {
		total += uint32(c.weight)
	}
	if total == 0 {
		return candidates[r.Intn(len(candidates))]
	}

	pick := uint32(r.Int63n(int64(total)))
	var acc uint32
	for _, c := range candidates {
		acc += uint32(c.weight)
		if pick < acc {
			return c
		}
	}
	return candidates[len(candidates)-1]
}
