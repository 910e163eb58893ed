// Package pawncache memoizes the pawn-only terms of static evaluation (doubled, isolated,
// backward and passed pawn bonuses) by the pawn configuration that produced them. These terms
// are the most expensive part of evaluation relative to how rarely the pawn structure actually
// changes between sibling nodes in the search tree, so a small direct-mapped cache captures
// most of the benefit of a full transposition table at a fraction of the size.
package pawncache

import (
	"math/bits"

	"github.com/corvidlabs/grandpa/pkg/board"
)

// entry is a cache slot. 16 bytes.
type entry struct {
	key   uint64
	score int32
	valid bool
}

// Cache is a fixed-capacity, direct-mapped, always-replace cache from (white pawns, black
// pawns, phase) to a structural pawn score, in centipawns from White's perspective. Not
// thread-safe: one Cache belongs to a single search.
type Cache struct {
	table    []entry
	mask     uint64
	recorded uint64
	used     uint64
}

// New creates a Cache sized to the largest power of two not exceeding n entries.
func New(n uint64) *Cache {
	if n < 1 {
		n = 1
	}
	size := uint64(1) << (63 - bits.LeadingZeros64(n))

	return &Cache{
		table: make([]entry, size),
		mask:  size - 1,
	}
}

// Key hashes the triple (white pawns, black pawns, endgame phase) into a 64-bit cache key.
// Black's pawn bitboard is rotated by one bit before it is mixed with White's, so swapping the
// sides changes the key. The phase bit is folded in by rotating the mixed value by 32 bits and
// XOR-ing a constant: the cache otherwise has no way to distinguish a middlegame pawn structure
// from the same structure reached once the major/minor pieces have been traded off.
func Key(white, black board.Bitboard, endgame bool) uint64 {
	h := uint64(white) ^ (bits.RotateLeft64(uint64(black), 1))
	if endgame {
		h = bits.RotateLeft64(h, 32) ^ 0x9e3779b97f4a7c15
	}
	return h
}

// Lookup returns the cached structural score for the given key, if present.
func (c *Cache) Lookup(key uint64) (int32, bool) {
	slot := &c.table[key&c.mask]
	if slot.valid && slot.key == key {
		c.used++
		return slot.score, true
	}
	return 0, false
}

// Store records the structural score for the given key, overwriting whatever was there.
func (c *Cache) Store(key uint64, score int32) {
	c.table[key&c.mask] = entry{key: key, score: score, valid: true}
	c.recorded++
}

// Recorded returns the number of Store calls.
func (c *Cache) Recorded() uint64 { return c.recorded }

// Used returns the number of Lookup calls that were a hit.
func (c *Cache) Used() uint64 { return c.used }
