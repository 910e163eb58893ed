package engine_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/corvidlabs/grandpa/pkg/board"
	"github.com/corvidlabs/grandpa/pkg/board/fen"
	"github.com/corvidlabs/grandpa/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packPolyglotMove mirrors the production unpacker in reverse, for building test fixtures:
// end-file(3) end-rank(3) start-file(3) start-rank(3) promotion(3), low bit first, with file
// indices in Polyglot's a=0..h=7 order.
func packPolyglotMove(from, to board.Square, promo uint16) uint16 {
	endFile := uint16(7 - to.File())
	endRank := uint16(to.Rank())
	startFile := uint16(7 - from.File())
	startRank := uint16(from.Rank())
	return endFile | endRank<<3 | startFile<<6 | startRank<<9 | promo<<12
}

func polyglotRecord(key board.ZobristHash, packed, weight uint16) []byte {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(key))
	binary.BigEndian.PutUint16(buf[8:10], packed)
	binary.BigEndian.PutUint16(buf[10:12], weight)
	return buf[:]
}

func TestPolyglotBookFindsKnownKey(t *testing.T) {
	ctx := context.Background()
	zt := board.NewZobristTable(7)

	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	key := zt.Hash(pos, turn)

	e2e4 := packPolyglotMove(board.E2, board.E4, 0)
	d2d4 := packPolyglotMove(board.D2, board.D4, 0)

	var raw bytes.Buffer
	raw.Write(polyglotRecord(key, e2e4, 10))
	raw.Write(polyglotRecord(key, d2d4, 0))

	b, err := engine.NewPolyglotBook(&raw, zt, 1)
	require.NoError(t, err)

	moves, err := b.Find(ctx, fen.Initial)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.True(t, moves[0].Equals(board.Move{From: board.E2, To: board.E4}) ||
		moves[0].Equals(board.Move{From: board.D2, To: board.D4}))
}

func TestPolyglotBookReturnsEmptyForUnknownKey(t *testing.T) {
	ctx := context.Background()
	zt := board.NewZobristTable(7)

	b, err := engine.NewPolyglotBook(&bytes.Buffer{}, zt, 1)
	require.NoError(t, err)

	moves, err := b.Find(ctx, fen.Initial)
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestPolyglotBookSkipsNullMoveRecords(t *testing.T) {
	ctx := context.Background()
	zt := board.NewZobristTable(7)

	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	key := zt.Hash(pos, turn)

	var raw bytes.Buffer
	raw.Write(polyglotRecord(key, 0, 1)) // from == to: not a real move

	b, err := engine.NewPolyglotBook(&raw, zt, 1)
	require.NoError(t, err)

	moves, err := b.Find(ctx, fen.Initial)
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestPolyglotBookRejectsTruncatedRecord(t *testing.T) {
	zt := board.NewZobristTable(7)

	_, err := engine.NewPolyglotBook(bytes.NewReader(make([]byte, 15)), zt, 1)
	assert.Error(t, err)
}
