package isam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	r := Record{Key: 42, OverflowPointer: OvfNull}
	copy(r.Numbers[:], "hello world")

	buf := encodeRecord(r)
	require.Len(t, buf, RecordSize)

	got := decodeRecord(buf)
	assert.Equal(t, r, got)
}

func TestRecordEncodingIsLittleEndian(t *testing.T) {
	t.Parallel()

	r := Record{Key: 1, OverflowPointer: 0x01020304}
	buf := encodeRecord(r)

	// key at offset PayloadLen, little-endian
	assert.Equal(t, byte(1), buf[PayloadLen])
	assert.Equal(t, byte(0), buf[PayloadLen+1])

	// overflow pointer at offset PayloadLen+4, little-endian
	assert.Equal(t, byte(0x04), buf[PayloadLen+4])
	assert.Equal(t, byte(0x03), buf[PayloadLen+5])
	assert.Equal(t, byte(0x02), buf[PayloadLen+6])
	assert.Equal(t, byte(0x01), buf[PayloadLen+7])
}

func TestRecordIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, Record{}.IsEmpty())
	assert.False(t, Record{Key: 2}.IsEmpty())
}
