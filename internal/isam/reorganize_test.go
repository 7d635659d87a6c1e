package isam

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReorganizePreservesAllKeysAndDrainsOverflow(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	keys := []int32{2, 3, 4, 5, 6, 7, 8, 9, 10, 20, 21, 22, 30}
	for _, k := range keys {
		_, err := s.Add(Record{Key: k, Numbers: payload("x")})
		require.NoError(t, err)
	}

	require.NoError(t, s.Reorganize())
	require.Equal(t, uint32(0), s.overflowAreaSize)

	for _, k := range keys {
		rec, err := s.Get(k)
		require.NoError(t, err)
		require.Equal(t, k, rec.Key)
	}
}

func TestReorganizePacksPagesAtFillTarget(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	for k := int32(2); k <= 21; k++ {
		_, err := s.Add(Record{Key: k})
		require.NoError(t, err)
	}

	require.NoError(t, s.Reorganize())

	entries, err := s.readIndexEntries()
	require.NoError(t, err)
	require.Greater(t, len(entries), 1, "20 user keys at a fill target of 5 must span more than one page")

	for _, e := range entries {
		pg, err := s.readPage(e.PageNumber)
		require.NoError(t, err)
		filled := 0
		for i := range pg.records {
			if !pg.records[i].IsEmpty() {
				filled++
			}
		}
		require.LessOrEqual(t, filled, reorgFillTarget)
	}
}

func TestReorganizeOnEmptyStoreKeepsSentinelOnly(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	require.NoError(t, s.Reorganize())

	entries, err := s.readIndexEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int32(1), entries[0].Key)
}
