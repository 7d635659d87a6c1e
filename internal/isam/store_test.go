package isam

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInitializedStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Init(filepath.Join(dir, "index.bin"), filepath.Join(dir, "data.bin"))
	require.NoError(t, err)
	return s
}

func payload(s string) [PayloadLen]byte {
	var b [PayloadLen]byte
	copy(b[:], s)
	return b
}

func TestInitLaysDownSentinel(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	pg, err := s.readPage(1)
	require.NoError(t, err)
	assert.Equal(t, SentinelKey, pg.records[0].Key)
	assert.Equal(t, OvfNull, pg.records[0].OverflowPointer)

	entries, err := s.readIndexEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, IndexEntry{Key: 1, PageNumber: 1}, entries[0])
}

func TestInitRejectsNonEmptyFiles(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)
	_, err := Init(s.indexPath, s.dataPath)
	assert.ErrorIs(t, err, ErrNotEmpty)
}

func TestAddGetRoundTrip(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	for _, k := range []int32{5, 3, 9, 4, 2} {
		_, err := s.Add(Record{Key: k, Numbers: payload("v")})
		require.NoError(t, err)
	}

	for _, k := range []int32{2, 3, 4, 5, 9} {
		rec, err := s.Get(k)
		require.NoError(t, err)
		assert.Equal(t, k, rec.Key)
	}
}

func TestAddRejectsKeyBelowTwo(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	_, err := s.Add(Record{Key: 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Add(Record{Key: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAddRejectsDuplicateOnPrimaryPage(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	_, err := s.Add(Record{Key: 5})
	require.NoError(t, err)

	_, err = s.Add(Record{Key: 5})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestAddSpillsToOverflowWhenPageIsFull(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	// Page 1 has RecordsPerPage=10 slots; slot 0 is the sentinel, so 9
	// more keys exactly fill it.
	for k := int32(2); k <= 10; k++ {
		_, err := s.Add(Record{Key: k})
		require.NoError(t, err)
	}

	pg, err := s.readPage(1)
	require.NoError(t, err)
	require.False(t, pg.hasEmptySlot())

	// The next insert must go to overflow, anchored at the page's last
	// record (key 10).
	_, err = s.Add(Record{Key: 11})
	require.NoError(t, err)

	pg, err = s.readPage(1)
	require.NoError(t, err)
	last := pg.lastIndex()
	assert.Equal(t, int32(10), pg.records[last].Key)
	assert.NotEqual(t, OvfNull, pg.records[last].OverflowPointer)

	rec, err := s.Get(11)
	require.NoError(t, err)
	assert.Equal(t, int32(11), rec.Key)
}

func TestAddTriggersReorganizationPastBeta(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	// Fill the single primary page (sentinel + keys 2..10), then keep
	// adding overflow records until rho exceeds Beta and Add reorganizes
	// automatically.
	for k := int32(2); k <= 10; k++ {
		_, err := s.Add(Record{Key: k})
		require.NoError(t, err)
	}

	var lastKey int32
	for k := int32(11); k <= 30; k++ {
		_, err := s.Add(Record{Key: k})
		require.NoError(t, err)
		lastKey = k
		if s.overflowAreaSize == 0 {
			break
		}
	}

	assert.Equal(t, uint32(0), s.overflowAreaSize, "reorganization should have drained the overflow area")

	for k := int32(2); k <= lastKey; k++ {
		_, err := s.Get(k)
		require.NoError(t, err, "key %d should survive reorganization", k)
	}
}

func TestDeletePlainShift(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	for _, k := range []int32{3, 5, 7} {
		_, err := s.Add(Record{Key: k})
		require.NoError(t, err)
	}

	_, err := s.Delete(5)
	require.NoError(t, err)

	_, err = s.Get(5)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(3)
	require.NoError(t, err)
	_, err = s.Get(7)
	require.NoError(t, err)
}

func TestDeleteSlotZeroPatchesIndex(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	// The sentinel (key 1) cannot be deleted, so build a second page: the
	// add of key 13 reorganizes into pages [1..5], [6..10], [11..13]. Key 6
	// is then slot 0 of page 2, and deleting it makes key 7 the new slot 0.
	for k := int32(2); k <= 13; k++ {
		_, err := s.Add(Record{Key: k})
		require.NoError(t, err)
	}

	_, err := s.Delete(6)
	require.NoError(t, err)

	entries, err := s.readIndexEntries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int32(7), entries[1].Key)
}

func TestDeletePromotesOverflowHead(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	for k := int32(2); k <= 10; k++ {
		_, err := s.Add(Record{Key: k})
		require.NoError(t, err)
	}
	_, err := s.Add(Record{Key: 11}) // overflow, anchored at key 10
	require.NoError(t, err)

	_, err = s.Delete(10)
	require.NoError(t, err)

	pg, err := s.readPage(1)
	require.NoError(t, err)
	last := pg.lastIndex()
	assert.Equal(t, int32(11), pg.records[last].Key)

	_, err = s.Get(10)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(11)
	require.NoError(t, err)
}

func TestDeleteFromOverflowChainMiddle(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	// Keys 2..13 reorganize into three pages; 14..19 and 30 then fill page
	// 3, so 20, 21, 22 form one overflow chain anchored at key 19 while rho
	// stays below Beta.
	for k := int32(2); k <= 19; k++ {
		_, err := s.Add(Record{Key: k})
		require.NoError(t, err)
	}
	for _, k := range []int32{30, 20, 21, 22} {
		_, err := s.Add(Record{Key: k})
		require.NoError(t, err)
	}

	_, err := s.Delete(21)
	require.NoError(t, err)

	_, err = s.Get(20)
	require.NoError(t, err)
	_, err = s.Get(21)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(22)
	require.NoError(t, err)
}

func TestDeleteNotFound(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	_, err := s.Delete(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateReplacesPayloadKeepingKey(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	_, err := s.Add(Record{Key: 5, Numbers: payload("old")})
	require.NoError(t, err)

	_, err = s.Update(Record{Key: 5, Numbers: payload("new")})
	require.NoError(t, err)

	rec, err := s.Get(5)
	require.NoError(t, err)
	assert.Equal(t, payload("new"), rec.Numbers)
}

func TestUpdateOnAbsentKeySurfacesDeleteError(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)

	_, err := s.Update(Record{Key: 99})
	assert.ErrorIs(t, err, ErrNotFound)

	// The add half of update should still have run, inserting the record.
	rec, err := s.Get(99)
	require.NoError(t, err)
	assert.Equal(t, int32(99), rec.Key)
}

func TestOpenReconstructsAreaSizes(t *testing.T) {
	t.Parallel()
	s := newInitializedStore(t)
	for k := int32(2); k <= 10; k++ {
		_, err := s.Add(Record{Key: k})
		require.NoError(t, err)
	}
	_, err := s.Add(Record{Key: 11})
	require.NoError(t, err)

	reopened, err := Open(s.indexPath, s.dataPath)
	require.NoError(t, err)
	assert.Equal(t, s.primaryAreaSize, reopened.primaryAreaSize)
	assert.Equal(t, s.overflowAreaSize, reopened.overflowAreaSize)
}
