package isam

import "encoding/binary"

// IndexEntrySize is the packed on-disk size of one sparse index entry:
// int32 key + uint16 page number.
const IndexEntrySize = 4 + 2

// IndexEntry is one entry of the sparse index: the smallest key stored on
// PageNumber.
type IndexEntry struct {
	Key        int32
	PageNumber uint16
}

func encodeIndexEntry(e IndexEntry) []byte {
	buf := make([]byte, IndexEntrySize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(e.Key))
	binary.LittleEndian.PutUint16(buf[4:6], e.PageNumber)
	return buf
}

func decodeIndexEntry(buf []byte) IndexEntry {
	return IndexEntry{
		Key:        int32(binary.LittleEndian.Uint32(buf[0:4])),
		PageNumber: binary.LittleEndian.Uint16(buf[4:6]),
	}
}

// readIndexEntries loads the whole index file. The reference implementation
// reads it whole and scans linearly (spec.md §4.1 implementation note);
// callers needing the page for a key use pageNumberForKey below, which
// binary-searches this slice.
func (s *Store) readIndexEntries() ([]IndexEntry, error) {
	f, err := openRead(s.indexPath)
	if err != nil {
		return nil, err
	}
	defer closeFile(f)

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size%IndexEntrySize != 0 {
		return nil, ErrCorruptIndex
	}
	n := int(size / IndexEntrySize)
	buf := make([]byte, size)
	if _, err := readFull(f, buf); err != nil {
		return nil, err
	}

	entries := make([]IndexEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = decodeIndexEntry(buf[i*IndexEntrySize : (i+1)*IndexEntrySize])
	}
	return entries, nil
}

// pageNumberForKey implements the index-lookup contract of spec.md §4.1:
// return the page number whose primary range contains key. Binary search
// over entries sorted ascending by key (invariant 3), landing on the last
// entry whose key is <= key, falling back to the final entry when key is
// at or beyond the last entry's key.
func pageNumberForKey(entries []IndexEntry, key int32) uint16 {
	lo, hi := 0, len(entries)-1
	best := entries[len(entries)-1].PageNumber
	for lo <= hi {
		mid := (lo + hi) / 2
		if entries[mid].Key > key {
			hi = mid - 1
			continue
		}
		// entries[mid].Key <= key: candidate, keep searching right for a
		// tighter one.
		best = entries[mid].PageNumber
		lo = mid + 1
	}
	return best
}

// rewriteIndexEntryKey patches the single index entry whose key equals
// oldKey to newKey in place, used by delete_record's slot-0 case
// (spec.md §4.6 case 2).
func (s *Store) rewriteIndexEntryKey(oldKey, newKey int32) error {
	f, err := openReadWrite(s.indexPath)
	if err != nil {
		return err
	}
	defer closeFile(f)

	entries, err := s.readIndexEntries()
	if err != nil {
		return err
	}
	for i, e := range entries {
		if e.Key == oldKey {
			if _, err := f.Seek(int64(i*IndexEntrySize), 0); err != nil {
				return err
			}
			if _, err := f.Write(encodeIndexEntry(IndexEntry{Key: newKey, PageNumber: e.PageNumber})); err != nil {
				return err
			}
			return nil
		}
	}
	return ErrNotFound
}

// appendIndexEntry appends one entry to the index file; used by Init for
// the sentinel's entry and by reorganization, which rebuilds the index from
// scratch.
func appendIndexEntry(f fileWriter, e IndexEntry) error {
	_, err := f.Write(encodeIndexEntry(e))
	return err
}
