package isam

import (
	"log/slog"
	"os"
	"sync/atomic"

	"go.uber.org/multierr"
)

// Store is a handle over one indexed-sequential file pair: a sparse index
// file and a page-organized data file. It carries no process-wide state;
// the disk-operation counter lives on the handle itself (spec.md §9,
// "Disk-op counter as module-wide state"), so independent stores can be
// measured independently.
//
// Per spec.md §5, Store is strictly single-threaded: no method may be
// called concurrently with another on the same Store.
type Store struct {
	indexPath string
	dataPath  string

	primaryAreaSize  uint32
	overflowAreaSize uint32

	diskOps atomic.Uint32
}

// Init creates both files (which must not yet exist or must be empty),
// writes a page containing only the sentinel record (key 1) at page 1, and
// writes the one corresponding index entry (spec.md §3 "Lifecycle", §6).
func Init(indexPath, dataPath string) (*Store, error) {
	idxEmpty, err := isFileEmpty(indexPath)
	if err != nil {
		return nil, err
	}
	dataEmpty, err := isFileEmpty(dataPath)
	if err != nil {
		return nil, err
	}
	if !idxEmpty || !dataEmpty {
		return nil, ErrNotEmpty
	}

	p := &page{}
	p.records[0] = Record{Key: SentinelKey, OverflowPointer: OvfNull}

	df, err := os.Create(dataPath)
	if err != nil {
		return nil, err
	}
	if err := writeFull(df, p.encode()); err != nil {
		closeFile(df)
		return nil, err
	}
	closeFile(df)

	idxf, err := os.Create(indexPath)
	if err != nil {
		return nil, err
	}
	if err := appendIndexEntry(idxf, IndexEntry{Key: SentinelKey, PageNumber: 1}); err != nil {
		closeFile(idxf)
		return nil, err
	}
	closeFile(idxf)

	return &Store{
		indexPath:       indexPath,
		dataPath:        dataPath,
		primaryAreaSize: PageSize,
	}, nil
}

// Open reopens a store previously built by Init, reconstructing
// primaryAreaSize and overflowAreaSize from the files' current sizes
// (invariants 1 and 2).
func Open(indexPath, dataPath string) (*Store, error) {
	idxSize, err := fileSize(indexPath)
	if err != nil {
		return nil, err
	}
	if idxSize == 0 || idxSize%IndexEntrySize != 0 {
		return nil, ErrCorruptIndex
	}
	primaryAreaSize := uint32(idxSize/IndexEntrySize) * PageSize

	dataSize, err := fileSize(dataPath)
	if err != nil {
		return nil, err
	}
	if dataSize < int64(primaryAreaSize) {
		return nil, ErrCorruptIndex
	}

	return &Store{
		indexPath:        indexPath,
		dataPath:         dataPath,
		primaryAreaSize:  primaryAreaSize,
		overflowAreaSize: uint32(dataSize) - primaryAreaSize,
	}, nil
}

// DiskOps returns the disk-operation count accumulated since the start of
// the most recent Add or Delete call (spec.md §5); page and overflow reads
// made by later Get or Next calls are added to it, not reset.
func (s *Store) DiskOps() uint32 { return s.diskOps.Load() }

// OverflowRatio returns rho = overflow_area_size / (overflow_area_size +
// primary_area_size), the trigger condition checked by Add (spec.md §4.3
// step 8).
func (s *Store) OverflowRatio() float64 {
	total := s.overflowAreaSize + s.primaryAreaSize
	if total == 0 {
		return 0
	}
	return float64(s.overflowAreaSize) / float64(total)
}

// Add implements spec.md §4.3 add_record.
func (s *Store) Add(r Record) (uint32, error) {
	if r.Key < 2 {
		return 0, ErrInvalidArgument
	}
	if s.primaryAreaSize == 0 {
		return 0, ErrInvalidArgument
	}
	s.diskOps.Store(0)

	entries, err := s.readIndexEntries()
	if err != nil {
		return s.diskOps.Load(), err
	}
	pageNo := pageNumberForKey(entries, r.Key)

	pg, err := s.readPage(pageNo)
	if err != nil {
		return s.diskOps.Load(), err
	}

	_, found, insertAt, insertFound := pg.find(r.Key)
	if found {
		return s.diskOps.Load(), ErrDuplicateKey
	}
	last := pg.lastIndex()

	if pg.hasEmptySlot() {
		r.OverflowPointer = OvfNull
		if insertFound {
			pg.insertAt(insertAt, last, r)
		} else {
			pg.records[last+1] = r
		}
		if err := s.writePage(pageNo, pg); err != nil {
			return s.diskOps.Load(), err
		}
	} else {
		anchor := last
		if insertFound {
			anchor = insertAt - 1
		}
		rootUpdated, ptr, err := s.spliceOverflow(&r, pg.records[anchor].OverflowPointer)
		if err != nil {
			return s.diskOps.Load(), err
		}
		if rootUpdated {
			pg.records[anchor].OverflowPointer = ptr
			if err := s.writePage(pageNo, pg); err != nil {
				return s.diskOps.Load(), err
			}
		}
	}

	if s.OverflowRatio() > Beta {
		if err := s.Reorganize(); err != nil {
			return s.diskOps.Load(), err
		}
	}

	return s.diskOps.Load(), nil
}

// Get implements spec.md §4.5 get_record.
func (s *Store) Get(key int32) (Record, error) {
	if key < 2 {
		return Record{}, ErrInvalidArgument
	}

	entries, err := s.readIndexEntries()
	if err != nil {
		return Record{}, err
	}
	pageNo := pageNumberForKey(entries, key)

	pg, err := s.readPage(pageNo)
	if err != nil {
		return Record{}, err
	}

	slot, found, insertAt, insertFound := pg.find(key)
	if found {
		return pg.records[slot], nil
	}

	anchor := pg.lastIndex()
	if insertFound {
		anchor = insertAt - 1
	}

	ovf := pg.records[anchor].OverflowPointer
	for ovf != OvfNull {
		rec, err := s.readOverflow(ovf)
		if err != nil {
			return Record{}, err
		}
		if rec.Key == key {
			return rec, nil
		}
		if rec.Key > key {
			return Record{}, ErrNotFound
		}
		ovf = rec.OverflowPointer
	}
	return Record{}, ErrNotFound
}

// Delete implements spec.md §4.6 delete_record, all four cases.
func (s *Store) Delete(key int32) (uint32, error) {
	if key < 2 {
		return 0, ErrInvalidArgument
	}
	s.diskOps.Store(0)

	entries, err := s.readIndexEntries()
	if err != nil {
		return s.diskOps.Load(), err
	}
	pageNo := pageNumberForKey(entries, key)

	pg, err := s.readPage(pageNo)
	if err != nil {
		return s.diskOps.Load(), err
	}

	slot, found, insertAt, insertFound := pg.find(key)
	if found {
		idx := slot
		last := pg.lastIndex()

		if pg.records[idx].OverflowPointer != OvfNull {
			// Case 3: promote the overflow chain head into the deleted slot.
			head := pg.records[idx].OverflowPointer
			headRec, err := s.readOverflow(head)
			if err != nil {
				return s.diskOps.Load(), err
			}
			if err := s.writeOverflow(head, Record{}); err != nil {
				return s.diskOps.Load(), err
			}
			pg.records[idx] = headRec
			if idx == 0 {
				if err := s.rewriteIndexEntryKey(key, pg.records[0].Key); err != nil {
					return s.diskOps.Load(), err
				}
			}
			if err := s.writePage(pageNo, pg); err != nil {
				return s.diskOps.Load(), err
			}
			return s.diskOps.Load(), nil
		}

		if idx == 0 {
			// Case 2: slot-0 deletion, index patched to the new slot-0 key.
			pg.deleteAt(idx, last)
			if err := s.rewriteIndexEntryKey(key, pg.records[0].Key); err != nil {
				return s.diskOps.Load(), err
			}
			if err := s.writePage(pageNo, pg); err != nil {
				return s.diskOps.Load(), err
			}
			return s.diskOps.Load(), nil
		}

		// Case 1: plain ordered shift.
		pg.deleteAt(idx, last)
		if err := s.writePage(pageNo, pg); err != nil {
			return s.diskOps.Load(), err
		}
		return s.diskOps.Load(), nil
	}

	// Case 4: key must live in the overflow chain anchored on this page.
	anchor := pg.lastIndex()
	if insertFound {
		anchor = insertAt - 1
	}
	prevPtr := OvfNull
	currPtr := pg.records[anchor].OverflowPointer
	if currPtr == OvfNull {
		return s.diskOps.Load(), ErrNotFound
	}
	curr, err := s.readOverflow(currPtr)
	if err != nil {
		return s.diskOps.Load(), err
	}

	for {
		if curr.Key == key {
			if prevPtr == OvfNull {
				pg.records[anchor].OverflowPointer = curr.OverflowPointer
				if err := s.writePage(pageNo, pg); err != nil {
					return s.diskOps.Load(), err
				}
			} else {
				prev, err := s.readOverflow(prevPtr)
				if err != nil {
					return s.diskOps.Load(), err
				}
				prev.OverflowPointer = curr.OverflowPointer
				if err := s.writeOverflow(prevPtr, prev); err != nil {
					return s.diskOps.Load(), err
				}
			}
			if err := s.writeOverflow(currPtr, Record{}); err != nil {
				return s.diskOps.Load(), err
			}
			return s.diskOps.Load(), nil
		}
		if curr.Key > key || curr.OverflowPointer == OvfNull {
			return s.diskOps.Load(), ErrNotFound
		}
		prevPtr = currPtr
		currPtr = curr.OverflowPointer
		curr, err = s.readOverflow(currPtr)
		if err != nil {
			return s.diskOps.Load(), err
		}
	}
}

// Update implements spec.md §4.9: delete(r.key) followed by add(r). Both
// disk-op counts are summed. REDESIGN FLAG §9d: rather than masking a
// failure by returning the raw sum of two status codes, the first
// non-success is surfaced as the returned error; go.uber.org/multierr
// still records a second failure (e.g. the add failing after a successful
// delete) for diagnostics.
func (s *Store) Update(r Record) (uint32, error) {
	delOps, delErr := s.Delete(r.Key)
	addOps, addErr := s.Add(r)
	total := delOps + addOps

	combined := multierr.Combine(delErr, addErr)
	if combined == nil {
		return total, nil
	}
	errs := multierr.Errors(combined)
	if len(errs) > 1 {
		slog.Warn("isam: update failed on both delete and add",
			"key", r.Key, "deleteErr", delErr, "addErr", addErr)
	}
	return total, errs[0]
}
