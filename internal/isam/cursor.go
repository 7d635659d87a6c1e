package isam

// Next implements spec.md §4.7 get_next: given a key currently present in
// the file, return the record with the immediately larger key. End of file
// is reported by returning a zero-value Record (Key == 0), per spec.md
// §4.7's closing line, rather than a distinct error -- callers drive a
// scan with `for k := int32(1); ; { rec, err := s.Next(k); if err != nil ||
// rec.Key == 0 { break }; k = rec.Key }`.
func (s *Store) Next(key int32) (Record, error) {
	if key < 1 {
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
		i := slot
		if pg.records[i].OverflowPointer != OvfNull {
			return s.readOverflow(pg.records[i].OverflowPointer)
		}
		last := pg.lastIndex()
		if i < last {
			return pg.records[i+1], nil
		}
		return s.firstRecordOfNextPage(entries, pageNo)
	}

	// key must live in the overflow chain anchored on this page.
	anchor := pg.lastIndex()
	if insertFound {
		anchor = insertAt - 1
	}
	anchorKey := pg.records[anchor].Key

	ovf := pg.records[anchor].OverflowPointer
	for ovf != OvfNull {
		rec, err := s.readOverflow(ovf)
		if err != nil {
			return Record{}, err
		}
		if rec.Key == key {
			if rec.OverflowPointer != OvfNull {
				return s.readOverflow(rec.OverflowPointer)
			}
			for i := 0; i < RecordsPerPage; i++ {
				if pg.records[i].IsEmpty() {
					break
				}
				if pg.records[i].Key > anchorKey {
					return pg.records[i], nil
				}
			}
			return s.firstRecordOfNextPage(entries, pageNo)
		}
		ovf = rec.OverflowPointer
	}
	return Record{}, ErrNotFound
}

// firstRecordOfNextPage returns slot 0 of the page immediately following
// pageNo in page-number order, or a zero-key Record at end of file.
func (s *Store) firstRecordOfNextPage(entries []IndexEntry, pageNo uint16) (Record, error) {
	if int(pageNo) >= len(entries) {
		return Record{}, nil
	}
	next, err := s.readPage(pageNo + 1)
	if err != nil {
		return Record{}, err
	}
	return next.records[0], nil
}
