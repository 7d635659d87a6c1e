package isam

// page is the in-memory, decoded form of one primary page: RecordsPerPage
// slots, non-empty ones forming a strictly ascending, contiguous prefix
// (invariant 4).
type page struct {
	records [RecordsPerPage]Record
}

// decodePage unpacks a PageSize-byte buffer into a page.
func decodePage(buf []byte) *page {
	p := &page{}
	for i := 0; i < RecordsPerPage; i++ {
		p.records[i] = decodeRecord(buf[i*RecordSize : (i+1)*RecordSize])
	}
	return p
}

// encode packs the page back into a PageSize-byte buffer.
func (p *page) encode() []byte {
	buf := make([]byte, PageSize)
	for i := 0; i < RecordsPerPage; i++ {
		copy(buf[i*RecordSize:(i+1)*RecordSize], encodeRecord(p.records[i]))
	}
	return buf
}

// lastIndex returns the index of the highest non-empty slot, or -1 if the
// page has no user records (only possible for a freshly zeroed buffer,
// never for a page reachable through the index per invariant 4).
func (p *page) lastIndex() int {
	for i := RecordsPerPage - 1; i >= 0; i-- {
		if !p.records[i].IsEmpty() {
			return i
		}
	}
	return -1
}

// hasEmptySlot reports whether the page has room for one more record.
func (p *page) hasEmptySlot() bool {
	for i := 0; i < RecordsPerPage; i++ {
		if p.records[i].IsEmpty() {
			return true
		}
	}
	return false
}

// find scans the page for key, reporting its slot if present. If absent,
// insertAt is the smallest slot holding a greater key (insertFound true),
// or undefined (insertFound false) when every in-page key is smaller.
func (p *page) find(key int32) (slot int, found bool, insertAt int, insertFound bool) {
	for i := 0; i < RecordsPerPage; i++ {
		k := p.records[i].Key
		if p.records[i].IsEmpty() {
			break
		}
		if k == key {
			return i, true, 0, false
		}
		if k > key {
			return 0, false, i, true
		}
	}
	return 0, false, 0, false
}

// insertAt shifts records[idx:last+1] right by one slot and places r at
// idx, implementing the in-page ordered insert of spec.md §4.3 step 6.
func (p *page) insertAt(idx int, last int, r Record) {
	for i := last + 1; i > idx; i-- {
		p.records[i] = p.records[i-1]
	}
	p.records[idx] = r
}

// deleteAt shifts records[idx+1:last+1] left by one slot and zeroes the
// freed tail slot, implementing the general in-page ordered delete of
// spec.md §4.6 case 1.
func (p *page) deleteAt(idx int, last int) {
	for i := idx; i < last; i++ {
		p.records[i] = p.records[i+1]
	}
	p.records[last] = Record{}
}

// readPage implements spec.md §4.2 read_page: seek to (n-1)*PageSize, read
// exactly PageSize bytes.
func (s *Store) readPage(pageNumber uint16) (*page, error) {
	if pageNumber == 0 {
		return nil, ErrInvalidArgument
	}
	f, err := openRead(s.dataPath)
	if err != nil {
		return nil, err
	}
	defer closeFile(f)

	offset := int64(pageNumber-1) * int64(PageSize)
	if _, err := f.Seek(offset, 0); err != nil {
		return nil, err
	}
	buf := make([]byte, PageSize)
	if _, err := readFull(f, buf); err != nil {
		return nil, err
	}
	s.diskOps.Add(1)
	return decodePage(buf), nil
}

// writePage implements spec.md §4.2 write_page: seek, write exactly
// PageSize bytes, rejecting writes past primary_area_size.
func (s *Store) writePage(pageNumber uint16, p *page) error {
	if pageNumber == 0 {
		return ErrInvalidArgument
	}
	offset := int64(pageNumber-1) * int64(PageSize)
	if offset+int64(PageSize) > int64(s.primaryAreaSize) {
		return ErrInvalidArgument
	}

	f, err := openReadWrite(s.dataPath)
	if err != nil {
		return err
	}
	defer closeFile(f)

	if _, err := f.Seek(offset, 0); err != nil {
		return err
	}
	if err := writeFull(f, p.encode()); err != nil {
		return err
	}
	s.diskOps.Add(1)
	return nil
}
