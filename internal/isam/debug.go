package isam

import (
	"fmt"
	"io"
)

// PrintDataFile writes a diagnostic dump of the main and overflow areas to
// w, mirroring the reference implementation's print_data_file (spec.md §6,
// §9 design notes). Errors are written inline rather than swallowed.
func (s *Store) PrintDataFile(w io.Writer) {
	f, err := openRead(s.dataPath)
	if err != nil {
		fmt.Fprintf(w, "isam: cannot open data file: %v\n", err)
		return
	}
	defer closeFile(f)

	fmt.Fprintln(w, "\n*** MAIN AREA ***")
	buf := make([]byte, RecordSize)
	var offset int64
	printedOverflowHeader := false

	for {
		n, err := f.ReadAt(buf, offset)
		if n < RecordSize {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			if err != nil {
				fmt.Fprintf(w, "isam: read error at offset %d: %v\n", offset, err)
				return
			}
			break
		}

		rec := decodeRecord(buf)
		fmt.Fprintf(w, "%d   |%v", rec.Key, rec.Numbers)
		if rec.OverflowPointer == OvfNull || rec.OverflowPointer == 0 {
			fmt.Fprintf(w, "| %x\n", rec.OverflowPointer)
		} else {
			fmt.Fprintf(w, "| %x (ovf_idx:%d)\n", rec.OverflowPointer, s.overflowSlotIndex(rec.OverflowPointer))
		}

		offset += int64(RecordSize)
		if !printedOverflowHeader && offset >= int64(s.primaryAreaSize) {
			fmt.Fprintln(w, "*** OVERFLOW AREA ***")
			printedOverflowHeader = true
		}
	}
}
