// Package isam implements an indexed-sequential (ISAM-style) storage
// engine for fixed-size keyed records, laid out across a page-organized
// data file and a sparse index file.
package isam

import "encoding/binary"

const (
	// PayloadLen is the number of opaque payload bytes carried by every
	// record (the "numbers" field of spec.md §3).
	PayloadLen = 15

	// RecordsPerPage is P: the number of record slots per primary page.
	RecordsPerPage = 10

	// RecordSize is R: the packed on-disk size of one record.
	// PayloadLen bytes + int32 key (4) + uint32 overflow pointer (4).
	RecordSize = PayloadLen + 4 + 4

	// PageSize is P*R: the packed on-disk size of one primary page.
	PageSize = RecordsPerPage * RecordSize

	// OvfNull is the overflow-pointer sentinel meaning "no successor".
	OvfNull uint32 = 0xDEADDEAD

	// SentinelKey anchors the primary area so the sparse index always has
	// a first entry to query. Never returned to callers.
	SentinelKey int32 = 1

	// EmptyKey marks an unused record slot.
	EmptyKey int32 = 0
)

// Record is the fixed-size keyed tuple stored in both the primary pages and
// the overflow area: an opaque payload, a signed key, and a byte offset
// pointer chaining it to the next overflow record (or OvfNull).
type Record struct {
	Numbers        [PayloadLen]byte
	Key            int32
	OverflowPointer uint32
}

// IsEmpty reports whether this slot holds no user data.
func (r Record) IsEmpty() bool { return r.Key == EmptyKey }

// encodeRecord packs r into a RecordSize-byte little-endian buffer.
func encodeRecord(r Record) []byte {
	buf := make([]byte, RecordSize)
	copy(buf[:PayloadLen], r.Numbers[:])
	binary.LittleEndian.PutUint32(buf[PayloadLen:PayloadLen+4], uint32(r.Key))
	binary.LittleEndian.PutUint32(buf[PayloadLen+4:PayloadLen+8], r.OverflowPointer)
	return buf
}

// decodeRecord unpacks a RecordSize-byte little-endian buffer into a Record.
func decodeRecord(buf []byte) Record {
	var r Record
	copy(r.Numbers[:], buf[:PayloadLen])
	r.Key = int32(binary.LittleEndian.Uint32(buf[PayloadLen : PayloadLen+4]))
	r.OverflowPointer = binary.LittleEndian.Uint32(buf[PayloadLen+4 : PayloadLen+8])
	return r
}
