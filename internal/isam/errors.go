package isam

import "errors"

// Sentinel errors returned by Store's public operations, grouped the way
// internal/storage/vars.go groups its ErrXxx values in the teacher repo.
var (
	// ErrInvalidArgument covers precondition violations: Add on a zero-value
	// Store, or a key <= 1 passed to Add/Get/Delete (Next rejects keys < 1)
	// (spec.md §7a). Init on non-empty files returns ErrNotEmpty instead.
	ErrInvalidArgument = errors.New("isam: invalid argument")

	// ErrDuplicateKey is returned by Add when the key already exists,
	// whether on the primary page or anywhere along its overflow chain
	// (spec.md §7b).
	ErrDuplicateKey = errors.New("isam: duplicate key")

	// ErrNotFound is returned by Get/Delete when the key is absent
	// (spec.md §7c).
	ErrNotFound = errors.New("isam: not found")

	// ErrCorruptIndex is returned when the index file size is not a
	// multiple of IndexEntrySize (invariant 2 violated), and by Open when the
	// index file is empty or the data file is shorter than the primary area
	// the index describes.
	ErrCorruptIndex = errors.New("isam: index file size does not match the store layout")

	// ErrNotEmpty is returned by Init when either backing file is non-empty.
	ErrNotEmpty = errors.New("isam: index or data file is not empty")

	// ErrShortIO is returned when a page or record read/write does not
	// transfer the expected number of bytes, upgrading the reference
	// implementation's assertions (spec.md §7d) to a propagated error.
	ErrShortIO = errors.New("isam: short read or write against the backing store")
)
