// Package isamstore re-exports the indexed-sequential storage engine's
// public surface for callers that only need the top-level verbs (spec.md
// §6 "Operation surface"), the way the teacher project's root-level
// database.go fronts its internal engine package.
package isamstore

import "github.com/mateuszbauer/indexed-sequential-files/internal/isam"

type (
	// Store is a handle over one indexed-sequential file pair.
	Store = isam.Store
	// Record is the fixed-size keyed tuple the store persists.
	Record = isam.Record
)

// Tunables, mirrored from internal/isam for callers that don't want to
// import the internal package directly.
const (
	PayloadLen     = isam.PayloadLen
	RecordsPerPage = isam.RecordsPerPage
	Alpha          = isam.Alpha
	Beta           = isam.Beta
	OvfNull        = isam.OvfNull
)

// Sentinel errors, re-exported for errors.Is against the facade.
var (
	ErrInvalidArgument = isam.ErrInvalidArgument
	ErrDuplicateKey    = isam.ErrDuplicateKey
	ErrNotFound        = isam.ErrNotFound
)

// Init creates a fresh store; see isam.Init.
func Init(indexPath, dataPath string) (*Store, error) { return isam.Init(indexPath, dataPath) }

// Open reopens an existing store; see isam.Open.
func Open(indexPath, dataPath string) (*Store, error) { return isam.Open(indexPath, dataPath) }
