// Package fs implements the file system operations (create, delete, list,
// read, concatenate) atop the block bitmap, file table and backing store,
// plus the metadata persistence that ties them together.
package fs

import (
	"log/slog"

	"github.com/agar64/University-OS-Assignment02/internal/bitmap"
	"github.com/agar64/University-OS-Assignment02/internal/collaborators"
	"github.com/agar64/University-OS-Assignment02/internal/filetable"
	"github.com/agar64/University-OS-Assignment02/internal/fserr"
	"github.com/agar64/University-OS-Assignment02/internal/metadata"
	"github.com/agar64/University-OS-Assignment02/internal/store"
)

// DataRegionSize is DISK_SIZE - META_RESERVE: the span of the image
// available for file payloads.
const DataRegionSize = store.Size - metadata.Reserve

// DataRegionBlocks is DataRegionSize/BlockSize (NUM_BLOCKS, minus the
// blocks reserved for metadata).
const DataRegionBlocks = DataRegionSize / bitmap.BlockSize

// PagefileName is reserved for the sort engine's scratch file; Create
// refuses it from user calls.
const PagefileName = "pagefile"

// FS is the flat file system: no directories, names are unique, every file
// is a sequence of 32-bit integers.
type FS struct {
	store     *store.Store
	bm        *bitmap.Bitmap
	ft        *filetable.Table
	freeBytes uint64
	rng       collaborators.RNG
	log       *slog.Logger
}

// Totals summarises the whole file system for List.
type Totals struct {
	DiskSize  uint64
	FreeBytes uint64
	FileCount int
}

// Open opens or creates the image at path and loads persisted state, if
// any.
func Open(path string, rng collaborators.RNG, log *slog.Logger) (*FS, error) {
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		rng = collaborators.DefaultRNG{}
	}

	s, err := store.OpenOrCreate(path)
	if err != nil {
		return nil, err
	}

	fsys := &FS{store: s, ft: filetable.New(), rng: rng, log: log}

	buf := make([]byte, metadata.Reserve)
	if err := s.ReadAt(int64(DataRegionSize), buf); err != nil {
		s.Close()
		return nil, err
	}

	if metadata.IsFreshImage(buf) {
		fsys.bm = bitmap.New(DataRegionBlocks)
		fsys.freeBytes = DataRegionSize
		if err := fsys.persist(); err != nil {
			s.Close()
			return nil, err
		}
		return fsys, nil
	}

	state, err := metadata.Decode(buf, DataRegionBlocks)
	if err != nil {
		s.Close()
		return nil, err
	}

	fsys.bm = state.Bitmap
	fsys.freeBytes = state.FreeBytes
	fsys.ft.Reset(state.Entries)

	return fsys, nil
}

// Close releases the backing store handle.
func (f *FS) Close() error {
	return f.store.Close()
}

// persist serialises bitmap + file table + free_bytes into the metadata
// region and flushes it durably.
func (f *FS) persist() error {
	buf, err := metadata.Encode(metadata.State{
		FreeBytes: f.freeBytes,
		Entries:   f.ft.Entries(),
		Bitmap:    f.bm,
	})
	if err != nil {
		return err
	}
	if err := f.store.WriteAt(int64(DataRegionSize), buf); err != nil {
		return err
	}
	return f.store.Flush()
}

func blocksFor(nBytes uint64) uint64 {
	return (nBytes + bitmap.BlockSize - 1) / bitmap.BlockSize
}

func validateName(op, name string) error {
	if len(name) == 0 || len(name) > filetable.MaxNameLen {
		return fserr.New(fserr.OutOfRange, op, name)
	}
	if name == PagefileName {
		return fserr.New(fserr.AlreadyExists, op, name)
	}
	return nil
}
