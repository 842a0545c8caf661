// Package store implements the backing image file for the flat file system:
// a fixed-size byte-addressable region offering positioned reads, positioned
// writes, and a durable flush.
package store

import (
	"fmt"
	"os"

	"github.com/agar64/University-OS-Assignment02/internal/fserr"
)

// Size is the total size of the backing image, in bytes (DISK_SIZE).
const Size = 1 << 30 // 1 GiB

// Store is the disk image: a single fixed-size file accessed only through
// positioned I/O, never through a shared read/write cursor.
type Store struct {
	f *os.File
}

// OpenOrCreate opens the image at path, creating and zero-filling it to
// Size if it does not already exist. An existing image is opened as-is and
// never truncated or re-zeroed.
func OpenOrCreate(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if os.IsNotExist(err) {
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			return nil, fserr.Wrap("store.OpenOrCreate", path, err)
		}
		if err := f.Truncate(Size); err != nil {
			f.Close()
			return nil, fserr.Wrap("store.OpenOrCreate", path, err)
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return nil, fserr.Wrap("store.OpenOrCreate", path, err)
		}
		return &Store{f: f}, nil
	}
	if err != nil {
		return nil, fserr.Wrap("store.OpenOrCreate", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fserr.Wrap("store.OpenOrCreate", path, err)
	}
	if info.Size() != Size {
		f.Close()
		return nil, fserr.Wrap("store.OpenOrCreate", path, fmt.Errorf("image size %d, want %d", info.Size(), Size))
	}

	return &Store{f: f}, nil
}

// ReadAt reads len(buf) bytes starting at offset.
func (s *Store) ReadAt(offset int64, buf []byte) error {
	if _, err := s.f.ReadAt(buf, offset); err != nil {
		return fserr.Wrap("store.ReadAt", "", err)
	}
	return nil
}

// WriteAt writes buf starting at offset.
func (s *Store) WriteAt(offset int64, buf []byte) error {
	if _, err := s.f.WriteAt(buf, offset); err != nil {
		return fserr.Wrap("store.WriteAt", "", err)
	}
	return nil
}

// Flush issues a durability barrier: flush to the OS and request the OS
// commit the data to stable storage.
func (s *Store) Flush() error {
	if err := s.f.Sync(); err != nil {
		return fserr.Wrap("store.Flush", "", err)
	}
	return nil
}

// Close releases the underlying file handle.
func (s *Store) Close() error {
	if err := s.f.Close(); err != nil {
		return fserr.Wrap("store.Close", "", err)
	}
	return nil
}
