package fs

import (
	"encoding/binary"

	"github.com/agar64/University-OS-Assignment02/internal/filetable"
	"github.com/agar64/University-OS-Assignment02/internal/fserr"
)

// payloadBound is the exclusive upper bound of the pseudo-random payload
// Create fills a new file with (§9, reference behaviour: [0, 1_000_000)).
const payloadBound = 1_000_000

// Create allocates a new file named name holding count pseudo-random
// 32-bit integers in [0, 1_000_000). It fails with AlreadyExists if name is
// taken (or reserved), NoSpace if free_bytes can't cover it, or NoSpace
// (surfaced from the allocator) if the data region is too fragmented even
// though aggregate free space would suffice.
func (f *FS) Create(name string, count int) error {
	if err := validateName("fs.Create", name); err != nil {
		return err
	}
	return f.create(name, count)
}

// CreatePagefile allocates the reserved scratch file used by Sort. Any
// stale pagefile entry is deleted first.
func (f *FS) CreatePagefile(count int) error {
	if _, err := f.ft.Find(PagefileName); err == nil {
		if err := f.Delete(PagefileName); err != nil {
			return err
		}
	}
	return f.create(PagefileName, count)
}

func (f *FS) create(name string, count int) error {
	if count < 0 {
		return fserr.New(fserr.OutOfRange, "fs.Create", name)
	}

	if _, err := f.ft.Find(name); err == nil {
		return fserr.New(fserr.AlreadyExists, "fs.Create", name)
	}

	size := uint64(count) * 4
	if size > f.freeBytes {
		return fserr.New(fserr.NoSpace, "fs.Create", name)
	}

	offset, err := f.bm.AllocateContiguous(size)
	if err != nil {
		return err
	}

	buf := make([]byte, size)
	for i := 0; i < count; i++ {
		v := f.rng.NextU32Bounded(payloadBound)
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}

	if err := f.store.WriteAt(int64(offset), buf); err != nil {
		f.bm.FreeRange(offset, size)
		return err
	}
	if err := f.store.Flush(); err != nil {
		f.bm.FreeRange(offset, size)
		return err
	}

	if err := f.ft.Insert(filetable.Entry{Name: name, SizeBytes: size, StartOffset: offset}); err != nil {
		f.bm.FreeRange(offset, size)
		return err
	}

	f.freeBytes -= size

	if err := f.persist(); err != nil {
		return err
	}

	f.log.Info("create", "name", name, "count", count, "size_bytes", size, "offset", offset)
	return nil
}
