package fs

import (
	"github.com/agar64/University-OS-Assignment02/internal/bitmap"
	"github.com/agar64/University-OS-Assignment02/internal/fserr"
)

// Concatenate appends name2's bytes immediately after name1's last byte on
// disk, growing name1 in place and deleting name2. Only the blocks name1
// doesn't already own need to be free: if the combined payload still fits
// in name1's already-allocated last block, no new blocks are needed at
// all. Otherwise it requires the blocks physically following name1's
// currently-allocated range to be free for the shortfall; otherwise it
// fails with NoContiguousTail and leaves both files untouched.
//
// Free-bytes accounting: per the strict-payload-accounting decision (see
// SPEC_FULL.md §4.5/§9), a successful Concatenate leaves free_bytes
// unchanged overall — name2's blocks are freed and the shortfall is
// claimed past name1's tail.
func (f *FS) Concatenate(name1, name2 string) error {
	idx1, err := f.ft.Find(name1)
	if err != nil {
		return err
	}
	idx2, err := f.ft.Find(name2)
	if err != nil {
		return err
	}

	e1 := f.ft.Get(idx1)
	e2 := f.ft.Get(idx2)

	delta := blocksFor(e1.SizeBytes+e2.SizeBytes) - blocksFor(e1.SizeBytes)
	tailBlockStart := (e1.StartOffset / bitmap.BlockSize) + blocksFor(e1.SizeBytes)
	tailOffset := tailBlockStart * bitmap.BlockSize

	if delta > 0 && !f.bm.IsRangeFree(tailOffset, delta*bitmap.BlockSize) {
		return fserr.New(fserr.NoContiguousTail, "fs.Concatenate", name1)
	}

	buf := make([]byte, e2.SizeBytes)
	if err := f.store.ReadAt(int64(e2.StartOffset), buf); err != nil {
		return err
	}

	writeOffset := e1.StartOffset + e1.SizeBytes
	if err := f.store.WriteAt(int64(writeOffset), buf); err != nil {
		return err
	}
	if err := f.store.Flush(); err != nil {
		return err
	}

	if delta > 0 {
		f.bm.Mark(uint(tailBlockStart), uint(delta), true)
	}
	f.bm.FreeRange(e2.StartOffset, e2.SizeBytes)
	f.ft.Remove(idx2)

	e1.SizeBytes += e2.SizeBytes
	// idx1 may have shifted left by one if idx2 < idx1 (Remove compacts the
	// tail); Find again rather than trust the stale index.
	newIdx1, err := f.ft.Find(name1)
	if err != nil {
		return err
	}
	f.ft.Update(newIdx1, e1)

	if err := f.persist(); err != nil {
		return err
	}

	f.log.Info("concatenate", "name1", name1, "name2", name2, "new_size_bytes", e1.SizeBytes)
	return nil
}
