package fs

import (
	"encoding/binary"

	"github.com/agar64/University-OS-Assignment02/internal/filetable"
)

// EntryByName looks up a live file's table entry, for collaborators (the
// sort engine) that need raw positioned access beyond what Read/Create
// expose.
func (f *FS) EntryByName(name string) (filetable.Entry, error) {
	idx, err := f.ft.Find(name)
	if err != nil {
		return filetable.Entry{}, err
	}
	return f.ft.Get(idx), nil
}

// ReadInts reads len(out) 32-bit integers starting at the absolute byte
// offset into the backing image.
func (f *FS) ReadInts(offset int64, out []int32) error {
	buf := make([]byte, len(out)*4)
	if err := f.store.ReadAt(offset, buf); err != nil {
		return err
	}
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return nil
}

// WriteInts writes in at the absolute byte offset into the backing image.
func (f *FS) WriteInts(offset int64, in []int32) error {
	buf := make([]byte, len(in)*4)
	for i, v := range in {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return f.store.WriteAt(offset, buf)
}

// Flush issues a durability barrier on the backing store directly, without
// touching metadata.
func (f *FS) Flush() error {
	return f.store.Flush()
}

// PersistAfterSort re-saves metadata once Sort has rewritten a file's
// contents in place; size and offset are unchanged but the ordering
// guarantee (§5) still requires a persist after every mutating operation.
func (f *FS) PersistAfterSort() error {
	return f.persist()
}
