package fs

import (
	"encoding/binary"

	"github.com/agar64/University-OS-Assignment02/internal/fserr"
)

// Read streams the integers at positions [lo, hi] (inclusive) of the named
// file. It fails with NotFound if name is unknown, or OutOfRange if
// 0 <= lo <= hi < n does not hold, where n is the file's integer count.
func (f *FS) Read(name string, lo, hi int) ([]int32, error) {
	idx, err := f.ft.Find(name)
	if err != nil {
		return nil, err
	}
	entry := f.ft.Get(idx)

	n := int(entry.SizeBytes / 4)
	if lo < 0 || hi >= n || lo > hi {
		return nil, fserr.New(fserr.OutOfRange, "fs.Read", name)
	}

	count := hi - lo + 1
	buf := make([]byte, count*4)
	if err := f.store.ReadAt(int64(entry.StartOffset)+int64(lo)*4, buf); err != nil {
		return nil, err
	}

	out := make([]int32, count)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}

// Count returns the number of 32-bit integers the named file holds.
func (f *FS) Count(name string) (int, error) {
	idx, err := f.ft.Find(name)
	if err != nil {
		return 0, err
	}
	return int(f.ft.Get(idx).SizeBytes / 4), nil
}
