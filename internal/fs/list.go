package fs

import (
	"github.com/agar64/University-OS-Assignment02/internal/filetable"
	"github.com/agar64/University-OS-Assignment02/internal/store"
)

// List returns every live file with its size, plus the aggregate totals.
func (f *FS) List() ([]filetable.Entry, Totals) {
	entries := f.ft.Entries()
	totals := Totals{
		DiskSize:  store.Size,
		FreeBytes: f.freeBytes,
		FileCount: len(entries),
	}
	return entries, totals
}
