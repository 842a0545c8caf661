// Package filetable implements the bounded file descriptor table: an
// order-preserving array of (name, size, start offset) entries, gated by a
// bloom filter for fast negative lookups and indexed by a skip list for
// fast positive ones.
package filetable

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/agar64/University-OS-Assignment02/internal/fserr"
	"github.com/agar64/University-OS-Assignment02/internal/memtable"
)

// MaxFiles bounds the number of live entries (MAX_FILES).
const MaxFiles = 1000

// MaxNameLen bounds a file name's length in bytes (MAX_NAME), excluding the
// NUL terminator used on disk.
const MaxNameLen = 255

// Entry describes one live file.
type Entry struct {
	Name        string
	SizeBytes   uint64
	StartOffset uint64
}

// Table is the bounded, order-preserving array of live entries. Deletion
// compacts by shifting successors left; the resulting order is an
// implementation detail, not something clients may rely on.
type Table struct {
	entries []Entry
	filter  *bloom.BloomFilter
	index   *memtable.SkipList[string, int]
}

// New creates an empty table.
func New() *Table {
	t := &Table{entries: make([]Entry, 0, MaxFiles)}
	t.rebuild()
	return t
}

// rebuild regenerates both the bloom filter and the name->index skip list
// from the entries array. Names are unique (T1), so the skip list never
// collapses distinct files the way it would if used on a field that could
// repeat — the same reason it is not used for the sort engine's integer
// payloads. Called whenever index values could have shifted wholesale
// (Remove, Reset), since bloom filters cannot un-add a key and a removal
// shifts every later index by one.
func (t *Table) rebuild() {
	f := bloom.NewWithEstimates(uint(MaxFiles*2), 0.01)
	idx := memtable.NewSkipListMemtable[string, int]()
	for i, e := range t.entries {
		f.AddString(e.Name)
		idx.Put(e.Name, i)
	}
	t.filter = f
	t.index = idx
}

// Find returns the index of the entry named name, or NotFound. A negative
// bloom filter test short-circuits straight to NotFound; a positive test
// (including a false positive) falls through to the skip list, which holds
// the ground truth, so Find can never wrongly report NotFound.
func (t *Table) Find(name string) (int, error) {
	if !t.filter.TestString(name) {
		return -1, fserr.New(fserr.NotFound, "filetable.Find", name)
	}
	if i, ok := t.index.Get(name); ok {
		return i, nil
	}
	return -1, fserr.New(fserr.NotFound, "filetable.Find", name)
}

// Get returns a copy of the entry at index.
func (t *Table) Get(index int) Entry {
	return t.entries[index]
}

// Count returns the number of live entries.
func (t *Table) Count() int {
	return len(t.entries)
}

// Entries returns the live entries in table order. The slice is a copy and
// safe for the caller to range over.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Insert appends a new entry. It fails with AlreadyExists if the name is
// already present, or TableFull if the table is at MaxFiles.
func (t *Table) Insert(e Entry) error {
	if len(e.Name) > MaxNameLen {
		return fserr.New(fserr.OutOfRange, "filetable.Insert", e.Name)
	}
	if _, err := t.Find(e.Name); err == nil {
		return fserr.New(fserr.AlreadyExists, "filetable.Insert", e.Name)
	}
	if len(t.entries) >= MaxFiles {
		return fserr.New(fserr.TableFull, "filetable.Insert", e.Name)
	}
	t.entries = append(t.entries, e)
	t.filter.AddString(e.Name)
	t.index.Put(e.Name, len(t.entries)-1)
	return nil
}

// Remove deletes the entry at index, shifting successors left. Every
// index past the removed one shifts, so the bloom filter and skip list are
// both rebuilt from scratch rather than patched in place.
func (t *Table) Remove(index int) {
	t.entries = append(t.entries[:index], t.entries[index+1:]...)
	t.rebuild()
}

// Update replaces the entry at index in place (used by Concatenate to grow
// a file). The name at index
// is assumed unchanged, so the skip list index is left untouched.
func (t *Table) Update(index int, e Entry) {
	t.entries[index] = e
}

// Reset replaces the live entries wholesale, used when loading persisted
// metadata.
func (t *Table) Reset(entries []Entry) {
	t.entries = append(t.entries[:0], entries...)
	t.rebuild()
}
