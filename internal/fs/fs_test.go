package fs

import (
	"path/filepath"
	"testing"

	"github.com/agar64/University-OS-Assignment02/internal/fserr"
)

func open(t *testing.T) *FS {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disk.img")
	fsys, err := Open(path, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { fsys.Close() })
	return fsys
}

// Scenario 1: fresh image -> create a 10 -> list reports one file of 40
// bytes, free = DATA_REGION.size - 40.
func TestCreateThenList(t *testing.T) {
	fsys := open(t)

	if err := fsys.Create("a", 10); err != nil {
		t.Fatal(err)
	}

	entries, totals := fsys.List()
	if len(entries) != 1 || entries[0].Name != "a" || entries[0].SizeBytes != 40 {
		t.Fatalf("got %+v", entries)
	}
	if totals.FreeBytes != DataRegionSize-40 {
		t.Fatalf("free = %d, want %d", totals.FreeBytes, DataRegionSize-40)
	}
	if totals.FileCount != 1 {
		t.Fatalf("count = %d, want 1", totals.FileCount)
	}
}

// Scenario 2: create a 10; delete a; create b 10 -> b reuses a's blocks
// (first-fit).
func TestDeleteFreesBlocksForReuse(t *testing.T) {
	fsys := open(t)

	if err := fsys.Create("a", 10); err != nil {
		t.Fatal(err)
	}
	aEntry, err := fsys.EntryByName("a")
	if err != nil {
		t.Fatal(err)
	}

	if err := fsys.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Create("b", 10); err != nil {
		t.Fatal(err)
	}
	bEntry, err := fsys.EntryByName("b")
	if err != nil {
		t.Fatal(err)
	}

	if bEntry.StartOffset != aEntry.StartOffset {
		t.Fatalf("b.start = %d, want %d", bEntry.StartOffset, aEntry.StartOffset)
	}
}

// Scenario 3: create a 4; read a 0 3 -> four integers within [0, 1e6).
func TestCreateFillsBoundedPayload(t *testing.T) {
	fsys := open(t)

	if err := fsys.Create("a", 4); err != nil {
		t.Fatal(err)
	}

	values, err := fsys.Read("a", 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 4 {
		t.Fatalf("got %d values", len(values))
	}
	for _, v := range values {
		if v < 0 || v >= 1_000_000 {
			t.Fatalf("value %d out of bound", v)
		}
	}
}

// Scenario 4: create a 2; create b 2; concatenate a b -> b gone, a.size ==
// 16, read a 0 3 yields the original four integers in order.
func TestConcatenateGrowsAndDeletesSecond(t *testing.T) {
	fsys := open(t)

	if err := fsys.Create("a", 2); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Create("b", 2); err != nil {
		t.Fatal(err)
	}

	wantA, err := fsys.Read("a", 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	wantB, err := fsys.Read("b", 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := fsys.Concatenate("a", "b"); err != nil {
		t.Fatal(err)
	}

	if _, err := fsys.EntryByName("b"); err == nil {
		t.Fatal("expected b to be gone")
	}

	aEntry, err := fsys.EntryByName("a")
	if err != nil {
		t.Fatal(err)
	}
	if aEntry.SizeBytes != 16 {
		t.Fatalf("a.size = %d, want 16", aEntry.SizeBytes)
	}

	got, err := fsys.Read("a", 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := append(append([]int32{}, wantA...), wantB...)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// Scenario 6: create x filling exactly two blocks; create y immediately
// after; attempt concatenate(x, y) with no free blocks between them ->
// NoContiguousTail.
func TestConcatenateFailsWithoutContiguousTail(t *testing.T) {
	fsys := open(t)

	const count = 2 * bitmapBlockInts // exactly fills whole blocks
	if err := fsys.Create("x", count); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Create("y", count); err != nil {
		t.Fatal(err)
	}

	err := fsys.Concatenate("x", "y")
	fsErr, ok := err.(*fserr.Error)
	if !ok || fsErr.Kind != fserr.NoContiguousTail {
		t.Fatalf("expected NoContiguousTail, got %v", err)
	}

	// Both files must be untouched.
	if _, err := fsys.EntryByName("x"); err != nil {
		t.Fatal(err)
	}
	if _, err := fsys.EntryByName("y"); err != nil {
		t.Fatal(err)
	}
}

const bitmapBlockInts = 4096 / 4

func TestCreateDuplicateName(t *testing.T) {
	fsys := open(t)
	if err := fsys.Create("a", 1); err != nil {
		t.Fatal(err)
	}
	err := fsys.Create("a", 1)
	fsErr, ok := err.(*fserr.Error)
	if !ok || fsErr.Kind != fserr.AlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", err)
	}
}

func TestCreateRejectsPagefileName(t *testing.T) {
	fsys := open(t)
	err := fsys.Create(PagefileName, 1)
	fsErr, ok := err.(*fserr.Error)
	if !ok || fsErr.Kind != fserr.AlreadyExists {
		t.Fatalf("expected AlreadyExists for reserved name, got %v", err)
	}
}

func TestReadOutOfRange(t *testing.T) {
	fsys := open(t)
	if err := fsys.Create("a", 4); err != nil {
		t.Fatal(err)
	}

	cases := [][2]int{{-1, 0}, {0, 4}, {2, 1}}
	for _, c := range cases {
		_, err := fsys.Read("a", c[0], c[1])
		fsErr, ok := err.(*fserr.Error)
		if !ok || fsErr.Kind != fserr.OutOfRange {
			t.Fatalf("lo=%d hi=%d: expected OutOfRange, got %v", c[0], c[1], err)
		}
	}
}

func TestDeleteNotFound(t *testing.T) {
	fsys := open(t)
	err := fsys.Delete("missing")
	fsErr, ok := err.(*fserr.Error)
	if !ok || fsErr.Kind != fserr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")

	fsys1, err := Open(path, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := fsys1.Create("a", 10); err != nil {
		t.Fatal(err)
	}
	if err := fsys1.Create("b", 20); err != nil {
		t.Fatal(err)
	}
	wantA, err := fsys1.EntryByName("a")
	if err != nil {
		t.Fatal(err)
	}
	wantB, err := fsys1.EntryByName("b")
	if err != nil {
		t.Fatal(err)
	}
	if err := fsys1.Close(); err != nil {
		t.Fatal(err)
	}

	fsys2, err := Open(path, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer fsys2.Close()

	gotA, err := fsys2.EntryByName("a")
	if err != nil {
		t.Fatal(err)
	}
	gotB, err := fsys2.EntryByName("b")
	if err != nil {
		t.Fatal(err)
	}

	if gotA != wantA || gotB != wantB {
		t.Fatalf("got %+v/%+v, want %+v/%+v", gotA, gotB, wantA, wantB)
	}

	_, totals := fsys2.List()
	if totals.FreeBytes != DataRegionSize-40-80 {
		t.Fatalf("free = %d, want %d", totals.FreeBytes, DataRegionSize-40-80)
	}
}
