package filetable

import (
	"fmt"
	"testing"

	"github.com/agar64/University-OS-Assignment02/internal/fserr"
)

func TestInsertFindRemove(t *testing.T) {
	tbl := New()

	if err := tbl.Insert(Entry{Name: "a", SizeBytes: 40, StartOffset: 0}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Insert(Entry{Name: "b", SizeBytes: 80, StartOffset: 4096}); err != nil {
		t.Fatal(err)
	}

	idx, err := tbl.Find("b")
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Get(idx); got.Name != "b" || got.SizeBytes != 80 {
		t.Fatalf("got %+v", got)
	}

	tbl.Remove(idx)

	if _, err := tbl.Find("b"); err == nil {
		t.Fatal("expected NotFound after remove")
	}

	// "a" must still be reachable after the skip list index was rebuilt.
	idxA, err := tbl.Find("a")
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Get(idxA); got.Name != "a" {
		t.Fatalf("got %+v", got)
	}
}

func TestInsertDuplicateName(t *testing.T) {
	tbl := New()
	if err := tbl.Insert(Entry{Name: "a"}); err != nil {
		t.Fatal(err)
	}

	err := tbl.Insert(Entry{Name: "a"})
	fsErr, ok := err.(*fserr.Error)
	if !ok || fsErr.Kind != fserr.AlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", err)
	}
}

func TestInsertTableFull(t *testing.T) {
	tbl := New()
	for i := 0; i < MaxFiles; i++ {
		if err := tbl.Insert(Entry{Name: fmt.Sprintf("file%d", i)}); err != nil {
			t.Fatal(err)
		}
	}

	err := tbl.Insert(Entry{Name: "overflow"})
	fsErr, ok := err.(*fserr.Error)
	if !ok || fsErr.Kind != fserr.TableFull {
		t.Fatalf("expected TableFull, got %v", err)
	}
}

func TestFindNotFound(t *testing.T) {
	tbl := New()
	_, err := tbl.Find("missing")
	fsErr, ok := err.(*fserr.Error)
	if !ok || fsErr.Kind != fserr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestResetRebuildsIndex(t *testing.T) {
	tbl := New()
	tbl.Reset([]Entry{
		{Name: "x", SizeBytes: 4, StartOffset: 0},
		{Name: "y", SizeBytes: 8, StartOffset: 4096},
	})

	idx, err := tbl.Find("y")
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Get(idx); got.SizeBytes != 8 {
		t.Fatalf("got %+v", got)
	}
}
