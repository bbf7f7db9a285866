package history

import (
	"bytes"
	"fmt"
	"testing"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	l := New([]byte("blank"))
	const n = 5
	for i := 0; i < n; i++ {
		l.Record([]byte(fmt.Sprintf("state-%d", i)))
	}

	// N undos walk back to the seed state.
	for i := n - 1; i > 0; i-- {
		entry, ok := l.Undo()
		if !ok {
			t.Fatalf("undo %d failed", i)
		}
		want := fmt.Sprintf("state-%d", i-1)
		if string(entry) != want {
			t.Fatalf("undo returned %q, want %q", entry, want)
		}
	}
	entry, ok := l.Undo()
	if !ok || string(entry) != "blank" {
		t.Fatalf("final undo = %q, %v; want blank", entry, ok)
	}
	if _, ok := l.Undo(); ok {
		t.Fatal("undo past the seed entry should be a no-op")
	}

	// N redos restore the final state exactly.
	for i := 0; i < n; i++ {
		entry, ok := l.Redo()
		if !ok {
			t.Fatalf("redo %d failed", i)
		}
		want := fmt.Sprintf("state-%d", i)
		if string(entry) != want {
			t.Fatalf("redo returned %q, want %q", entry, want)
		}
	}
	if _, ok := l.Redo(); ok {
		t.Fatal("redo at the tail should be a no-op")
	}
}

func TestRecordPrunesRedoBranch(t *testing.T) {
	l := New([]byte("blank"))
	l.Record([]byte("a"))
	l.Record([]byte("b"))
	l.Record([]byte("c"))

	l.Undo()
	l.Undo()
	if !l.CanRedo() {
		t.Fatal("expected redo available after undo")
	}

	l.Record([]byte("d"))
	if l.CanRedo() {
		t.Fatal("recording must prune the redo branch")
	}
	if l.Len() != 3 { // blank, a, d
		t.Fatalf("len = %d, want 3", l.Len())
	}
	entry, ok := l.Undo()
	if !ok || string(entry) != "a" {
		t.Fatalf("undo after prune = %q, %v; want a", entry, ok)
	}
}

func TestEntriesAreImmutable(t *testing.T) {
	seed := []byte("seed")
	l := New(seed)
	seed[0] = 'X'

	snap := []byte("snap")
	l.Record(snap)
	snap[0] = 'Y'

	entry, _ := l.Undo()
	if !bytes.Equal(entry, []byte("seed")) {
		t.Errorf("seed entry mutated: %q", entry)
	}
	entry, _ = l.Redo()
	if !bytes.Equal(entry, []byte("snap")) {
		t.Errorf("recorded entry mutated: %q", entry)
	}
}

func TestAlwaysAtLeastOneEntry(t *testing.T) {
	l := New(nil)
	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}
	if l.CanUndo() || l.CanRedo() {
		t.Fatal("fresh log should have no undo or redo")
	}
}
