// Package history keeps a linear undo/redo log of encoded canvas snapshots.
package history

// Log is an ordered sequence of immutable snapshots with a cursor. The log
// always holds at least one entry (the state it was seeded with) and the
// cursor always points at a valid entry.
type Log struct {
	entries [][]byte
	cursor  int
}

// New creates a log seeded with the initial state.
func New(initial []byte) *Log {
	return &Log{entries: [][]byte{clone(initial)}}
}

// Record appends a snapshot after the cursor and moves the cursor to it.
// Any entries beyond the previous cursor position are discarded, so a new
// action after undoing prunes the abandoned branch.
func (l *Log) Record(snapshot []byte) {
	l.entries = append(l.entries[:l.cursor+1], clone(snapshot))
	l.cursor = len(l.entries) - 1
}

// Undo steps the cursor back one entry and returns it. At the oldest entry
// it reports false and returns nothing.
func (l *Log) Undo() ([]byte, bool) {
	if l.cursor == 0 {
		return nil, false
	}
	l.cursor--
	return l.entries[l.cursor], true
}

// Redo steps the cursor forward one entry and returns it. At the newest
// entry it reports false and returns nothing.
func (l *Log) Redo() ([]byte, bool) {
	if l.cursor >= len(l.entries)-1 {
		return nil, false
	}
	l.cursor++
	return l.entries[l.cursor], true
}

// CanUndo reports whether the cursor can move back.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether the cursor can move forward.
func (l *Log) CanRedo() bool { return l.cursor < len(l.entries)-1 }

// Len returns the number of entries in the log.
func (l *Log) Len() int { return len(l.entries) }

// Cursor returns the current cursor position.
func (l *Log) Cursor() int { return l.cursor }

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
