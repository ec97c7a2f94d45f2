// Package history keeps the undo and redo stacks of completed renames.
package history

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Entry is one completed rename: Dir/Applied currently exists and used to
// be called Previous.
type Entry struct {
	Dir      string
	Applied  string
	Previous string
}

// Reverse returns the entry describing the opposite rename.
func (e Entry) Reverse() Entry {
	return Entry{Dir: e.Dir, Applied: e.Previous, Previous: e.Applied}
}

// Renamer performs a single rename of dir/from to dir/to.
type Renamer interface {
	Rename(dir, from, to string) error
}

// Report lists what one batch or drain did.
type Report struct {
	Applied []Entry
	Failed  []error
}

// Summary renders the counts for a notification, e.g. "Renamed: 2".
func (r Report) Summary(verb string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d\nSkipped: %d", verb, len(r.Applied), len(r.Failed))
	for _, err := range firstN(r.Failed, 20) {
		b.WriteString("\n - " + err.Error())
	}
	if len(r.Failed) > 20 {
		fmt.Fprintf(&b, "\n ... and %d more", len(r.Failed)-20)
	}
	return b.String()
}

func firstN[T any](in []T, n int) []T {
	if len(in) <= n {
		return in
	}
	return in[:n]
}

// Stack is a LIFO of entries.
type Stack struct {
	entries []Entry
}

func (s *Stack) Push(e Entry) {
	s.entries = append(s.entries, e)
}

func (s *Stack) Pop() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}

func (s *Stack) Len() int { return len(s.entries) }

func (s *Stack) Clear() { s.entries = nil }

// Entries returns a copy, oldest first.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// History holds the undo and redo stacks. It is not safe for concurrent
// use; all mutations happen on the goroutine that drives user actions.
type History struct {
	undo Stack
	redo Stack
}

func New() *History {
	return &History{}
}

// Push records a completed rename on the undo stack.
func (h *History) Push(e Entry) {
	h.undo.Push(e)
}

// ClearRedo drops the redo history. Called before every new batch.
func (h *History) ClearRedo() {
	h.redo.Clear()
}

func (h *History) CanUndo() bool { return h.undo.Len() > 0 }
func (h *History) CanRedo() bool { return h.redo.Len() > 0 }

func (h *History) UndoEntries() []Entry { return h.undo.Entries() }
func (h *History) RedoEntries() []Entry { return h.redo.Entries() }

// Undo drains the whole undo stack, newest first. Each entry is renamed
// back with r and its reverse is pushed to the redo stack. Entries that
// fail are reported and dropped.
func (h *History) Undo(r Renamer) (Report, error) {
	if !h.CanUndo() {
		return Report{}, ErrNothingToUndo
	}
	return drain(&h.undo, &h.redo, r), nil
}

// Redo is the mirror of Undo.
func (h *History) Redo(r Renamer) (Report, error) {
	if !h.CanRedo() {
		return Report{}, ErrNothingToRedo
	}
	return drain(&h.redo, &h.undo, r), nil
}

func drain(from, to *Stack, r Renamer) Report {
	var rep Report
	for {
		e, ok := from.Pop()
		if !ok {
			return rep
		}
		if err := r.Rename(e.Dir, e.Applied, e.Previous); err != nil {
			rep.Failed = append(rep.Failed, err)
			continue
		}
		rev := e.Reverse()
		to.Push(rev)
		rep.Applied = append(rep.Applied, rev)
	}
}
