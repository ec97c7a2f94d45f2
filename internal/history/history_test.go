package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenamer tracks names in a set and fails for missing sources.
type fakeRenamer struct {
	names map[string]bool
	calls []string
}

func newFakeRenamer(names ...string) *fakeRenamer {
	r := &fakeRenamer{names: map[string]bool{}}
	for _, n := range names {
		r.names[n] = true
	}
	return r
}

var errMissing = errors.New("missing")

func (r *fakeRenamer) Rename(dir, from, to string) error {
	r.calls = append(r.calls, from+">"+to)
	if !r.names[from] {
		return errMissing
	}
	delete(r.names, from)
	r.names[to] = true
	return nil
}

func TestStack_LIFO(t *testing.T) {
	t.Parallel()

	var s Stack
	s.Push(Entry{Applied: "1"})
	s.Push(Entry{Applied: "2"})
	assert.Equal(t, 2, s.Len())

	e, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "2", e.Applied)
	e, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, "1", e.Applied)
	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestUndo_Empty(t *testing.T) {
	t.Parallel()

	h := New()
	_, err := h.Undo(newFakeRenamer())
	assert.ErrorIs(t, err, ErrNothingToUndo)
	_, err = h.Redo(newFakeRenamer())
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestUndo_DrainsNewestFirst(t *testing.T) {
	t.Parallel()

	h := New()
	h.Push(Entry{Dir: "/d", Applied: "x.txt", Previous: "a.txt"})
	h.Push(Entry{Dir: "/d", Applied: "y.txt", Previous: "b.txt"})
	r := newFakeRenamer("x.txt", "y.txt")

	rep, err := h.Undo(r)
	require.NoError(t, err)
	assert.Empty(t, rep.Failed)
	assert.Equal(t, []string{"y.txt>b.txt", "x.txt>a.txt"}, r.calls)
	assert.False(t, h.CanUndo())
	assert.Equal(t, []Entry{
		{Dir: "/d", Applied: "b.txt", Previous: "y.txt"},
		{Dir: "/d", Applied: "a.txt", Previous: "x.txt"},
	}, h.RedoEntries())

	rep, err = h.Redo(r)
	require.NoError(t, err)
	assert.Len(t, rep.Applied, 2)
	assert.False(t, h.CanRedo())
	assert.True(t, r.names["x.txt"])
	assert.True(t, r.names["y.txt"])
	assert.Equal(t, []Entry{
		{Dir: "/d", Applied: "x.txt", Previous: "a.txt"},
		{Dir: "/d", Applied: "y.txt", Previous: "b.txt"},
	}, h.UndoEntries())
}

func TestUndo_SkipsMissing(t *testing.T) {
	t.Parallel()

	h := New()
	h.Push(Entry{Dir: "/d", Applied: "x.txt", Previous: "a.txt"})
	h.Push(Entry{Dir: "/d", Applied: "gone.txt", Previous: "b.txt"})
	r := newFakeRenamer("x.txt")

	rep, err := h.Undo(r)
	require.NoError(t, err)
	require.Len(t, rep.Failed, 1)
	assert.ErrorIs(t, rep.Failed[0], errMissing)
	assert.Len(t, rep.Applied, 1)
	assert.False(t, h.CanUndo())
	assert.Len(t, h.RedoEntries(), 1)
}

func TestClearRedo(t *testing.T) {
	t.Parallel()

	h := New()
	h.Push(Entry{Dir: "/d", Applied: "x", Previous: "a"})
	_, err := h.Undo(newFakeRenamer("x"))
	require.NoError(t, err)
	require.True(t, h.CanRedo())

	h.ClearRedo()
	_, err = h.Redo(newFakeRenamer("a"))
	assert.ErrorIs(t, err, ErrNothingToRedo)
}
