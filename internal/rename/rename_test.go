package rename

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BatchRenamer/internal/history"
)

func setup(t *testing.T, names ...string) (*Executor, afero.Fs) {
	t.Helper()
	afs := afero.NewMemMapFs()
	require.NoError(t, afs.MkdirAll("/dir", 0o755))
	for _, n := range names {
		require.NoError(t, afero.WriteFile(afs, "/dir/"+n, []byte(n), 0o644))
	}
	return New(afs, zerolog.Nop()), afs
}

func exists(t *testing.T, afs afero.Fs, name string) bool {
	t.Helper()
	ok, err := afero.Exists(afs, "/dir/"+name)
	require.NoError(t, err)
	return ok
}

func TestValidate(t *testing.T) {
	t.Parallel()

	names, err := Validate([]string{"a", "b"}, []string{" x ", "y\t"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names)

	_, err = Validate([]string{"a", "b"}, []string{"x"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "does not match")

	_, err = Validate([]string{"a", "b"}, []string{"x", "   "})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "New names cannot be empty.", vErr.Error())
}

func TestRename_NotFound(t *testing.T) {
	t.Parallel()
	x, _ := setup(t)

	err := x.Rename("/dir", "ghost.txt", "x.txt")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Item not found: ghost.txt", err.Error())
}

func TestRename_RefusesOverwrite(t *testing.T) {
	t.Parallel()
	x, afs := setup(t, "a.txt", "b.txt")

	err := x.Rename("/dir", "a.txt", "b.txt")
	require.ErrorIs(t, err, fs.ErrExist)
	assert.True(t, exists(t, afs, "a.txt"))

	data, err := afero.ReadFile(afs, "/dir/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "b.txt", string(data))
}

func TestRename_CaseOnly(t *testing.T) {
	t.Parallel()
	x, afs := setup(t, "a.txt")

	require.NoError(t, x.Rename("/dir", "a.txt", "A.txt"))
	assert.True(t, exists(t, afs, "A.txt"))
}

func TestRename_CaseOnlyKeepsDistinctTarget(t *testing.T) {
	t.Parallel()
	x, afs := setup(t, "a.txt", "A.txt")
	hist := history.New()

	rep, err := x.Batch("/dir", []string{"a.txt"}, []string{"A.txt"}, hist)
	require.NoError(t, err)
	assert.Empty(t, rep.Applied)
	require.Len(t, rep.Failed, 1)
	assert.ErrorIs(t, rep.Failed[0], fs.ErrExist)
	assert.False(t, hist.CanUndo())

	for _, name := range []string{"a.txt", "A.txt"} {
		data, err := afero.ReadFile(afs, "/dir/"+name)
		require.NoError(t, err)
		assert.Equal(t, name, string(data))
	}
}

func TestBatch_Scenario(t *testing.T) {
	t.Parallel()
	x, afs := setup(t, "a.txt", "b.txt")
	hist := history.New()

	rep, err := x.Batch("/dir", []string{"a.txt", "b.txt"}, []string{"x.txt", "y.txt"}, hist)
	require.NoError(t, err)
	assert.Empty(t, rep.Failed)
	assert.Len(t, rep.Applied, 2)
	assert.True(t, exists(t, afs, "x.txt"))
	assert.True(t, exists(t, afs, "y.txt"))
	assert.False(t, exists(t, afs, "a.txt"))

	assert.Equal(t, []history.Entry{
		{Dir: "/dir", Applied: "x.txt", Previous: "a.txt"},
		{Dir: "/dir", Applied: "y.txt", Previous: "b.txt"},
	}, hist.UndoEntries())

	_, err = hist.Undo(x)
	require.NoError(t, err)
	assert.True(t, exists(t, afs, "a.txt"))
	assert.True(t, exists(t, afs, "b.txt"))
	assert.False(t, hist.CanUndo())
}

func TestBatch_CountMismatch(t *testing.T) {
	t.Parallel()
	x, afs := setup(t, "a.txt", "b.txt")
	hist := history.New()

	_, err := x.Batch("/dir", []string{"a.txt", "b.txt"}, []string{"x.txt"}, hist)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, exists(t, afs, "a.txt"))
	assert.True(t, exists(t, afs, "b.txt"))
	assert.False(t, hist.CanUndo())
}

func TestBatch_ValidationKeepsRedo(t *testing.T) {
	t.Parallel()
	x, _ := setup(t, "a.txt")
	hist := history.New()

	_, err := x.Batch("/dir", []string{"a.txt"}, []string{"x.txt"}, hist)
	require.NoError(t, err)
	_, err = hist.Undo(x)
	require.NoError(t, err)

	_, err = x.Batch("/dir", []string{"a.txt"}, []string{""}, hist)
	require.Error(t, err)
	assert.True(t, hist.CanRedo())
}

func TestBatch_PartialFailure(t *testing.T) {
	t.Parallel()
	x, afs := setup(t, "a.txt")
	hist := history.New()

	rep, err := x.Batch("/dir", []string{"a.txt", "missing.txt"}, []string{"x.txt", "y.txt"}, hist)
	require.NoError(t, err)
	require.Len(t, rep.Failed, 1)
	assert.True(t, errors.Is(rep.Failed[0], ErrNotFound))
	assert.True(t, exists(t, afs, "x.txt"))
	assert.Equal(t, []history.Entry{{Dir: "/dir", Applied: "x.txt", Previous: "a.txt"}}, hist.UndoEntries())
}

func TestReportSummary(t *testing.T) {
	t.Parallel()
	x, _ := setup(t, "a.txt")
	hist := history.New()

	rep, err := x.Batch("/dir", []string{"a.txt", "gone"}, []string{"b.txt", "c"}, hist)
	require.NoError(t, err)
	assert.Equal(t, "Renamed: 1\nSkipped: 1\n - Item not found: gone", rep.Summary("Renamed"))
}
