// Package rename performs batch renames inside one directory and records
// the completed ones in the undo history.
package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"BatchRenamer/internal/history"
)

// ErrNotFound is wrapped by an ItemError when the entry to rename is gone.
var ErrNotFound = errors.New("item not found")

// ValidationError rejects a batch before anything is renamed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ItemError is a failure of a single rename inside a batch, undo or redo.
type ItemError struct {
	Name string
	To   string
	Err  error
}

func (e *ItemError) Error() string {
	if errors.Is(e.Err, ErrNotFound) {
		return fmt.Sprintf("Item not found: %s", e.Name)
	}
	return fmt.Sprintf("rename %s to %s: %v", e.Name, e.To, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// Executor renames entries on an afero filesystem.
type Executor struct {
	Fs  afero.Fs
	Log zerolog.Logger
}

func New(afs afero.Fs, log zerolog.Logger) *Executor {
	return &Executor{Fs: afs, Log: log}
}

// Validate checks that every old name has a non-blank new name and returns
// the trimmed new names.
func Validate(oldNames, newNames []string) ([]string, error) {
	if len(oldNames) != len(newNames) {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("The number of new names (%d) does not match the number of items (%d).", len(newNames), len(oldNames)),
		}
	}
	trimmed := make([]string, len(newNames))
	for i, n := range newNames {
		trimmed[i] = strings.TrimSpace(n)
		if trimmed[i] == "" {
			return nil, &ValidationError{Reason: "New names cannot be empty."}
		}
	}
	return trimmed, nil
}

// Rename moves dir/from to dir/to. A missing source yields ErrNotFound. An
// existing, different target is refused with fs.ErrExist instead of being
// overwritten.
func (x *Executor) Rename(dir, from, to string) error {
	src := filepath.Join(dir, from)
	dst := filepath.Join(dir, to)

	if _, err := x.Fs.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ItemError{Name: from, To: to, Err: ErrNotFound}
		}
		return &ItemError{Name: from, To: to, Err: err}
	}

	if from != to {
		if _, err := x.Fs.Stat(dst); err == nil {
			taken, err := x.occupied(dir, from, to)
			if err != nil {
				return &ItemError{Name: from, To: to, Err: err}
			}
			if taken {
				return &ItemError{Name: from, To: to, Err: fs.ErrExist}
			}
		}
	}

	if err := x.Fs.Rename(src, dst); err != nil {
		return &ItemError{Name: from, To: to, Err: err}
	}

	x.Log.Debug().Str("dir", dir).Str("from", from).Str("to", to).Msg("renamed")
	return nil
}

// occupied reports whether dst names an entry other than src. On a
// case-insensitive filesystem a case-only change stats the source itself,
// so the directory is listed and the exact name looked up.
func (x *Executor) occupied(dir, src, dst string) (bool, error) {
	if !strings.EqualFold(src, dst) {
		return true, nil
	}
	infos, err := afero.ReadDir(x.Fs, dir)
	if err != nil {
		return false, err
	}
	for _, info := range infos {
		if info.Name() == dst {
			return true, nil
		}
	}
	return false, nil
}

// Batch renames oldNames[i] to newNames[i] in order. It validates first,
// then clears the redo history. A failing pair is reported and skipped;
// earlier renames stay in place.
func (x *Executor) Batch(dir string, oldNames, newNames []string, hist *history.History) (history.Report, error) {
	names, err := Validate(oldNames, newNames)
	if err != nil {
		return history.Report{}, err
	}

	hist.ClearRedo()

	var rep history.Report
	for i, oldName := range oldNames {
		newName := names[i]
		if err := x.Rename(dir, oldName, newName); err != nil {
			x.Log.Warn().Err(err).Str("dir", dir).Str("name", oldName).Msg("rename skipped")
			rep.Failed = append(rep.Failed, err)
			continue
		}
		e := history.Entry{Dir: dir, Applied: newName, Previous: oldName}
		hist.Push(e)
		rep.Applied = append(rep.Applied, e)
	}

	x.Log.Info().
		Str("dir", dir).
		Int("renamed", len(rep.Applied)).
		Int("failed", len(rep.Failed)).
		Msg("batch rename finished")

	return rep, nil
}
