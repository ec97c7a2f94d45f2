// Package export writes the displayed item names as text.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const DefaultExt = ".txt"

// Text joins names with newlines, the format used for the clipboard and
// for saved notes.
func Text(names []string) string {
	return strings.Join(names, "\n")
}

// WithDefaultExt appends DefaultExt when path has no extension.
func WithDefaultExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + DefaultExt
	}
	return path
}

// Write writes names to w. A ".csv" name produces a one-column CSV with a
// header, anything else plain UTF-8 text.
func Write(w io.Writer, name string, names []string) error {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"name"})
		for _, n := range names {
			_ = cw.Write([]string{n})
		}
		cw.Flush()
		return cw.Error()
	}
	_, err := io.WriteString(w, Text(names))
	return err
}

// Save writes names to path, adding DefaultExt when path has none, and
// returns the path actually written.
func Save(afs afero.Fs, path string, names []string) (string, error) {
	path = WithDefaultExt(path)

	f, err := afs.Create(path)
	if err != nil {
		return path, fmt.Errorf("save list: %w", err)
	}
	if err := Write(f, path, names); err != nil {
		_ = f.Close()
		return path, fmt.Errorf("save list: %w", err)
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("save list: %w", err)
	}
	return path, nil
}
