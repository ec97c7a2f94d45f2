// Package listing enumerates the files or folders of a single directory.
package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ScanMode selects which kind of entry a listing returns.
type ScanMode int

const (
	Files ScanMode = iota
	Folders
)

func (m ScanMode) String() string {
	switch m {
	case Files:
		return "Files"
	case Folders:
		return "Folders"
	default:
		return fmt.Sprintf("ScanMode(%d)", int(m))
	}
}

// Valid reports whether m is one of the defined scan modes.
func (m ScanMode) Valid() bool {
	return m == Files || m == Folders
}

// ParseScanMode accepts "files"/"folders" in any case. "dirs" and
// "directories" are accepted as folders.
func ParseScanMode(s string) (ScanMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "files", "file":
		return Files, nil
	case "folders", "folder", "dirs", "directories":
		return Folders, nil
	}
	return Files, fmt.Errorf("unknown scan mode %q", s)
}

// SortKey selects the listing order.
type SortKey int

const (
	ByName SortKey = iota
	ByDateModified
)

func (k SortKey) String() string {
	switch k {
	case ByName:
		return "Name"
	case ByDateModified:
		return "Date Modified"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// Valid reports whether k is one of the defined sort keys.
func (k SortKey) Valid() bool {
	return k == ByName || k == ByDateModified
}

// ParseSortKey accepts the display labels ("Name", "Date Modified") and the
// short forms "name", "date", "mtime".
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return ByName, nil
	case "date modified", "date", "mtime", "modified", "date_modified":
		return ByDateModified, nil
	}
	return ByName, fmt.Errorf("unknown sort key %q", s)
}

// Lister lists directory entries on an afero filesystem.
type Lister struct {
	Fs  afero.Fs
	Log zerolog.Logger
}

func New(afs afero.Fs, log zerolog.Logger) *Lister {
	return &Lister{Fs: afs, Log: log}
}

type entry struct {
	name    string
	modTime time.Time
}

// List returns the names of the entries in dir that match mode and
// contain filter (case-insensitive), ordered by sortBy. On error the
// returned slice is empty, never nil.
func (l *Lister) List(dir, filter string, mode ScanMode, sortBy SortKey) ([]string, error) {
	if !mode.Valid() {
		return []string{}, fmt.Errorf("list %s: invalid scan mode %v", dir, mode)
	}

	infos, err := afero.ReadDir(l.Fs, dir)
	if err != nil {
		return []string{}, fmt.Errorf("list %s: %w", dir, err)
	}

	needle := strings.ToLower(strings.TrimSpace(filter))
	entries := make([]entry, 0, len(infos))
	for _, info := range infos {
		info, ok := l.resolve(dir, info)
		if !ok || !mode.accepts(info) {
			continue
		}
		if !Match(info.Name(), needle) {
			continue
		}
		entries = append(entries, entry{name: info.Name(), modTime: info.ModTime()})
	}

	// afero.ReadDir returns entries sorted by name; restore a stable order
	// on the lower-cased key or on mtime.
	switch sortBy {
	case ByDateModified:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].modTime.Before(entries[j].modTime)
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].name) < strings.ToLower(entries[j].name)
		})
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}

	l.Log.Debug().
		Str("dir", dir).
		Str("mode", mode.String()).
		Str("sort", sortBy.String()).
		Str("filter", filter).
		Int("count", len(names)).
		Msg("directory listed")

	return names, nil
}

// accepts reports whether info is the kind of entry m lists. Files means
// regular files only; pipes, sockets and devices are never listed.
func (m ScanMode) accepts(info os.FileInfo) bool {
	if m == Folders {
		return info.IsDir()
	}
	return info.Mode().IsRegular()
}

// resolve follows symlinks so a link to a folder is listed as a folder.
// A broken link reports false and is left out.
func (l *Lister) resolve(dir string, info os.FileInfo) (os.FileInfo, bool) {
	if info.Mode()&os.ModeSymlink == 0 {
		return info, true
	}
	target, err := l.Fs.Stat(filepath.Join(dir, info.Name()))
	if err != nil {
		l.Log.Debug().Err(err).Str("name", info.Name()).Msg("skipping broken symlink")
		return nil, false
	}
	return renamed{FileInfo: target, name: info.Name()}, true
}

// renamed keeps the link name while reporting the target's metadata.
type renamed struct {
	os.FileInfo
	name string
}

func (r renamed) Name() string { return r.name }

// Match reports whether name contains needle, ignoring case. An empty
// needle matches everything.
func Match(name, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), needle)
}
