// Package session ties the lister, the rename executor and the undo history
// to the user's current selection.
package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"BatchRenamer/internal/history"
	"BatchRenamer/internal/listing"
	"BatchRenamer/internal/rename"
)

var ErrNoDirectory = errors.New("no directory selected")

// State is what the user has selected. The zero value lists files by name
// with no directory selected.
type State struct {
	Directory string
	Mode      listing.ScanMode
	SortBy    listing.SortKey
	Filter    string
}

// ScanResult is the outcome of one listing. Items is empty when Err is set.
type ScanResult struct {
	Generation uint64
	State      State
	Items      []string
	Err        error
}

// Session holds the selection, the displayed items and the undo history.
//
// Setters only change state; listing happens in Refresh or Rescan. Renames,
// undo and redo must be called from a single goroutine. Scan results may
// be applied from any goroutine.
type Session struct {
	lister *listing.Lister
	exec   *rename.Executor
	hist   *history.History
	log    zerolog.Logger

	gen atomic.Uint64

	mu      sync.RWMutex
	state   State
	items   []string
	applied uint64
}

func New(afs afero.Fs, log zerolog.Logger, initial State) *Session {
	if !initial.Mode.Valid() {
		initial.Mode = listing.Files
	}
	if !initial.SortBy.Valid() {
		initial.SortBy = listing.ByName
	}
	if initial.Directory != "" {
		initial.Directory = filepath.Clean(initial.Directory)
	}
	return &Session{
		lister: listing.New(afs, log),
		exec:   rename.New(afs, log),
		hist:   history.New(),
		log:    log,
		state:  initial,
		items:  []string{},
	}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) HasDirectory() bool {
	return s.State().Directory != ""
}

func (s *Session) History() *history.History {
	return s.hist
}

// Items returns a copy of the displayed item names.
func (s *Session) Items() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Session) SetDirectory(dir string) error {
	if dir == "" {
		return ErrNoDirectory
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Directory = filepath.Clean(dir)
	return nil
}

func (s *Session) SetMode(m listing.ScanMode) error {
	if !m.Valid() {
		return fmt.Errorf("invalid scan mode %v", m)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Mode = m
	return nil
}

func (s *Session) SetSortBy(k listing.SortKey) error {
	if !k.Valid() {
		return fmt.Errorf("invalid sort key %v", k)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SortBy = k
	return nil
}

func (s *Session) SetFilter(filter string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filter = filter
}

// Rescan lists the directory on a new goroutine. The returned channel
// receives exactly one result and is then closed.
func (s *Session) Rescan(ctx context.Context) <-chan ScanResult {
	st := s.State()
	gen := s.gen.Add(1)
	out := make(chan ScanResult, 1)

	go func() {
		defer close(out)
		out <- s.scan(ctx, gen, st)
	}()

	return out
}

// Refresh lists the directory on the calling goroutine and applies the
// result.
func (s *Session) Refresh() error {
	res := s.scan(context.Background(), s.gen.Add(1), s.State())
	s.Apply(res)
	return res.Err
}

func (s *Session) scan(ctx context.Context, gen uint64, st State) ScanResult {
	res := ScanResult{Generation: gen, State: st}
	if st.Directory == "" {
		res.Items, res.Err = []string{}, ErrNoDirectory
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Items, res.Err = []string{}, err
		return res
	}
	res.Items, res.Err = s.lister.List(st.Directory, st.Filter, st.Mode, st.SortBy)
	return res
}

// Apply replaces the displayed items with res unless a newer scan has
// already been applied. It reports whether res was used.
func (s *Session) Apply(res ScanResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Generation < s.applied {
		s.log.Debug().Uint64("generation", res.Generation).Msg("stale scan dropped")
		return false
	}
	s.applied = res.Generation
	s.items = res.Items
	if s.items == nil {
		s.items = []string{}
	}
	return true
}

// BatchRename renames the displayed items to newNames, paired by position,
// and refreshes the listing. A *rename.ValidationError means nothing was
// touched.
func (s *Session) BatchRename(newNames []string) (history.Report, error) {
	st := s.State()
	if st.Directory == "" {
		return history.Report{}, ErrNoDirectory
	}

	rep, err := s.exec.Batch(st.Directory, s.Items(), newNames, s.hist)
	if err != nil {
		return rep, err
	}
	return rep, s.Refresh()
}

// Undo reverses every rename not yet undone.
func (s *Session) Undo() (history.Report, error) {
	rep, err := s.hist.Undo(s.exec)
	if err != nil {
		return rep, err
	}
	s.log.Info().Int("restored", len(rep.Applied)).Int("failed", len(rep.Failed)).Msg("undo finished")
	return rep, s.refreshIfSelected()
}

// Redo re-applies every undone rename.
func (s *Session) Redo() (history.Report, error) {
	rep, err := s.hist.Redo(s.exec)
	if err != nil {
		return rep, err
	}
	s.log.Info().Int("reapplied", len(rep.Applied)).Int("failed", len(rep.Failed)).Msg("redo finished")
	return rep, s.refreshIfSelected()
}

func (s *Session) refreshIfSelected() error {
	if !s.HasDirectory() {
		return nil
	}
	return s.Refresh()
}
