package media

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// LoadedMsg reports the outcome of an asynchronous load.
type LoadedMsg struct {
	Ref   string
	Asset *Asset
	Err   error
}

// Entry is the load state of one reference.
type Entry struct {
	Asset   *Asset
	Err     error
	Pending bool
}

// Store caches loaded assets by reference. It is only touched from the
// bubbletea update loop, so it needs no locking.
type Store struct {
	loader  Loader
	entries map[string]*Entry
}

// NewStore creates a store backed by loader.
func NewStore(loader Loader) *Store {
	return &Store{
		loader:  loader,
		entries: make(map[string]*Entry),
	}
}

// Get returns the entry for ref, or nil if it was never requested.
func (s *Store) Get(ref string) *Entry {
	if s == nil {
		return nil
	}
	return s.entries[ref]
}

// Failed returns the refs whose last load failed, sorted.
func (s *Store) Failed() []string {
	if s == nil {
		return nil
	}
	var refs []string
	for ref, e := range s.entries {
		if e.Err != nil {
			refs = append(refs, ref)
		}
	}
	slices.Sort(refs)
	return refs
}

// Request returns a command loading ref, or nil if it is loaded, failed or
// already in flight.
func (s *Store) Request(ctx context.Context, ref string) tea.Cmd {
	if s == nil || ref == "" {
		return nil
	}
	if _, ok := s.entries[ref]; ok {
		return nil
	}
	s.entries[ref] = &Entry{Pending: true}

	loader := s.loader
	return func() tea.Msg {
		asset, err := loader.Load(ctx, ref)
		return LoadedMsg{Ref: ref, Asset: asset, Err: err}
	}
}

// Resolve records a load result.
func (s *Store) Resolve(msg LoadedMsg) {
	s.entries[msg.Ref] = &Entry{Asset: msg.Asset, Err: msg.Err}
}

// Forget drops the entry for ref so it can be requested again.
func (s *Store) Forget(ref string) {
	delete(s.entries, ref)
}
