package snapshot

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/catalogsearch/backend/internal/domain"
)

// Store holds the current snapshot. Readers get either the old or the new
// snapshot in full; swaps are atomic.
type Store struct {
	path    string
	current atomic.Pointer[domain.Snapshot]
	// reloadMu serializes reloads; readers never take it
	reloadMu sync.Mutex
	logger   zerolog.Logger
}

// NewStore creates a store for the snapshot file at path, starting empty
func NewStore(path string, logger zerolog.Logger) *Store {
	s := &Store{
		path:   path,
		logger: logger.With().Str("component", "snapshot").Str("path", path).Logger(),
	}
	s.current.Store(&domain.Snapshot{Products: []domain.Product{}, Source: path, LoadedAt: time.Now()})
	return s
}

// Current returns the snapshot in effect. It is never nil.
func (s *Store) Current() *domain.Snapshot {
	return s.current.Load()
}

// Path returns the snapshot file location
func (s *Store) Path() string {
	return s.path
}

// Replace swaps in snap wholesale
func (s *Store) Replace(snap *domain.Snapshot) {
	if snap == nil {
		return
	}
	s.current.Store(snap)
}

// Reload re-reads the snapshot file. On error the previous snapshot stays in effect.
func (s *Store) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	snap, err := Load(s.path)
	if err != nil {
		s.logger.Error().Err(err).Msg("snapshot reload failed, keeping previous")
		return err
	}

	s.Replace(snap)
	s.logger.Info().
		Int("products", snap.Len()).
		Int("rejected", snap.Rejected).
		Msg("snapshot loaded")
	return nil
}
