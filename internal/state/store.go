package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot represents the latest report markup available to the UI.
type Snapshot struct {
	Source              string // URL the markup was fetched from
	Markup              string // results container partial
	Version             uint64 // bumped whenever Markup changes
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// HasMarkup reports whether any markup has been stored.
func (s Snapshot) HasMarkup() bool {
	return s.Version > 0
}

// IsOffline returns true when the server has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetSource binds the store to the URL currently shown in the results
// container. Results fetched for any other URL are dropped by Update.
func (s *Store) SetSource(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Source = source
}

// Source returns the URL the poller should fetch.
func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Source
}

// Update records a fetch of source. When err is non-nil the previous markup is
// kept but the error is recorded for visibility. It reports whether the
// result was accepted, which is false once the source has moved on.
func (s *Store) Update(source, markup string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if source != s.snapshot.Source {
		return false
	}

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return true
	}

	if markup != s.snapshot.Markup || s.snapshot.Version == 0 {
		s.snapshot.Markup = markup
		s.snapshot.Version++
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
