package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot represents the latest fetch status available to the UI.
type Snapshot struct {
	Online              bool
	Loading             bool
	DocumentID          string
	QueryCount          int
	HasData             bool // a spreadsheet has loaded at least once
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsFailing returns true when the spreadsheet has failed to load several
// times in a row.
func (s Snapshot) IsFailing() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// NewStore returns a store that starts online for the given document.
func NewStore(documentID string) *Store {
	return &Store{snapshot: Snapshot{Online: true, DocumentID: documentID}}
}

// SetClock overrides the time source used for LastUpdated.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetOnline records the connectivity state.
func (s *Store) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Online = online
	if !online {
		s.snapshot.Loading = false
	}
}

// SetDocumentID switches the document being tracked. Counts from the
// previous document are kept until the new one loads.
func (s *Store) SetDocumentID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.DocumentID = id
}

// BeginFetch marks a request as in flight.
func (s *Store) BeginFetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Loading = true
}

// Update records a finished fetch. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(queryCount int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loading = false
	s.snapshot.LastUpdated = s.clock()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.QueryCount = queryCount
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
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

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
