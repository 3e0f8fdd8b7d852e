//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Store guards the shared application state for one writer and
// many readers.
//

package state

import (
	"fmt"
	"sync"
)

// Reader is the read-only handle given to presentation surfaces.
type Reader interface {
	Snapshot() State
}

// Store coordinates concurrent access to the application state.
// Update closures must not perform network calls: the write lock is held
// for their whole duration.
type Store struct {
	mu    sync.RWMutex
	state State
}

var _ Reader = (*Store)(nil)

// NewStore returns a store for a running application with nothing loaded.
func NewStore() *Store {
	return &Store{state: State{IsRunning: true}}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state.clone()
	if s.state.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.state.LastError)
	}
	return snap
}

// View calls fn with the current state under the read lock. fn must not
// retain or modify anything reachable from the state.
func (s *Store) View(fn func(State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Update applies fn to the state under the write lock.
func (s *Store) Update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// IsRunning reports whether Quit has not been requested yet.
func (s *Store) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsRunning
}
