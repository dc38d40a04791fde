// Package query holds the shared key/value state that views read their
// filters from, optionally persisted between runs.
package query

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/willibrandon/ruledeck/internal/logger"
)

// Persister saves and restores query values.
type Persister interface {
	LoadAll(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, values map[string]string) error
}

// State is a concurrency-safe key/value map. Updates are written through
// to the Persister when one is configured.
type State struct {
	mu        sync.RWMutex
	values    map[string]string
	persister Persister
}

// New creates an empty State with no persistence.
func New() *State {
	return &State{values: make(map[string]string)}
}

// NewPersisted creates a State seeded from p. A failed load is logged and
// the state starts empty.
func NewPersisted(ctx context.Context, p Persister) *State {
	s := &State{values: make(map[string]string), persister: p}
	if p == nil {
		return s
	}

	loadCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	values, err := p.LoadAll(loadCtx)
	if err != nil {
		logger.Warn("query: failed to restore view state", "error", err)
		return s
	}
	maps.Copy(s.values, values)
	return s
}

// Get returns the value for key and whether it is set.
func (s *State) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Update merges partial into the state. An empty value removes the key.
func (s *State) Update(partial map[string]string) {
	s.mu.Lock()
	for k, v := range partial {
		if v == "" {
			delete(s.values, k)
			continue
		}
		s.values[k] = v
	}
	s.mu.Unlock()

	if s.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.persister.Save(ctx, partial); err != nil {
		logger.Warn("query: failed to persist view state", "error", err)
	}
}

// Snapshot returns a copy of all values.
func (s *State) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}
