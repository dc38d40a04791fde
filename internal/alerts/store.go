package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/willibrandon/ruledeck/internal/logger"
)

// Source fetches rules and applies pause/resume. Implementations talk to the
// dashboard server or to the local database.
type Source interface {
	// ListRules returns the rules selected by filter, in display order.
	ListRules(ctx context.Context, filter StateFilter) ([]Rule, error)

	// SetPaused pauses or resumes a rule and returns the rule's resulting state.
	SetPaused(ctx context.Context, id int64, paused bool) (AlertState, error)
}

// LoadOptions selects what LoadRules fetches.
type LoadOptions struct {
	State StateFilter
}

// Store owns the current rule collection. It is safe for concurrent use;
// loads and toggles run off the UI loop and subscribers are told when the
// collection changes.
type Store struct {
	source Source
	now    func() time.Time

	mu          sync.RWMutex
	rules       []Rule
	stateFilter StateFilter
	loading     bool
	lastErr     error
	loadedAt    time.Time

	subMu sync.Mutex
	subs  []chan struct{}
}

// NewStore creates a store backed by source.
func NewStore(source Source) *Store {
	return &Store{
		source:      source,
		now:         time.Now,
		stateFilter: FilterAll,
	}
}

// LoadRules replaces the collection with the rules matching opts.State.
// Overlapping loads are not coordinated: whichever finishes last wins.
// A failure is kept in Err and the previous collection is left in place.
func (s *Store) LoadRules(ctx context.Context, opts LoadOptions) error {
	filter := opts.State
	if filter == "" {
		filter = FilterAll
	}
	if !filter.IsValid() {
		err := fmt.Errorf("%w: filter %q", ErrInvalidState, filter)
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.stateFilter = filter
	s.loading = true
	s.mu.Unlock()
	s.notify()

	logger.Debug("Store: loading rules", "state", filter)
	rules, err := s.source.ListRules(ctx, filter)
	if err != nil {
		err = fmt.Errorf("load rules: %w", err)
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.fail(err)
		return err
	}

	for i := range rules {
		rules[i].store = s
	}

	s.mu.Lock()
	s.rules = rules
	s.loading = false
	s.lastErr = nil
	s.loadedAt = s.now()
	s.mu.Unlock()

	logger.Debug("Store: rules loaded", "state", filter, "count", len(rules))
	s.notify()
	return nil
}

// setPaused applies a pause or resume through the source and updates the rule in place.
func (s *Store) setPaused(ctx context.Context, id int64, paused bool) error {
	logger.Debug("Store: toggling rule", "id", id, "paused", paused)
	state, err := s.source.SetPaused(ctx, id, paused)
	if err != nil {
		err = fmt.Errorf("set paused on rule %d: %w", id, err)
		s.fail(err)
		return err
	}

	s.mu.Lock()
	for i := range s.rules {
		if s.rules[i].ID == id {
			s.rules[i].State = state
			s.rules[i].Info = ""
			s.rules[i].NewStateDate = s.now()
			break
		}
	}
	s.mu.Unlock()

	logger.Info("Store: rule state changed", "id", id, "state", state)
	s.notify()
	return nil
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	logger.Error("Store: operation failed", "error", err)
	s.notify()
}

// Rules returns a copy of the current collection.
func (s *Store) Rules() []Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Rule returns the rule with the given id from the current collection.
func (s *Store) Rule(id int64) (Rule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// StateFilter returns the filter of the most recent load.
func (s *Store) StateFilter() StateFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateFilter
}

// Loading reports whether a load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error of the last failed operation, cleared by a successful load.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// LoadedAt returns when the collection was last replaced.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Subscribe returns a channel that receives a value whenever the store changes.
// Notifications coalesce: a slow reader sees at most one pending signal.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

// Unsubscribe stops notifications on ch.
func (s *Store) Unsubscribe(ch <-chan struct{}) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for i, sub := range s.subs {
		if sub == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
