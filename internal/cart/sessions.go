package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"
)

// ErrCacheMiss is returned by Persistence when no snapshot exists for a
// session.
var ErrCacheMiss = errors.New("cache miss")

// Persistence stores whole-cart snapshots keyed by session id. The policy is
// deliberately weak: last write wins at the granularity of the full item
// list.
type Persistence interface {
	Load(ctx context.Context, sessionID string) ([]LineItem, error)
	Save(ctx context.Context, sessionID string, items []LineItem) error
	Delete(ctx context.Context, sessionID string) error
}

// Sessions owns one Store per browsing session. A store is created at
// session start, handed to whichever handlers need it, and torn down at
// session end. With a Persistence backend attached, every mutation saves the
// current snapshot so a session survives process restarts.
type Sessions struct {
	mu      sync.Mutex
	stores  map[string]*sessionEntry
	persist Persistence
	logger  *log.Logger
}

type sessionEntry struct {
	store       *Store
	unsubscribe func()
}

func NewSessions(persist Persistence, logger *log.Logger) *Sessions {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Sessions{
		stores:  make(map[string]*sessionEntry),
		persist: persist,
		logger:  logger,
	}
}

// Begin creates a new empty session and returns its id and store.
func (s *Sessions) Begin(ctx context.Context) (string, *Store) {
	id := uuid.NewString()
	store := s.attach(ctx, id, NewStore())
	return id, store
}

// Get returns the store for a session id. When the session is unknown in
// memory but a persisted snapshot exists, the snapshot is restored into a
// fresh store.
func (s *Sessions) Get(ctx context.Context, id string) (*Store, bool) {
	s.mu.Lock()
	entry, ok := s.stores[id]
	s.mu.Unlock()
	if ok {
		return entry.store, true
	}
	if s.persist == nil {
		return nil, false
	}
	items, err := s.persist.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Printf("cart sessions: load %s: %v", id, err)
		}
		return nil, false
	}
	store := NewStore()
	store.Replace(items)
	return s.attach(ctx, id, store), true
}

// End tears the session down: the store is dropped, its persistence
// subscription cancelled, and any persisted snapshot deleted.
func (s *Sessions) End(ctx context.Context, id string) {
	s.mu.Lock()
	entry, ok := s.stores[id]
	delete(s.stores, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	if entry.unsubscribe != nil {
		entry.unsubscribe()
	}
	if s.persist != nil {
		if err := s.persist.Delete(ctx, id); err != nil {
			s.logger.Printf("cart sessions: delete %s: %v", id, err)
		}
	}
}

func (s *Sessions) attach(_ context.Context, id string, store *Store) *Store {
	entry := &sessionEntry{store: store}
	if s.persist != nil {
		entry.unsubscribe = store.Subscribe(func(items []LineItem) {
			// Saves outlive the request that triggered the mutation.
			if err := s.persist.Save(context.Background(), id, items); err != nil {
				s.logger.Printf("cart sessions: save %s: %v", id, err)
			}
		})
	}
	s.mu.Lock()
	existing, ok := s.stores[id]
	if ok {
		// Another request restored the same session concurrently; keep
		// the first store and discard this one.
		s.mu.Unlock()
		if entry.unsubscribe != nil {
			entry.unsubscribe()
		}
		return existing.store
	}
	s.stores[id] = entry
	s.mu.Unlock()
	return store
}
