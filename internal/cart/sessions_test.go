package cart

import (
	"context"
	"errors"
	"testing"
)

type memoryPersistence struct {
	snapshots map[string][]LineItem
	saveErr   error
	loadErr   error
	deletes   []string
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{snapshots: make(map[string][]LineItem)}
}

func (m *memoryPersistence) Load(_ context.Context, sessionID string) ([]LineItem, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	items, ok := m.snapshots[sessionID]
	if !ok {
		return nil, ErrCacheMiss
	}
	return items, nil
}

func (m *memoryPersistence) Save(_ context.Context, sessionID string, items []LineItem) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshots[sessionID] = items
	return nil
}

func (m *memoryPersistence) Delete(_ context.Context, sessionID string) error {
	m.deletes = append(m.deletes, sessionID)
	delete(m.snapshots, sessionID)
	return nil
}

func TestSessionsBeginCreatesDistinctStores(t *testing.T) {
	sessions := NewSessions(nil, nil)
	id1, store1 := sessions.Begin(context.Background())
	id2, store2 := sessions.Begin(context.Background())

	if id1 == id2 {
		t.Fatalf("expected distinct session ids, got %s twice", id1)
	}
	store1.AddItem(product("1", 100), 1)
	if !store2.Empty() {
		t.Fatalf("stores must be independent")
	}
}

func TestSessionsGetUnknownWithoutPersistence(t *testing.T) {
	sessions := NewSessions(nil, nil)
	if _, ok := sessions.Get(context.Background(), "missing"); ok {
		t.Fatalf("expected miss for unknown session")
	}
}

func TestSessionsMutationsPersistSnapshot(t *testing.T) {
	persist := newMemoryPersistence()
	sessions := NewSessions(persist, nil)

	id, store := sessions.Begin(context.Background())
	store.AddItem(product("1", 14900), 2)

	snapshot := persist.snapshots[id]
	if len(snapshot) != 1 || snapshot[0].Quantity != 2 {
		t.Fatalf("expected persisted snapshot, got %+v", snapshot)
	}
}

func TestSessionsGetRestoresPersistedSnapshot(t *testing.T) {
	persist := newMemoryPersistence()
	persist.snapshots["sess"] = []LineItem{{ProductID: "1", Title: "Restored", UnitPriceCents: 9900, Quantity: 3}}
	sessions := NewSessions(persist, nil)

	store, ok := sessions.Get(context.Background(), "sess")
	if !ok {
		t.Fatalf("expected restored session")
	}
	if got := store.TotalItems(); got != 3 {
		t.Fatalf("expected total items 3, got %d", got)
	}
}

func TestSessionsEndDeletesSnapshotAndStopsPersisting(t *testing.T) {
	persist := newMemoryPersistence()
	sessions := NewSessions(persist, nil)

	id, store := sessions.Begin(context.Background())
	store.AddItem(product("1", 100), 1)
	sessions.End(context.Background(), id)

	if len(persist.deletes) != 1 || persist.deletes[0] != id {
		t.Fatalf("expected delete for %s, got %v", id, persist.deletes)
	}
	if _, ok := sessions.Get(context.Background(), id); ok {
		t.Fatalf("session still resolvable after End")
	}

	// Mutating a torn-down store must not write new snapshots.
	store.AddItem(product("2", 100), 1)
	if len(persist.snapshots) != 0 {
		t.Fatalf("snapshot written after End: %+v", persist.snapshots)
	}
}

func TestSessionsLoadErrorTreatedAsMiss(t *testing.T) {
	persist := newMemoryPersistence()
	persist.loadErr = errors.New("redis down")
	sessions := NewSessions(persist, nil)

	if _, ok := sessions.Get(context.Background(), "sess"); ok {
		t.Fatalf("expected miss when load fails")
	}
}
