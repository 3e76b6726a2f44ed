package cart

import (
	"sync"

	"digitalshop/internal/domain"
)

// LineItem is one product-and-quantity pair in a cart. Display fields are
// copied from the product at the moment it is added; the unit price is fixed
// at that moment and does not track later catalog changes.
type LineItem struct {
	ProductID      string `json:"productId"`
	Title          string `json:"title"`
	Category       string `json:"category,omitempty"`
	Image          string `json:"image,omitempty"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

// Store holds the line items a visitor intends to purchase during one
// browsing session. It keeps exactly one line per product id, and its
// aggregates are always recomputed from the items so they cannot drift.
// The store performs no I/O; persistence, if any, happens through
// subscribers.
type Store struct {
	mu    sync.Mutex
	items []LineItem

	subMu   sync.Mutex
	subs    map[int]func([]LineItem)
	nextSub int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func([]LineItem))}
}

// AddItem appends a line for the product or, when a line with the same
// product id already exists, increments its quantity. A quantity below 1 is
// treated as 1.
func (s *Store) AddItem(p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, LineItem{
			ProductID:      p.ID,
			Title:          p.Title,
			Category:       p.Category,
			Image:          p.Image,
			UnitPriceCents: p.PriceCents,
			Quantity:       quantity,
		})
	}
	snapshot := s.copyItemsLocked()
	s.mu.Unlock()
	s.notify(snapshot)
}

// RemoveItem drops the line with the given product id. Absent ids are a
// no-op, not an error.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	removed := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	var snapshot []LineItem
	if removed {
		snapshot = s.copyItemsLocked()
	}
	s.mu.Unlock()
	if removed {
		s.notify(snapshot)
	}
}

// SetQuantity replaces the stored quantity for an existing line. A quantity
// of zero or less removes the line. Unknown product ids are a no-op.
func (s *Store) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	var snapshot []LineItem
	if changed {
		snapshot = s.copyItemsLocked()
	}
	s.mu.Unlock()
	if changed {
		s.notify(snapshot)
	}
}

// Clear resets the store to empty. It is called exactly once per checkout
// cycle, after the order write has been confirmed.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.notify(nil)
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItemsLocked()
}

// Replace swaps the whole item list. Used when a persisted snapshot is
// restored; last write wins at the granularity of the full list.
func (s *Store) Replace(items []LineItem) {
	s.mu.Lock()
	s.items = make([]LineItem, len(items))
	copy(s.items, items)
	s.mu.Unlock()
}

// TotalItems sums the quantities of all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPriceCents sums unit price times quantity over all lines.
func (s *Store) TotalPriceCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, item := range s.items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}

func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Subscribe registers a callback invoked with the item list after every
// mutation. The returned cancel function unregisters it and blocks until any
// in-flight callback run has finished, so no callback runs after cancel
// returns. Callbacks must not call Subscribe or cancel from within
// themselves.
func (s *Store) Subscribe(fn func(items []LineItem)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) copyItemsLocked() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) notify(items []LineItem) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, fn := range s.subs {
		fn(items)
	}
}
