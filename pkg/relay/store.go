// Package relay moves committed orders from the lane to the kitchen
// display. The lane side is a best-effort HTTP push; the display side is
// a small server that stores received orders and fans them out to
// websocket subscribers.
package relay

import (
	"sync"
	"time"

	"github.com/Erunixz/thru.ai/pkg/order"
)

// Record is one order as received by the display server.
type Record struct {
	// ID is the display-side order number, assigned on receipt.
	ID int `json:"order_id"`

	// Order is the order exactly as the lane pushed it.
	Order order.Order `json:"order"`

	// ReceivedAt is when the display server accepted the order.
	ReceivedAt time.Time `json:"timestamp"`
}

// Store holds received orders in arrival order. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records []Record
	nextID  int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add assigns the next order number and appends the order.
func (s *Store) Add(o order.Order) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{
		ID:         s.nextID,
		Order:      o.Clone(),
		ReceivedAt: time.Now().UTC(),
	}
	s.nextID++
	s.records = append(s.records, rec)
	return rec
}

// All returns every received order in arrival order.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Latest returns the most recently received order.
func (s *Store) Latest() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Len returns the number of received orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
