package relay

import (
	"context"
	"sync"

	"github.com/Erunixz/thru.ai/pkg/order"
)

// MockPusher records pushed orders for testing.
type MockPusher struct {
	mu sync.Mutex

	// PushFunc overrides Push behavior when set.
	PushFunc func(ctx context.Context, o order.Order) error

	// Pushed records every pushed order.
	Pushed []order.Order
}

// NewMockPusher creates a pusher that accepts everything.
func NewMockPusher() *MockPusher {
	return &MockPusher{}
}

// PusherWithError creates a pusher that always returns err.
func PusherWithError(err error) *MockPusher {
	return &MockPusher{
		PushFunc: func(ctx context.Context, o order.Order) error {
			return err
		},
	}
}

// Push records the order and delegates to PushFunc.
func (m *MockPusher) Push(ctx context.Context, o order.Order) error {
	m.mu.Lock()
	m.Pushed = append(m.Pushed, o.Clone())
	m.mu.Unlock()

	if m.PushFunc != nil {
		return m.PushFunc(ctx, o)
	}
	return nil
}

// PushCount returns the number of Push calls made.
func (m *MockPusher) PushCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Pushed)
}

// LastPushed returns the most recent pushed order, or nil.
func (m *MockPusher) LastPushed() *order.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Pushed) == 0 {
		return nil
	}
	o := m.Pushed[len(m.Pushed)-1]
	return &o
}

var _ Pusher = (*MockPusher)(nil)
