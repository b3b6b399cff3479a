// Package order defines the structured order built up over a voice ordering
// session. The language model re-emits the complete order every turn; the order
// here is always a full snapshot, never a diff.
package order

import (
	"errors"
	"fmt"
	"math"
)

// Status is the lifecycle state of an order.
type Status string

const (
	// StatusInProgress means the customer is still ordering.
	StatusInProgress Status = "in_progress"

	// StatusComplete means the customer confirmed the order is done.
	StatusComplete Status = "complete"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	return s == StatusInProgress || s == StatusComplete
}

// Terminal reports whether the session should stop after observing s.
func (s Status) Terminal() bool {
	return s == StatusComplete
}

// Item is a single line item in an order.
type Item struct {
	// Name of the menu item as spoken by the model.
	Name string `json:"name"`

	// Quantity ordered. Always positive in a valid order.
	Quantity int `json:"quantity"`

	// Price is the unit price in currency units.
	Price float64 `json:"price"`

	// Modifiers are customer requests like "no pickles". May be empty.
	Modifiers []string `json:"modifiers"`

	// Size is the chosen size, or nil for items without sizes.
	Size *string `json:"size"`
}

// Order is the full order state for one session.
// Items keep insertion order (the order they were added or confirmed).
type Order struct {
	Items  []Item  `json:"items"`
	Total  float64 `json:"total"`
	Status Status  `json:"status"`
}

// New returns an empty in-progress order, the state a session starts with.
func New() Order {
	return Order{Items: []Item{}, Total: 0, Status: StatusInProgress}
}

// Validation errors.
var (
	ErrBadStatus   = errors.New("order: unknown status")
	ErrBadTotal    = errors.New("order: total must be a non-negative finite number")
	ErrBadPrice    = errors.New("order: item price must be a non-negative finite number")
	ErrBadQuantity = errors.New("order: item quantity must be positive")
	ErrNoName      = errors.New("order: item name is required")
)

// Validate checks the schema rules for a parsed order: a valid status, a
// non-negative finite total, and for every item a name, positive quantity and
// non-negative finite price. Any violation rejects the whole order.
func (o *Order) Validate() error {
	if !o.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrBadStatus, o.Status)
	}
	if !validAmount(o.Total) {
		return fmt.Errorf("%w: %v", ErrBadTotal, o.Total)
	}
	for i, item := range o.Items {
		if item.Name == "" {
			return fmt.Errorf("item %d: %w", i, ErrNoName)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d (%s): %w: %d", i, item.Name, ErrBadQuantity, item.Quantity)
		}
		if !validAmount(item.Price) {
			return fmt.Errorf("item %d (%s): %w: %v", i, item.Name, ErrBadPrice, item.Price)
		}
	}
	return nil
}

// validAmount reports whether v is a usable money amount.
func validAmount(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Normalize fills in zero values the model tends to omit: a nil modifier list
// becomes an empty one so the wire format stays stable.
func (o *Order) Normalize() {
	if o.Items == nil {
		o.Items = []Item{}
	}
	for i := range o.Items {
		if o.Items[i].Modifiers == nil {
			o.Items[i].Modifiers = []string{}
		}
	}
}

// Clone returns a deep copy. Use this when handing the order to another
// component so the committed state cannot be mutated from outside.
func (o Order) Clone() Order {
	out := o
	out.Items = make([]Item, len(o.Items))
	for i, item := range o.Items {
		out.Items[i] = item
		if item.Modifiers != nil {
			out.Items[i].Modifiers = make([]string, len(item.Modifiers))
			copy(out.Items[i].Modifiers, item.Modifiers)
		}
		if item.Size != nil {
			size := *item.Size
			out.Items[i].Size = &size
		}
	}
	return out
}

// ItemCount returns the total number of units across all line items.
func (o Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
