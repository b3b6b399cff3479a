package order

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func sizePtr(s string) *string { return &s }

func sampleOrder() Order {
	return Order{
		Items: []Item{
			{Name: "Cheeseburger", Quantity: 1, Price: 6.49, Modifiers: []string{"no pickles"}, Size: nil},
			{Name: "Fries", Quantity: 2, Price: 3.49, Modifiers: []string{}, Size: sizePtr("medium")},
		},
		Total:  13.47,
		Status: StatusInProgress,
	}
}

func TestStatus(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		if !StatusInProgress.Valid() || !StatusComplete.Valid() {
			t.Error("expected known statuses to be valid")
		}
		if Status("done").Valid() {
			t.Error("unknown status should not be valid")
		}
	})

	t.Run("terminal", func(t *testing.T) {
		if StatusInProgress.Terminal() {
			t.Error("in_progress must not be terminal")
		}
		if !StatusComplete.Terminal() {
			t.Error("complete must be terminal")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts well-formed order", func(t *testing.T) {
		o := sampleOrder()
		if err := o.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("accepts empty order", func(t *testing.T) {
		o := New()
		if err := o.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects negative total", func(t *testing.T) {
		o := sampleOrder()
		o.Total = -5
		if err := o.Validate(); !errors.Is(err, ErrBadTotal) {
			t.Errorf("expected ErrBadTotal, got %v", err)
		}
	})

	t.Run("rejects NaN total", func(t *testing.T) {
		o := sampleOrder()
		o.Total = math.NaN()
		if err := o.Validate(); !errors.Is(err, ErrBadTotal) {
			t.Errorf("expected ErrBadTotal, got %v", err)
		}
	})

	t.Run("rejects negative item price", func(t *testing.T) {
		o := sampleOrder()
		o.Items[0].Price = -1
		if err := o.Validate(); !errors.Is(err, ErrBadPrice) {
			t.Errorf("expected ErrBadPrice, got %v", err)
		}
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		o := sampleOrder()
		o.Items[1].Quantity = 0
		if err := o.Validate(); !errors.Is(err, ErrBadQuantity) {
			t.Errorf("expected ErrBadQuantity, got %v", err)
		}
	})

	t.Run("rejects missing name", func(t *testing.T) {
		o := sampleOrder()
		o.Items[0].Name = ""
		if err := o.Validate(); !errors.Is(err, ErrNoName) {
			t.Errorf("expected ErrNoName, got %v", err)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		o := sampleOrder()
		o.Status = "cancelled"
		if err := o.Validate(); !errors.Is(err, ErrBadStatus) {
			t.Errorf("expected ErrBadStatus, got %v", err)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	// parse -> serialize -> parse must be stable, including null size.
	raw := `{
  "items": [
    {"name": "Cheeseburger", "quantity": 1, "price": 6.49, "modifiers": [], "size": null},
    {"name": "Coke", "quantity": 1, "price": 2.29, "modifiers": ["no ice"], "size": "medium"}
  ],
  "total": 8.78,
  "status": "in_progress"
}`

	var first Order
	if err := json.Unmarshal([]byte(raw), &first); err != nil {
		t.Fatalf("first unmarshal: %v", err)
	}

	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var second Order
	if err := json.Unmarshal(encoded, &second); err != nil {
		t.Fatalf("second unmarshal: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip mismatch:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestClone(t *testing.T) {
	t.Run("deep copies items", func(t *testing.T) {
		o := sampleOrder()
		c := o.Clone()

		c.Items[0].Name = "Hamburger"
		c.Items[0].Modifiers[0] = "extra pickles"
		*c.Items[1].Size = "large"

		if o.Items[0].Name != "Cheeseburger" {
			t.Error("clone shares item slice with original")
		}
		if o.Items[0].Modifiers[0] != "no pickles" {
			t.Error("clone shares modifier slice with original")
		}
		if *o.Items[1].Size != "medium" {
			t.Error("clone shares size pointer with original")
		}
	})

	t.Run("clone equals original", func(t *testing.T) {
		o := sampleOrder()
		if !reflect.DeepEqual(o, o.Clone()) {
			t.Error("clone should equal original")
		}
	})

	t.Run("keeps normalized modifiers non-nil", func(t *testing.T) {
		o := Order{
			Items:  []Item{{Name: "Fries", Quantity: 1, Price: 3.49}},
			Total:  3.49,
			Status: StatusInProgress,
		}
		o.Normalize()

		c := o.Clone()
		if c.Items[0].Modifiers == nil {
			t.Fatal("clone dropped the empty modifier slice")
		}

		encoded, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(encoded), `"modifiers":[]`) {
			t.Errorf("modifiers should encode as []: %s", encoded)
		}
	})
}

func TestNormalize(t *testing.T) {
	o := Order{Items: []Item{{Name: "Fries", Quantity: 1, Price: 3.49}}, Status: StatusInProgress}
	o.Normalize()

	if o.Items[0].Modifiers == nil {
		t.Error("expected nil modifiers to become empty slice")
	}
}

func TestItemCount(t *testing.T) {
	o := sampleOrder()
	if got := o.ItemCount(); got != 3 {
		t.Errorf("expected 3 units, got %d", got)
	}
}
