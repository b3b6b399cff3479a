package brain

import (
	"errors"
	"testing"

	"github.com/Erunixz/thru.ai/pkg/order"
)

func TestExtractReply(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		reply, ok := ExtractReply("<response>One cheeseburger, got it!</response>")
		if !ok {
			t.Fatal("ok = false")
		}
		if reply != "One cheeseburger, got it!" {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("multiline with surrounding text", func(t *testing.T) {
		raw := "Sure thing.\n<response>\nThat's a Cheeseburger and Fries.\nAnything else?\n</response>\n<order>{}</order>"
		reply, ok := ExtractReply(raw)
		if !ok {
			t.Fatal("ok = false")
		}
		if reply != "That's a Cheeseburger and Fries.\nAnything else?" {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, ok := ExtractReply("no tags here"); ok {
			t.Error("ok = true for untagged text")
		}
	})

	t.Run("blank", func(t *testing.T) {
		if _, ok := ExtractReply("<response>   \n </response>"); ok {
			t.Error("ok = true for blank segment")
		}
	})
}

func TestExtractOrder(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		raw := `<order>
{"items": [{"name": "Cheeseburger", "quantity": 2, "price": 6.49, "modifiers": ["no onions"], "size": null}], "total": 12.98, "status": "in_progress"}
</order>`
		o, err := ExtractOrder(raw)
		if err != nil {
			t.Fatalf("ExtractOrder: %v", err)
		}
		if len(o.Items) != 1 || o.Items[0].Quantity != 2 {
			t.Errorf("items = %+v", o.Items)
		}
		if o.Total != 12.98 {
			t.Errorf("total = %v", o.Total)
		}
		if o.Status != order.StatusInProgress {
			t.Errorf("status = %q", o.Status)
		}
	})

	t.Run("absent segment", func(t *testing.T) {
		_, err := ExtractOrder("<response>hello</response>")
		if !errors.Is(err, ErrNoOrderSegment) {
			t.Errorf("err = %v, want ErrNoOrderSegment", err)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := ExtractOrder("<order>{not json</order>")
		if err == nil || errors.Is(err, ErrNoOrderSegment) {
			t.Errorf("err = %v, want decode error", err)
		}
	})

	t.Run("negative total rejected", func(t *testing.T) {
		_, err := ExtractOrder(`<order>{"items": [], "total": -5, "status": "in_progress"}</order>`)
		if !errors.Is(err, order.ErrBadTotal) {
			t.Errorf("err = %v, want ErrBadTotal", err)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := ExtractOrder(`<order>{"items": [], "total": 0, "status": "pending"}</order>`)
		if !errors.Is(err, order.ErrBadStatus) {
			t.Errorf("err = %v, want ErrBadStatus", err)
		}
	})

	t.Run("normalizes nil items", func(t *testing.T) {
		o, err := ExtractOrder(`<order>{"total": 0, "status": "in_progress"}</order>`)
		if err != nil {
			t.Fatalf("ExtractOrder: %v", err)
		}
		if o.Items == nil {
			t.Error("items = nil, want empty slice")
		}
	})
}
