package brain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Erunixz/thru.ai/pkg/inference"
	"github.com/Erunixz/thru.ai/pkg/menu"
	"github.com/Erunixz/thru.ai/pkg/order"
)

const testCatalog = `{
	"burgers": {
		"Cheeseburger": {"price": 6.49, "sizes": [], "modifiers": ["no onions"]}
	},
	"sides": {
		"Fries": {"price": 3.49, "sizes": ["small", "medium", "large"], "modifiers": []}
	}
}`

func testMenu(t *testing.T) menu.Catalog {
	t.Helper()
	c, err := menu.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	return c
}

// scriptedProvider returns each reply in sequence.
func scriptedProvider(replies ...string) *inference.Mock {
	i := 0
	m := inference.NewMock()
	m.ChatFunc = func(ctx context.Context, req *inference.ChatRequest) (*inference.ChatResponse, error) {
		reply := replies[i%len(replies)]
		i++
		return &inference.ChatResponse{
			Message:      inference.NewAssistantMessage(reply),
			FinishReason: "stop",
		}, nil
	}
	return m
}

func TestEngineAdvance(t *testing.T) {
	t.Run("commits order on valid reply", func(t *testing.T) {
		raw := `<response>One Cheeseburger, that's $6.49. Anything else?</response>
<order>{"items": [{"name": "Cheeseburger", "quantity": 1, "price": 6.49, "modifiers": [], "size": null}], "total": 6.49, "status": "in_progress"}</order>`
		e := NewEngine(scriptedProvider(raw), testMenu(t), nil)

		reply, err := e.Advance(context.Background(), "I'll take a cheeseburger")
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if !strings.Contains(reply, "Cheeseburger") {
			t.Errorf("reply = %q", reply)
		}

		o := e.Order()
		if len(o.Items) != 1 || o.Items[0].Name != "Cheeseburger" {
			t.Errorf("order items = %+v", o.Items)
		}
		if o.Total != 6.49 {
			t.Errorf("total = %v", o.Total)
		}
		if e.History().Len() != 2 {
			t.Errorf("history len = %d, want 2", e.History().Len())
		}
		if e.Done() {
			t.Error("Done() = true for in-progress order")
		}
	})

	t.Run("keeps prior order on malformed block", func(t *testing.T) {
		good := `<response>One Cheeseburger.</response>
<order>{"items": [{"name": "Cheeseburger", "quantity": 1, "price": 6.49, "modifiers": [], "size": null}], "total": 6.49, "status": "in_progress"}</order>`
		bad := `<response>Let me fix that.</response>
<order>{"items": [], "total": -5, "status": "in_progress"}</order>`
		e := NewEngine(scriptedProvider(good, bad), testMenu(t), nil)

		if _, err := e.Advance(context.Background(), "a cheeseburger"); err != nil {
			t.Fatalf("first Advance: %v", err)
		}
		if _, err := e.Advance(context.Background(), "actually remove it"); err != nil {
			t.Fatalf("second Advance: %v", err)
		}

		o := e.Order()
		if len(o.Items) != 1 || o.Total != 6.49 {
			t.Errorf("order = %+v, want prior order retained", o)
		}
		// The bad turn still lands in history.
		if e.History().Len() != 4 {
			t.Errorf("history len = %d, want 4", e.History().Len())
		}
	})

	t.Run("absent order block means no update", func(t *testing.T) {
		good := `<response>One Cheeseburger.</response>
<order>{"items": [{"name": "Cheeseburger", "quantity": 1, "price": 6.49, "modifiers": [], "size": null}], "total": 6.49, "status": "in_progress"}</order>`
		chatter := `<response>We close at midnight.</response>`
		e := NewEngine(scriptedProvider(good, chatter), testMenu(t), nil)

		e.Advance(context.Background(), "a cheeseburger")
		reply, err := e.Advance(context.Background(), "what time do you close?")
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if reply != "We close at midnight." {
			t.Errorf("reply = %q", reply)
		}
		if o := e.Order(); len(o.Items) != 1 {
			t.Errorf("order = %+v, want retained", o)
		}
	})

	t.Run("model failure leaves state untouched", func(t *testing.T) {
		boom := errors.New("connection refused")
		e := NewEngine(inference.WithError(boom), testMenu(t), nil)

		_, err := e.Advance(context.Background(), "a cheeseburger")
		var te *TurnError
		if !errors.As(err, &te) {
			t.Fatalf("err = %v, want *TurnError", err)
		}
		if !errors.Is(err, boom) {
			t.Errorf("err does not unwrap to cause: %v", err)
		}
		if e.History().Len() != 0 {
			t.Errorf("history len = %d, want 0", e.History().Len())
		}
		if o := e.Order(); len(o.Items) != 0 {
			t.Errorf("order = %+v, want empty", o)
		}
	})

	t.Run("empty input rejected before model call", func(t *testing.T) {
		m := inference.NewMock()
		e := NewEngine(m, testMenu(t), nil)

		_, err := e.Advance(context.Background(), "   \n ")
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("err = %v, want ErrEmptyInput", err)
		}
		if m.CallCount() != 0 {
			t.Errorf("model calls = %d, want 0", m.CallCount())
		}
		if e.History().Len() != 0 {
			t.Errorf("history len = %d, want 0", e.History().Len())
		}
	})

	t.Run("fallback when response segment missing", func(t *testing.T) {
		e := NewEngine(scriptedProvider("just plain text, no tags"), testMenu(t), nil)

		reply, err := e.Advance(context.Background(), "hello?")
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if reply != FallbackReply {
			t.Errorf("reply = %q, want fallback", reply)
		}
		// Raw text is still recorded as the assistant turn.
		if e.History().Len() != 2 {
			t.Errorf("history len = %d, want 2", e.History().Len())
		}
	})

	t.Run("complete order ends conversation", func(t *testing.T) {
		done := `<response>Great! Please pull forward to the window.</response>
<order>{"items": [{"name": "Cheeseburger", "quantity": 1, "price": 6.49, "modifiers": [], "size": null}], "total": 6.49, "status": "complete"}</order>`
		e := NewEngine(scriptedProvider(done), testMenu(t), nil)

		if _, err := e.Advance(context.Background(), "yes that's everything"); err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if !e.Done() {
			t.Error("Done() = false after complete order")
		}
		if e.Order().Status != order.StatusComplete {
			t.Errorf("status = %q", e.Order().Status)
		}
	})

	t.Run("off-menu item still committed", func(t *testing.T) {
		raw := `<response>One Lobster Roll.</response>
<order>{"items": [{"name": "Lobster Roll", "quantity": 1, "price": 18.99, "modifiers": [], "size": null}], "total": 18.99, "status": "in_progress"}</order>`
		e := NewEngine(scriptedProvider(raw), testMenu(t), nil)

		if _, err := e.Advance(context.Background(), "lobster roll please"); err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if o := e.Order(); len(o.Items) != 1 || o.Items[0].Name != "Lobster Roll" {
			t.Errorf("order = %+v, want off-menu item committed", o)
		}
	})
}

func TestEngineMessages(t *testing.T) {
	raw := `<response>Okay.</response>`
	m := scriptedProvider(raw)
	e := NewEngine(m, testMenu(t), nil)

	e.Advance(context.Background(), "first")
	e.Advance(context.Background(), "second")

	req := m.LastCall()
	if req == nil {
		t.Fatal("no recorded call")
	}
	// system + (customer, assistant) from turn one + staged customer turn
	if len(req.Messages) != 4 {
		t.Fatalf("messages = %d, want 4", len(req.Messages))
	}
	if req.Messages[0].Role != inference.RoleSystem {
		t.Errorf("first role = %q", req.Messages[0].Role)
	}
	if !strings.Contains(req.Messages[0].Content, "Cheeseburger") {
		t.Error("system prompt missing menu")
	}
	if req.Messages[1].Content != "first" || req.Messages[1].Role != inference.RoleUser {
		t.Errorf("history turn = %+v", req.Messages[1])
	}
	if req.Messages[3].Content != "second" {
		t.Errorf("staged turn = %+v", req.Messages[3])
	}
}

func TestEngineOrderIsCopy(t *testing.T) {
	raw := `<response>One Cheeseburger.</response>
<order>{"items": [{"name": "Cheeseburger", "quantity": 1, "price": 6.49, "modifiers": ["no onions"], "size": null}], "total": 6.49, "status": "in_progress"}</order>`
	e := NewEngine(scriptedProvider(raw), testMenu(t), nil)
	e.Advance(context.Background(), "a cheeseburger")

	o := e.Order()
	o.Items[0].Name = "Tampered"
	o.Items[0].Modifiers[0] = "tampered"

	if fresh := e.Order(); fresh.Items[0].Name != "Cheeseburger" || fresh.Items[0].Modifiers[0] != "no onions" {
		t.Error("Order() did not return a deep copy")
	}
}
