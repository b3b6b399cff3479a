package brain

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Erunixz/thru.ai/pkg/dialogue"
	"github.com/Erunixz/thru.ai/pkg/inference"
	"github.com/Erunixz/thru.ai/pkg/menu"
	"github.com/Erunixz/thru.ai/pkg/order"
)

// Engine drives one customer's ordering conversation. It owns the
// dialogue history and the current order, and advances both one turn at
// a time against an inference provider.
//
// Engine is not safe for concurrent use. A session talks to exactly one
// engine from one goroutine.
type Engine struct {
	provider inference.Provider
	catalog  menu.Catalog
	history  *dialogue.History
	system   inference.Message
	current  order.Order
	logger   *slog.Logger
}

// NewEngine creates an engine over a provider and menu catalog.
func NewEngine(provider inference.Provider, catalog menu.Catalog, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		provider: provider,
		catalog:  catalog,
		history:  dialogue.NewHistory(),
		system:   inference.NewSystemMessage(SystemPrompt(catalog)),
		current:  order.New(),
		logger:   logger.With("component", "brain"),
	}
}

// Advance runs one conversation turn: the customer's words go to the
// model with the full history, and the reply to speak comes back.
//
// Empty input returns ErrEmptyInput without touching any state. A model
// failure returns a *TurnError, also without touching any state; on
// success both turns are appended to the history together. The order is
// replaced only when the reply carries a well-formed order block.
func (e *Engine) Advance(ctx context.Context, customerText string) (string, error) {
	customerText = strings.TrimSpace(customerText)
	if customerText == "" {
		return "", ErrEmptyInput
	}

	messages := e.buildMessages(customerText)

	resp, err := e.provider.Chat(ctx, &inference.ChatRequest{Messages: messages})
	if err != nil {
		e.logger.Error("model request failed", "error", err)
		return "", &TurnError{Stage: "inference", Err: err}
	}
	raw := resp.Message.Content

	// Both turns land or neither does. The assistant turn stores the
	// raw completion so the model sees its own order blocks next turn.
	e.history.Append(
		dialogue.CustomerTurn(customerText),
		dialogue.AssistantTurn(raw),
	)

	reply, ok := ExtractReply(raw)
	if !ok {
		e.logger.Warn("reply missing response segment, using fallback")
		reply = FallbackReply
	}

	e.commitOrder(raw)

	return reply, nil
}

// buildMessages assembles the model request: system prompt, every prior
// turn, then the staged customer turn.
func (e *Engine) buildMessages(customerText string) []inference.Message {
	turns := e.history.Snapshot()
	messages := make([]inference.Message, 0, len(turns)+2)
	messages = append(messages, e.system)
	for _, t := range turns {
		switch t.Role {
		case dialogue.RoleCustomer:
			messages = append(messages, inference.NewUserMessage(t.Content))
		case dialogue.RoleAssistant:
			messages = append(messages, inference.NewAssistantMessage(t.Content))
		}
	}
	return append(messages, inference.NewUserMessage(customerText))
}

// commitOrder replaces the current order when raw carries a valid order
// block. A missing block means no update; a malformed block keeps the
// previous order intact.
func (e *Engine) commitOrder(raw string) {
	o, err := ExtractOrder(raw)
	if err != nil {
		if errors.Is(err, ErrNoOrderSegment) {
			e.logger.Debug("reply carried no order block")
		} else {
			e.logger.Warn("discarding malformed order block", "error", err)
		}
		return
	}

	for _, item := range o.Items {
		if _, found := e.catalog.Find(item.Name); !found {
			e.logger.Warn("order item not on menu", "item", item.Name)
		}
	}

	e.current = o.Clone()
	e.logger.Info("order updated",
		"items", o.ItemCount(),
		"total", o.Total,
		"status", o.Status,
	)
}

// Order returns a copy of the current order.
func (e *Engine) Order() order.Order {
	return e.current.Clone()
}

// Done reports whether the customer has confirmed a finished order.
func (e *Engine) Done() bool {
	return e.current.Status.Terminal()
}

// History returns the engine's dialogue history.
func (e *Engine) History() *dialogue.History {
	return e.history
}
