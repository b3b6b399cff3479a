package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Erunixz/thru.ai/internal/httpc"
	"github.com/Erunixz/thru.ai/pkg/order"
)

// DefaultTimeout bounds one push so a slow display server never stalls
// the conversation.
const DefaultTimeout = 2 * time.Second

// Pusher sends committed orders to the kitchen display.
type Pusher interface {
	Push(ctx context.Context, o order.Order) error
}

// Client pushes orders to the display server over HTTP.
type Client struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a push client for the given order endpoint.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:    url,
		http:   httpc.NewClient(timeout),
		logger: logger.With("component", "relay.client"),
	}
}

// PushResponse is the display server's acknowledgement.
type PushResponse struct {
	Success bool `json:"success"`
	OrderID int  `json:"order_id"`
}

// Push sends one order snapshot. The caller treats failures as
// non-fatal; the conversation's order state is authoritative.
func (c *Client) Push(ctx context.Context, o order.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("relay: marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("relay: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("relay: push order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("relay: push rejected with status %d", resp.StatusCode)
	}

	var ack PushResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&ack); err != nil {
		return fmt.Errorf("relay: decode ack: %w", err)
	}

	c.logger.Debug("order pushed", "order_id", ack.OrderID, "items", o.ItemCount())
	return nil
}

var _ Pusher = (*Client)(nil)
