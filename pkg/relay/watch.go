package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Watcher subscribes to a display server's live order feed. It is used
// by kitchen terminals that want pushes instead of polling /api/orders.
type Watcher struct {
	conn *websocket.Conn
}

// Watch dials the display server's websocket feed, e.g.
// ws://localhost:5000/ws/orders.
func Watch(ctx context.Context, url string) (*Watcher, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("relay: dial order feed: %w", err)
	}

	return &Watcher{conn: conn}, nil
}

// Next blocks until the next order record arrives.
func (w *Watcher) Next() (*Record, error) {
	_, data, err := w.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("relay: read order feed: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("relay: decode order record: %w", err)
	}
	return &rec, nil
}

// Close terminates the subscription.
func (w *Watcher) Close() error {
	w.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return w.conn.Close()
}
