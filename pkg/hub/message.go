// Package hub provides a thread-safe websocket broadcast hub
// using the idiomatic Go channel-based fan-out pattern.
package hub

// Message represents a JSON frame to be broadcast to clients.
type Message struct {
	Data []byte
}

// NewMessage creates a broadcast message from encoded JSON.
func NewMessage(data []byte) Message {
	return Message{Data: data}
}
