// Package dialogue keeps the transcript of one ordering conversation. The
// model is stateless across calls, so the full history is resent every turn.
package dialogue

// Role identifies who produced a turn.
type Role string

const (
	// RoleCustomer is the transcribed customer utterance.
	RoleCustomer Role = "customer"

	// RoleAssistant is the raw model output, stored verbatim even when
	// segment parsing later fails, so the next call keeps full context.
	RoleAssistant Role = "assistant"
)

// Turn is one utterance in the conversation.
type Turn struct {
	Role    Role
	Content string
}

// CustomerTurn creates a customer turn.
func CustomerTurn(content string) Turn {
	return Turn{Role: RoleCustomer, Content: content}
}

// AssistantTurn creates an assistant turn.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// History is an append-only ordered sequence of turns. It is owned by a single
// session and touched by one cycle at a time, so it is not synchronized.
// There is no size cap: history grows for the lifetime of the session, which
// is a known scaling limit at very long session lengths.
type History struct {
	turns []Turn
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds turns to the end of the history. It never fails.
func (h *History) Append(turns ...Turn) {
	h.turns = append(h.turns, turns...)
}

// Snapshot returns a copy of the full ordered turn sequence. Mutating the
// returned slice does not affect the history.
func (h *History) Snapshot() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of turns recorded so far.
func (h *History) Len() int {
	return len(h.turns)
}
