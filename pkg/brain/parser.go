package brain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Erunixz/thru.ai/pkg/order"
)

// Raw model output is a pair of tagged blocks. The tags may sit anywhere
// in the reply and their bodies may span lines.
var (
	responseRe = regexp.MustCompile(`(?s)<response>(.*?)</response>`)
	orderRe    = regexp.MustCompile(`(?s)<order>(.*?)</order>`)
)

// ExtractReply pulls the spoken reply out of a raw model completion.
// ok is false when the block is absent or blank.
func ExtractReply(raw string) (string, bool) {
	m := responseRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	reply := strings.TrimSpace(m[1])
	if reply == "" {
		return "", false
	}
	return reply, true
}

// ExtractOrder pulls and validates the order block out of a raw model
// completion. An absent block returns ErrNoOrderSegment, which callers
// treat as "no update". Any other error means the block was malformed
// and the previous order should be kept.
func ExtractOrder(raw string) (*order.Order, error) {
	m := orderRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, ErrNoOrderSegment
	}

	var o order.Order
	if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &o); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	o.Normalize()
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}
	return &o, nil
}
