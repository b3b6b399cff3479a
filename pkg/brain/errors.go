package brain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates the customer text was empty or whitespace.
	ErrEmptyInput = errors.New("empty customer input")

	// ErrNoOrderSegment indicates the model reply carried no order block.
	ErrNoOrderSegment = errors.New("no order segment in reply")
)

// TurnError wraps a failure while advancing the conversation by one turn.
// A TurnError is recoverable: the dialogue and order are left untouched.
type TurnError struct {
	Stage string
	Err   error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn failed at %s: %v", e.Stage, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}
