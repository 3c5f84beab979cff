package counter

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionType tags an Action.
type ActionType string

const (
	ActionIncrement ActionType = "increment"
	ActionDecrement ActionType = "decrement"
	ActionReset     ActionType = "reset"
)

// KnownActions lists every tag Reduce handles, in display order.
var KnownActions = []ActionType{ActionIncrement, ActionDecrement, ActionReset}

// Valid reports whether t is one of the tags Reduce handles.
func (t ActionType) Valid() bool {
	switch t {
	case ActionIncrement, ActionDecrement, ActionReset:
		return true
	}
	return false
}

// Action is a tagged message for Reduce. Payload is only read for reset.
type Action struct {
	Type    ActionType
	Payload int64
}

func Increment() Action { return Action{Type: ActionIncrement} }

func Decrement() Action { return Action{Type: ActionDecrement} }

// Reset returns an action that replaces the whole state with payload.
func Reset(payload int64) Action { return Action{Type: ActionReset, Payload: payload} }

func (a Action) String() string {
	if a.Type == ActionReset {
		return fmt.Sprintf("%s(%d)", a.Type, a.Payload)
	}
	return string(a.Type)
}

// ParseAction reads "tag [payload]" as typed at the command prompt. The tag
// is lower-cased but not checked; an unknown tag is left for Reduce to
// reject. hasPayload is false when no payload was given.
func ParseAction(input string) (a Action, hasPayload bool, err error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Action{}, false, fmt.Errorf("empty action")
	}
	if len(fields) > 2 {
		return Action{}, false, fmt.Errorf("too many arguments: %q", input)
	}
	a.Type = ActionType(strings.ToLower(fields[0]))
	if len(fields) == 2 {
		p, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return Action{}, false, fmt.Errorf("parse payload %q: %w", fields[1], err)
		}
		a.Payload = p
		hasPayload = true
	}
	return a, hasPayload, nil
}
