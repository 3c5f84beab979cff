// Package counter holds the counter component's state, its actions and the
// pure reducer that moves between them.
package counter

import "strconv"

// State is the counter component's state. Transitions always return a new
// value; a State is never modified after it is built.
type State struct {
	Count int64
}

// Init builds a State from an initial count. Reset goes through it as well so
// a mount and a reset produce identically shaped state.
func Init(initialCount int64) State {
	return State{Count: initialCount}
}

func (s State) String() string {
	return "Count: " + strconv.FormatInt(s.Count, 10)
}
