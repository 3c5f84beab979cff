package counter

// Reduce maps (state, action) to the next state. It has no side effects.
func Reduce(state State, action Action) (State, error) {
	switch action.Type {
	case ActionIncrement:
		return State{Count: state.Count + 1}, nil
	case ActionDecrement:
		return State{Count: state.Count - 1}, nil
	case ActionReset:
		return Init(action.Payload), nil
	default:
		return state, &UnhandledActionError{Tag: action.Type}
	}
}
