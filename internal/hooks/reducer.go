package hooks

// ReduceFunc is a pure transition from (state, action) to the next state.
type ReduceFunc[S, A any] func(S, A) (S, error)

// Reducer holds the current state and applies actions through a ReduceFunc.
type Reducer[S comparable, A any] struct {
	reduce     ReduceFunc[S, A]
	state      S
	dispatches int
}

// UseReducer builds a Reducer whose initial state is init(arg), mirroring the
// lazy-initializer form of the hook.
func UseReducer[S comparable, A, I any](reduce ReduceFunc[S, A], arg I, init func(I) S) *Reducer[S, A] {
	return &Reducer[S, A]{reduce: reduce, state: init(arg)}
}

// State returns the current state.
func (r *Reducer[S, A]) State() S { return r.state }

// Dispatches counts actions handed to Dispatch, failed ones included.
func (r *Reducer[S, A]) Dispatches() int { return r.dispatches }

// Dispatch applies action and reports whether the state changed, which is
// the host's signal to re-render. A reduce error leaves the state untouched
// and is returned as is.
func (r *Reducer[S, A]) Dispatch(action A) (changed bool, err error) {
	r.dispatches++
	next, err := r.reduce(r.state, action)
	if err != nil {
		return false, err
	}
	changed = next != r.state
	r.state = next
	return changed, nil
}
