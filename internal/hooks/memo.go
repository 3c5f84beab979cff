package hooks

import "time"

// Memo computes a value on first Get and returns the cached value after that,
// until Invalidate.
type Memo[T any] struct {
	compute  func() T
	value    T
	ready    bool
	runs     int
	lastCost time.Duration
	now      func() time.Time
}

func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{compute: compute, now: time.Now}
}

// Get returns the memoized value, computing it if needed.
func (m *Memo[T]) Get() T {
	if !m.ready {
		start := m.now()
		m.value = m.compute()
		m.lastCost = m.now().Sub(start)
		m.ready = true
		m.runs++
	}
	return m.value
}

// Invalidate drops the cached value; the next Get recomputes.
func (m *Memo[T]) Invalidate() {
	var zero T
	m.value = zero
	m.ready = false
}

// Runs is the number of times compute has been called.
func (m *Memo[T]) Runs() int { return m.runs }

// LastCost is how long the most recent compute took.
func (m *Memo[T]) LastCost() time.Duration { return m.lastCost }
