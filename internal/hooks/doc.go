// Package hooks provides the two primitives the counter component consumes
// from its host: a memoized value that survives re-renders, and a reducer
// store that owns state and applies dispatched actions one at a time.
//
// Both are owned by a single component instance and driven from the bubbletea
// event loop, so neither is safe for concurrent use.
package hooks
