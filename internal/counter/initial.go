package counter

import "log"

// DefaultIterations is the loop length used to make the initial count slow
// to compute.
const DefaultIterations int64 = 10_000_000

// MaxIterations bounds n so that n*n, and with it the sum 0..n-1, fits in an
// int64.
const MaxIterations int64 = 3_037_000_499

// ComputeInitialCount sums 0..n-1 the slow way. The loop is the point: it
// stands in for an expensive initializer that must not run on every render.
func ComputeInitialCount(n int64) int64 {
	log.Printf("computing initial count (n=%d)...", n)
	var total int64
	for i := int64(0); i < n; i++ {
		total += i
	}
	return total
}
