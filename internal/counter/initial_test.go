package counter

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeInitialCountSmall(t *testing.T) {
	require.Equal(t, int64(0), ComputeInitialCount(0))
	require.Equal(t, int64(0), ComputeInitialCount(1))
	require.Equal(t, int64(45), ComputeInitialCount(10))
}

func TestMaxIterationsFitsInt64(t *testing.T) {
	n := big.NewInt(MaxIterations)
	sum := new(big.Int).Mul(n, new(big.Int).Sub(n, big.NewInt(1)))
	sum.Rsh(sum, 1)
	require.True(t, sum.IsInt64(), "sum of 0..%d overflows int64", MaxIterations-1)
}

func TestComputeInitialCountDefault(t *testing.T) {
	if testing.Short() {
		t.Skip("full initializer loop")
	}
	require.Equal(t, int64(49999995000000), ComputeInitialCount(DefaultIterations))
}

func TestScenarioIncrementThenReset(t *testing.T) {
	if testing.Short() {
		t.Skip("full initializer loop")
	}
	initial := ComputeInitialCount(DefaultIterations)
	s := Init(initial)
	var err error
	for i := 0; i < 3; i++ {
		s, err = Reduce(s, Increment())
		require.NoError(t, err)
	}
	require.Equal(t, int64(49999995000003), s.Count)

	s, err = Reduce(s, Reset(initial))
	require.NoError(t, err)
	require.Equal(t, int64(49999995000000), s.Count)
}
