package construct_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mmdp/instance"
	"github.com/katalvlaran/mmdp/matrix"
	"github.com/katalvlaran/mmdp/solution"
)

const seedDet = int64(12345)

// lineInstance places items on a line at the given coordinates.
func lineInstance(t testing.TB, p int, xs ...float64) *instance.Instance {
	t.Helper()
	pts := make([][]float64, len(xs))
	for i, x := range xs {
		pts[i] = []float64{x}
	}
	d, err := matrix.Euclidean(pts)
	require.NoError(t, err)
	in, err := instance.New(d, p)
	require.NoError(t, err)

	return in
}

// randomInstance builds a random planar Euclidean instance.
func randomInstance(t testing.TB, n, p int, seed int64) *instance.Instance {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = []float64{rng.Float64() * 100, rng.Float64() * 100}
	}
	d, err := matrix.Euclidean(pts)
	require.NoError(t, err)
	in, err := instance.New(d, p)
	require.NoError(t, err)

	return in
}

// requireFeasible checks |S| = p, range, uniqueness and the cached objective.
func requireFeasible(t *testing.T, sol *solution.Solution) {
	t.Helper()
	in := sol.Instance()
	items := sol.Items()
	require.Len(t, items, in.P())
	seen := make(map[int]bool, len(items))
	for _, u := range items {
		require.GreaterOrEqual(t, u, 0)
		require.Less(t, u, in.N())
		require.False(t, seen[u], "duplicate item %d", u)
		seen[u] = true
	}
	require.Equal(t, solution.Evaluate(in, items), sol.Objective())
}
