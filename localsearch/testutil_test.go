package localsearch_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mmdp/construct"
	"github.com/katalvlaran/mmdp/instance"
	"github.com/katalvlaran/mmdp/matrix"
	"github.com/katalvlaran/mmdp/solution"
)

// improveTol matches the tolerance IMLS uses for "strictly better".
const improveTol = 1e-9

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

// constructed returns a CGR solution for the given seed.
func constructed(t testing.TB, in *instance.Instance, alpha float64, seed int64) *solution.Solution {
	t.Helper()
	sol, err := construct.CGR(in, alpha, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)

	return sol
}

// improvingSwap exhaustively searches for a single swap that raises the
// objective by more than improveTol.
func improvingSwap(sol *solution.Solution) (out, in int, ok bool) {
	n := sol.Instance().N()
	items := sol.Items()
	for k, s := range items {
		for u := 0; u < n; u++ {
			if sol.Contains(u) {
				continue
			}
			trial := append(append([]int(nil), items[:k]...), items[k+1:]...)
			trial = append(trial, u)
			if solution.Evaluate(sol.Instance(), trial) > sol.Objective()+improveTol {
				return s, u, true
			}
		}
	}

	return -1, -1, false
}

// requireConsistent checks the cached objective against a full recomputation.
func requireConsistent(t *testing.T, sol *solution.Solution) {
	t.Helper()
	require.True(t, sol.IsFeasible())
	require.InDelta(t, sol.Evaluate(), sol.Objective(), 1e-12)
}
