package pathrelink_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mmdp/construct"
	"github.com/katalvlaran/mmdp/instance"
	"github.com/katalvlaran/mmdp/matrix"
	"github.com/katalvlaran/mmdp/pathrelink"
	"github.com/katalvlaran/mmdp/solution"
)

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

func constructed(t testing.TB, in *instance.Instance, seed int64) *solution.Solution {
	t.Helper()
	sol, err := construct.CGR(in, 0.7, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)

	return sol
}

func without(items []int, drop int) []int {
	return slices.DeleteFunc(slices.Clone(items), func(v int) bool { return v == drop })
}

// replay applies the recorded moves to a copy of initiating and checks each
// one against an exhaustive evaluation of every admissible swap.
func replay(t *testing.T, initiating, guiding *solution.Solution, st pathrelink.Stats) *solution.Solution {
	t.Helper()
	var (
		in  = initiating.Instance()
		cur = initiating.Clone()
	)
	for k, mv := range st.Moves {
		items := cur.Items()
		brute := -1.0
		for _, i := range items {
			if guiding.Contains(i) {
				continue
			}
			for _, j := range guiding.Items() {
				if cur.Contains(j) {
					continue
				}
				brute = max(brute, solution.Evaluate(in, append(without(items, i), j)))
			}
		}
		require.False(t, guiding.Contains(mv.Out), "step %d drops a guiding item", k+1)
		require.True(t, guiding.Contains(mv.In), "step %d adds a foreign item", k+1)
		require.InDelta(t, brute, mv.Objective, 1e-9, "step %d is not the best swap", k+1)

		require.NoError(t, cur.Swap(mv.Out, mv.In))
		require.InDelta(t, cur.Objective(), mv.Objective, 1e-9, "step %d objective", k+1)
	}

	return cur
}

func TestGreedy_IdenticalEndpoints(t *testing.T) {
	in := randomInstance(t, 12, 4, 1)
	a := constructed(t, in, 1)

	got, st, err := pathrelink.Greedy(a, a.Clone())
	require.NoError(t, err)
	assert.Zero(t, st.Steps)
	assert.Zero(t, st.Distance)
	assert.Zero(t, st.BestStep)
	assert.True(t, got.Equal(a))
	assert.Equal(t, a.Objective(), got.Objective())
	assert.NotSame(t, a, got)
}

func TestGreedy_EndpointErrors(t *testing.T) {
	in := randomInstance(t, 10, 4, 2)
	other := randomInstance(t, 10, 4, 3)
	a := constructed(t, in, 1)

	_, _, err := pathrelink.Greedy(nil, a)
	require.ErrorIs(t, err, pathrelink.ErrNilSolution)

	_, _, err = pathrelink.Greedy(a, constructed(t, other, 1))
	require.ErrorIs(t, err, pathrelink.ErrInstanceMismatch)

	small, err := solution.FromItems(in, 0, 1, 2)
	require.NoError(t, err)
	_, _, err = pathrelink.Greedy(a, small)
	require.ErrorIs(t, err, pathrelink.ErrSizeMismatch)
}

func TestGreedy_ExactPathAgainstBruteForce(t *testing.T) {
	for _, tc := range []struct{ n, p int }{{8, 2}, {10, 3}, {20, 6}, {30, 10}} {
		for seed := int64(1); seed <= 5; seed++ {
			in := randomInstance(t, tc.n, tc.p, seed)
			a := constructed(t, in, seed)
			b := constructed(t, in, seed+100)
			aItems, bItems := a.Items(), b.Items()

			got, st, err := pathrelink.Greedy(a, b)
			require.NoError(t, err)

			// The walk always reaches the guiding solution.
			assert.Equal(t, a.Size()-a.Intersection(b), st.Distance)
			assert.Equal(t, st.Distance, st.Steps)
			end := replay(t, a, b, st)
			assert.True(t, end.Equal(b), "n=%d p=%d seed=%d", tc.n, tc.p, seed)

			// Returned solution: exact, best along the path.
			assert.InDelta(t, got.Evaluate(), got.Objective(), 1e-9)
			assert.GreaterOrEqual(t, got.Objective(), a.Objective())
			assert.GreaterOrEqual(t, got.Objective(), b.Objective()-1e-9)
			if st.BestStep > 0 {
				assert.Equal(t, st.Moves[st.BestStep-1].Objective, got.Objective())
			} else {
				assert.True(t, got.Equal(a))
			}

			// Endpoints untouched.
			assert.Equal(t, aItems, a.Items())
			assert.Equal(t, bItems, b.Items())
		}
	}
}

func TestGreedy_LineWalk(t *testing.T) {
	// x = 0,1,2,3,10,20: I = {0,1,2} (of 1), G = {3,4,5} (of 7).
	d, err := matrix.Euclidean([][]float64{{0}, {1}, {2}, {3}, {10}, {20}})
	require.NoError(t, err)
	in, err := instance.New(d, 3)
	require.NoError(t, err)
	a, err := solution.FromItems(in, 0, 1, 2)
	require.NoError(t, err)
	b, err := solution.FromItems(in, 3, 4, 5)
	require.NoError(t, err)

	got, st, err := pathrelink.Greedy(a, b)
	require.NoError(t, err)
	require.Equal(t, 3, st.Steps)

	// Step 1 drops 1 for 4: {0,2,10} of 2 (first of the ties at 2).
	// Step 2 drops 2 for 5: {0,10,20} of 10. Step 3 must drop 0 for 3:
	// {3,10,20} of 7.
	assert.Equal(t, []pathrelink.Move{
		{Out: 1, In: 4, Objective: 2},
		{Out: 2, In: 5, Objective: 10},
		{Out: 0, In: 3, Objective: 7},
	}, st.Moves)
	assert.Equal(t, 2, st.BestStep)
	assert.Equal(t, []int{0, 4, 5}, got.Items())
	assert.Equal(t, 10.0, got.Objective())
}

func TestBidirectional_PicksBetterDirection(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		in := randomInstance(t, 25, 7, seed)
		a := constructed(t, in, seed)
		b := constructed(t, in, seed+50)

		fwd, _, err := pathrelink.Greedy(a, b)
		require.NoError(t, err)
		bwd, _, err := pathrelink.Greedy(b, a)
		require.NoError(t, err)

		got, st, err := pathrelink.Bidirectional(a, b)
		require.NoError(t, err)
		assert.Equal(t, max(fwd.Objective(), bwd.Objective()), got.Objective())
		if fwd.Objective() > bwd.Objective() {
			assert.False(t, st.Backward)
			assert.True(t, got.Equal(fwd))
		} else {
			assert.True(t, st.Backward)
			assert.True(t, got.Equal(bwd))
		}
	}
}

func TestBidirectional_Errors(t *testing.T) {
	_, _, err := pathrelink.Bidirectional(nil, nil)
	require.ErrorIs(t, err, pathrelink.ErrNilSolution)
}
