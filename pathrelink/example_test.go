package pathrelink_test

import (
	"fmt"

	"github.com/katalvlaran/mmdp/instance"
	"github.com/katalvlaran/mmdp/pathrelink"
	"github.com/katalvlaran/mmdp/solution"
)

// ExampleGreedy relinks two selections of points on a line.
func ExampleGreedy() {
	in, _ := instance.FromRows(lineRows(0, 1, 2, 3, 10, 20), 3)
	from, _ := solution.FromItems(in, 0, 1, 2)
	to, _ := solution.FromItems(in, 3, 4, 5)

	best, st, _ := pathrelink.Greedy(from, to)
	fmt.Println(best, st.Steps, st.BestStep)
	// Output: {0 4 5} of=10 3 2
}

func lineRows(xs ...float64) [][]float64 {
	rows := make([][]float64, len(xs))
	for i, x := range xs {
		rows[i] = make([]float64, len(xs))
		for j, y := range xs {
			rows[i][j] = max(x-y, y-x)
		}
	}

	return rows
}
