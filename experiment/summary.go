package experiment

import (
	"math"
	"slices"

	"github.com/katalvlaran/mmdp/randutil"
)

// Summary compares one Method with the others across instances.
type Summary struct {
	Method    string
	Instances int
	DevAvg    float64 // mean % deviation of Best from the per-instance best
	NumBest   int     // instances where Best matched the per-instance best
	Score     float64 // sum of rank points
}

// Summarize groups records by instance, compares the Best objective of
// each Method against the best over all Methods on that instance, and
// returns one Summary per Method in order of first appearance.
func Summarize(records []Record) []Summary {
	var (
		order   []string
		byName  = map[string]*Summary{}
		byInst  = map[string][]Record{}
		insts   []string
		summary *Summary
	)
	for _, rec := range records {
		if _, ok := byName[rec.Method]; !ok {
			order = append(order, rec.Method)
			byName[rec.Method] = &Summary{Method: rec.Method}
		}
		if _, ok := byInst[rec.Instance]; !ok {
			insts = append(insts, rec.Instance)
		}
		byInst[rec.Instance] = append(byInst[rec.Instance], rec)
	}

	for _, name := range insts {
		group := byInst[name]
		top := math.Inf(-1)
		for _, rec := range group {
			top = math.Max(top, rec.Objective.Best)
		}
		points := rankPoints(group)
		for k, rec := range group {
			summary = byName[rec.Method]
			summary.Instances++
			summary.DevAvg += Deviation(rec.Objective.Best, top)
			if math.Abs(rec.Objective.Best-top) <= eps {
				summary.NumBest++
			}
			summary.Score += points[k]
		}
	}

	out := make([]Summary, 0, len(order))
	for _, name := range order {
		summary = byName[name]
		if summary.Instances > 0 {
			summary.DevAvg /= float64(summary.Instances)
		}
		out = append(out, *summary)
	}

	return out
}

// rankPoints awards len(group) points to the best record down to 1 for the
// worst; records tied within eps share the mean of the points they span.
func rankPoints(group []Record) []float64 {
	idx := randutil.Range(len(group))
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case group[a].Objective.Best > group[b].Objective.Best:
			return -1
		case group[a].Objective.Best < group[b].Objective.Best:
			return 1
		}
		return 0
	})

	var (
		n   = len(group)
		out = make([]float64, n)
	)
	for i := 0; i < n; {
		j := i
		for j < n && math.Abs(group[idx[j]].Objective.Best-group[idx[i]].Objective.Best) <= eps {
			j++
		}
		// ranks i..j-1 earn n-i .. n-j+1 points
		avg := float64((n-i)+(n-j+1)) / 2
		for t := i; t < j; t++ {
			out[idx[t]] = avg
		}
		i = j
	}

	return out
}
