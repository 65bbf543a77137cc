package experiment

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a sample. Std is the population standard deviation.
type Stats struct {
	N     int
	Best  float64 // maximum
	Worst float64 // minimum
	Mean  float64
	Std   float64
}

// CalcStats returns the zero Stats for an empty sample.
func CalcStats(values []float64) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}
	s.Best = floats.Max(values)
	s.Worst = floats.Min(values)
	s.Mean, s.Std = stat.PopMeanStdDev(values, nil)

	return s
}

// Deviation returns 100·(ref − v)/ref, the percentage by which v falls
// short of ref; 0 when ref is not positive.
func Deviation(v, ref float64) float64 {
	if ref <= eps {
		return 0
	}

	return 100 * (ref - v) / ref
}
