// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// Euclidean builds the symmetric n×n distance matrix of k-dimensional points.
// Every point must have the same, positive number of coordinates.
// The upper triangle is computed once and mirrored.
//
// Complexity: O(n²·k) time, O(n²) memory.
func Euclidean(points [][]float64) (*Dense, error) {
	n := len(points)
	if n == 0 {
		return nil, ErrInvalidDimensions
	}
	k := len(points[0])
	if k == 0 {
		return nil, ErrInvalidDimensions
	}

	var (
		i, j, t int
		s, diff float64
	)
	for i = 0; i < n; i++ {
		if len(points[i]) != k {
			return nil, fmt.Errorf("Euclidean: point %d has %d coordinates, want %d: %w", i, len(points[i]), k, ErrDimensionMismatch)
		}
		for t = 0; t < k; t++ {
			if math.IsNaN(points[i][t]) || math.IsInf(points[i][t], 0) {
				return nil, fmt.Errorf("Euclidean: point %d: %w", i, ErrNaNInf)
			}
		}
	}

	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			s = 0
			for t = 0; t < k; t++ {
				diff = points[i][t] - points[j][t]
				s += diff * diff
			}
			s = math.Sqrt(s)
			m.data[i*n+j] = s
			m.data[j*n+i] = s
		}
	}

	return m, nil
}
