// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for distance-matrix validation.
//  - Return sentinels wrapped with the validator tag so call sites can
//    still match them via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry runs on the strict upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// DefaultTol is the structural tolerance for diagonal and symmetry checks.
const DefaultTol = 1e-12

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateSquare ensures m is non-nil and square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateDistance checks that m is a valid distance matrix:
//   - non-nil and square,
//   - every entry finite (no NaN/±Inf),
//   - |a_ii| ≤ tol,
//   - a_ij ≥ 0 off the diagonal,
//   - |a_ij − a_ji| ≤ tol.
//
// Checks run in that order; the first violation wins.
// A negative tol is flipped to its absolute value.
// Complexity: O(n²).
func ValidateDistance(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateDistance", ErrNaNInf)
	}
	tol = math.Abs(tol)

	var (
		n        = m.Rows()
		i, j     int
		aij, aji float64
		err      error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if aij, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateDistance", err)
			}
			if math.IsNaN(aij) || math.IsInf(aij, 0) {
				return validatorErrorf("ValidateDistance", ErrNaNInf)
			}
			if i == j {
				if math.Abs(aij) > tol {
					return validatorErrorf("ValidateDistance", ErrNonZeroDiagonal)
				}
				continue
			}
			if aij < 0 {
				return validatorErrorf("ValidateDistance", ErrNegativeDistance)
			}
		}
	}

	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j) // bounds already proven by the scan above
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateDistance", ErrAsymmetry)
			}
		}
	}

	return nil
}
