// SPDX-License-Identifier: MIT
// Package matrix provides the dense distance storage shared by every solver
// in this module.
//
// A distance matrix is an n×n row-major *Dense with:
//
//   - finite, non-negative entries,
//   - a zero diagonal (within a tolerance),
//   - symmetry a[i][j] == a[j][i] (within a tolerance).
//
// ValidateDistance checks all three in a single O(n²) pass and returns the
// package sentinels below, so callers can match them with errors.Is.
//
// Euclidean builds such a matrix from k-dimensional coordinates, which is how
// the coordinate-based benchmark families (Geo, Glover) are turned into
// instances.
//
// The matrix is immutable by convention once handed to an instance: Row
// returns a view into the backing storage and must not be written to.
package matrix
