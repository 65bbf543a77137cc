// Package pathrelink walks from one Max-Min diversity solution towards
// another, one swap at a time, and keeps the best solution met on the way.
//
// Given an initiating solution I and a guiding solution G of equal size,
// A = I \ G holds the items still to drop and B = G \ I the items still to
// add. Each step applies the swap (i ∈ A, j ∈ B) whose resulting objective
// is largest, so after |A| steps the walk arrives at G.
//
// Evaluating a swap from scratch costs O(p²). Instead, every step first
// tabulates, inside the current solution S, the two smallest distances of
// each member to the others (and which member gives the smallest), and,
// for each j ∈ B, its two smallest distances to S. With those tables the
// objective of S − i + j is
//
//	min( of(S \ {i}), d(j, S \ {i}) )
//
// where both terms are read in O(1): a second-nearest value replaces the
// nearest one whenever the nearest neighbour is i itself. A full step is
// therefore O(p² + |B|·p + |A|·|B|), and the objective of every solution on
// the path is exact.
package pathrelink
