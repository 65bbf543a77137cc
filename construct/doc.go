// Package construct builds feasible Max-Min diversity solutions from scratch
// with greedy-randomized candidate-list heuristics.
//
// Both heuristics start from a uniformly random item and keep a candidate
// list of every unselected item scored by its minimum distance to the
// partial solution (larger is more diverse). After each insertion every
// remaining score is lowered to min(score, d(added, item)), so scores never
// increase during one construction.
//
//   - CGR restricts by score, then picks at random: the RCL keeps every
//     candidate with score ≥ gmax − alpha·(gmax − gmin).
//   - CGR2 restricts at random, then picks greedily: it samples
//     ceil(beta·|CL|) candidates and takes the best of the sample.
//
// Method is the closed variant over both; it satisfies Constructor.
package construct
