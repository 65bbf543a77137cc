// Package grasp runs the time-budgeted GRASP with path relinking
// metaheuristic for the Max-Min Diversity Problem.
//
// The driver is a three-state machine:
//
//	Constructing ──▶ Relinking ──▶ Done
//
// Constructing repeats construct → improve → archive. At the top of every
// iteration it leaves when the construction share of the budget is spent
// and the elite archive is full, or when the whole budget (minus an
// optional one-second safety margin) is spent. At least one iteration
// always runs, so a result always exists.
//
// Relinking takes every unordered pair of elite members, relinks it in
// both directions, improves the better path solution and offers it back to
// the archive. When the archive changes, the pending pairs are rebuilt
// from its current members, skipping pairs already relinked. The wall
// clock is polled before each pair and between the two directions.
//
// Budgets are soft: a running construction, local search or relinking walk
// is never interrupted, so the total time may overshoot by one unit of
// work.
//
// The driver logs phase transitions, improvements of the best solution and
// a final summary through the zerolog.Logger in Options; the default
// logger discards everything.
package grasp
