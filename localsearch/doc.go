// Package localsearch improves a feasible Max-Min diversity solution with
// single-element swaps (remove one selected item, add one unselected item).
//
// Three neighbourhood policies are provided:
//
//   - FirstImprovement: randomized scan over (selected, unselected) pairs,
//     applying the first swap where the incoming item is farther from the
//     rest of the solution than the outgoing one. A round that finds no such
//     pair is a local optimum: no single swap can raise the objective.
//   - BestImprovement: one candidate pair per round, the worst selected item
//     against the best unselected item. Cheap but myopic; the acceptance test
//     compares the two item scores only and never re-evaluates the global
//     objective first.
//   - IMLS: tie-aware search over critical items (members whose nearest
//     neighbour distance equals the objective). A swap is accepted when it
//     raises the objective, or keeps it while reducing the number of critical
//     items, which lets the search walk across plateaus.
//
// Every function mutates the solution in place and reports whether at least
// one swap was applied. Randomness comes only from the rng argument.
//
// Method is the closed variant over the three policies; it satisfies Improver.
package localsearch
