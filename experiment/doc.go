// Package experiment runs repeated, seeded solver runs over instances and
// summarizes them.
//
// A Method wraps one way of producing a solution (a single
// construct-then-improve pass, or a full GRASP+PR run). Runner executes a
// Method Runs times on an instance, each run with its own generator
// derived from BaseSeed, checks every returned solution, and condenses the
// objectives and wall times into a Record.
//
// Summarize compares Methods across instances: average percentage
// deviation from the best value found on each instance, the number of
// instances where a Method matched that best value, and a rank score
// (the best Method on an instance earns as many points as there are
// Methods, ties share the points of the ranks they span).
//
// Records and summaries are written as CSV.
package experiment
