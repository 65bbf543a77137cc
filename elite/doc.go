// Package elite keeps a bounded archive of high-quality, mutually diverse
// Max-Min diversity solutions for path relinking.
//
// Replacement rule, once the archive is full: a candidate is admitted only
// if at least one member is strictly worse. Among the strictly worse
// members, the one sharing the most items with the candidate is evicted,
// so quality rises while the archive stays spread out. Ties go to the
// member that has been in the archive longest.
//
// The archive stores deep copies; callers keep ownership of what they pass
// to Insert. Every admitted solution receives a fresh, monotonically
// increasing entry ID, so a refreshed slot can be told apart from the
// member it replaced.
package elite
