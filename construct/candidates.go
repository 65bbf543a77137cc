package construct

import (
	"math"

	"github.com/katalvlaran/mmdp/solution"
)

// Candidate is one candidate-list record.
type Candidate struct {
	Score float64 // min distance to the current partial solution
	ID    int     // item index
}

// CandidateList is an indexable array of candidates with an id→position
// index, giving O(1) removal by swap-with-last.
type CandidateList struct {
	sol     *solution.Solution
	entries []Candidate
	pos     []int // pos[id] = index in entries, -1 when absent
}

// NewCandidateList scores every item that is not in sol.
// Complexity: O(n·|S|).
func NewCandidateList(sol *solution.Solution) *CandidateList {
	var (
		n  = sol.Instance().N()
		cl = &CandidateList{
			sol:     sol,
			entries: make([]Candidate, 0, n),
			pos:     make([]int, n),
		}
		id int
	)
	for id = 0; id < n; id++ {
		cl.pos[id] = -1
		if sol.Contains(id) {
			continue
		}
		cl.pos[id] = len(cl.entries)
		cl.entries = append(cl.entries, Candidate{Score: sol.DistanceTo(id, solution.NoExclusion), ID: id})
	}

	return cl
}

// Len returns the number of candidates.
func (cl *CandidateList) Len() int { return len(cl.entries) }

// At returns the k-th candidate (0 ≤ k < Len).
func (cl *CandidateList) At(k int) Candidate { return cl.entries[k] }

// Score returns the score of id and whether id is still a candidate.
func (cl *CandidateList) Score(id int) (float64, bool) {
	if id < 0 || id >= len(cl.pos) || cl.pos[id] < 0 {
		return 0, false
	}

	return cl.entries[cl.pos[id]].Score, true
}

// Bounds returns the minimum and maximum score (0, 0 on an empty list).
func (cl *CandidateList) Bounds() (gmin, gmax float64) {
	if len(cl.entries) == 0 {
		return 0, 0
	}
	gmin, gmax = math.Inf(1), math.Inf(-1)
	for _, c := range cl.entries {
		gmin = math.Min(gmin, c.Score)
		gmax = math.Max(gmax, c.Score)
	}

	return gmin, gmax
}

// Take removes and returns the k-th candidate. The last entry moves into
// slot k, so positions of other candidates may change.
// Complexity: O(1).
func (cl *CandidateList) Take(k int) Candidate {
	var (
		c    = cl.entries[k]
		last = len(cl.entries) - 1
	)
	if k != last {
		cl.entries[k] = cl.entries[last]
		cl.pos[cl.entries[k].ID] = k
	}
	cl.entries = cl.entries[:last]
	cl.pos[c.ID] = -1

	return c
}

// Update lowers every score to min(score, d(added, id)).
// Complexity: O(|CL|).
func (cl *CandidateList) Update(added int) {
	row := cl.sol.Instance().Row(added)
	for k := range cl.entries {
		if d := row[cl.entries[k].ID]; d < cl.entries[k].Score {
			cl.entries[k].Score = d
		}
	}
}

// Select adds the k-th candidate to the solution and refreshes the list.
func (cl *CandidateList) Select(k int) error {
	c := cl.Take(k)
	if err := cl.sol.Add(c.ID); err != nil {
		return err
	}
	cl.Update(c.ID)

	return nil
}
