package elite

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mmdp/solution"
)

var (
	// ErrInvalidCapacity indicates a capacity below 1.
	ErrInvalidCapacity = errors.New("elite: capacity must be ≥ 1")

	// ErrNilSolution indicates Insert(nil).
	ErrNilSolution = errors.New("elite: nil solution")
)

// Entry is one archived solution with its entry ID.
type Entry struct {
	ID       uint64
	Solution *solution.Solution
}

// Pair is an unordered pair of archive entries, A.ID < B.ID.
type Pair struct {
	A, B Entry
}

// Key returns the ID pair identifying p independently of slot positions.
func (p Pair) Key() [2]uint64 { return [2]uint64{p.A.ID, p.B.ID} }

// Set is a bounded elite archive. Not safe for concurrent use.
type Set struct {
	capacity int
	entries  []Entry
	nextID   uint64
}

// New returns an empty archive holding at most capacity solutions.
func New(capacity int) (*Set, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("elite: New(%d): %w", capacity, ErrInvalidCapacity)
	}

	return &Set{capacity: capacity, entries: make([]Entry, 0, capacity)}, nil
}

// Len returns the number of archived solutions.
func (s *Set) Len() int { return len(s.entries) }

// Cap returns the capacity.
func (s *Set) Cap() int { return s.capacity }

// Full reports whether Len() == Cap().
func (s *Set) Full() bool { return len(s.entries) >= s.capacity }

// Entries returns the archive in slot order. The slice is a view; the
// solutions must not be mutated.
func (s *Set) Entries() []Entry { return s.entries }

// Insert offers cand to the archive and reports whether a copy was stored.
// A rejected candidate leaves the archive unchanged.
//
// Complexity: O(Len·n/64) for the intersection counts plus O(p) for the copy.
func (s *Set) Insert(cand *solution.Solution) (bool, error) {
	if cand == nil {
		return false, ErrNilSolution
	}
	if !s.Full() {
		s.entries = append(s.entries, s.entry(cand))
		return true, nil
	}

	var (
		victim   = -1
		bestComm = -1
		of       = cand.Objective()
		k, comm  int
	)
	for k = range s.entries {
		if !(s.entries[k].Solution.Objective() < of) {
			continue
		}
		if comm = s.entries[k].Solution.Intersection(cand); comm > bestComm {
			victim, bestComm = k, comm
		}
	}
	if victim < 0 {
		return false, nil
	}
	s.entries[victim] = s.entry(cand)

	return true, nil
}

func (s *Set) entry(sol *solution.Solution) Entry {
	s.nextID++

	return Entry{ID: s.nextID, Solution: sol.Clone()}
}

// Worst returns the member with the smallest objective (first on ties).
func (s *Set) Worst() (Entry, bool) {
	return s.extreme(func(a, b float64) bool { return a < b })
}

// Best returns the member with the largest objective (first on ties).
func (s *Set) Best() (Entry, bool) {
	return s.extreme(func(a, b float64) bool { return a > b })
}

func (s *Set) extreme(better func(a, b float64) bool) (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	pick := 0
	for k := 1; k < len(s.entries); k++ {
		if better(s.entries[k].Solution.Objective(), s.entries[pick].Solution.Objective()) {
			pick = k
		}
	}

	return s.entries[pick], true
}

// Pairs returns every unordered pair of members, ordered by slot
// (i < j). Each pair is keyed with the smaller ID first.
func (s *Set) Pairs() []Pair {
	out := make([]Pair, 0, len(s.entries)*(len(s.entries)-1)/2)
	for i := 0; i < len(s.entries); i++ {
		for j := i + 1; j < len(s.entries); j++ {
			a, b := s.entries[i], s.entries[j]
			if b.ID < a.ID {
				a, b = b, a
			}
			out = append(out, Pair{A: a, B: b})
		}
	}

	return out
}
