package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/mmdp/matrix"
)

var (
	// ErrMalformed is returned for unparsable instance text.
	ErrMalformed = errors.New("instance: malformed input")

	// ErrMissingCoordinates is returned when a coordinate file does not
	// provide a point for every item.
	ErrMissingCoordinates = errors.New("instance: missing coordinates")
)

// Format selects the on-disk layout.
type Format int

const (
	// FormatCoordinates: first line n, second line k, then n lines
	// "idx x1 ... xk". Indices may be 0-based or 1-based.
	// Distances are Euclidean.
	FormatCoordinates Format = iota

	// FormatPairwise: first line n, then lines "u v dist" (0-based),
	// each mirrored to d[v][u]. Pairs that never appear stay 0.
	FormatPairwise
)

// Family is the benchmark family a file belongs to, detected from its name.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyGeo
	FamilyRan
	FamilyGlover
)

// String implements fmt.Stringer.
func (f Family) String() string {
	switch f {
	case FamilyGeo:
		return "Geo"
	case FamilyRan:
		return "Ran"
	case FamilyGlover:
		return "Glover"
	default:
		return "Unknown"
	}
}

// Format returns the file layout used by the family.
func (f Family) Format() Format {
	if f == FamilyRan {
		return FormatPairwise
	}

	return FormatCoordinates
}

// DetectFamily classifies path by the family marker in its base name
// ("ran", "geo", "glover", case-insensitive). The ran check wins, then geo.
func DetectFamily(path string) Family {
	lower := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(lower, "ran"):
		return FamilyRan
	case strings.Contains(lower, "geo"):
		return FamilyGeo
	case strings.Contains(lower, "glover"):
		return FamilyGlover
	default:
		return FamilyUnknown
	}
}

var numberRe = regexp.MustCompile(`\d+`)

// fileIndex is the last number in the file's base name, or 1 when there is none.
func fileIndex(path string) int {
	nums := numberRe.FindAllString(filepath.Base(path), -1)
	if len(nums) == 0 {
		return 1
	}
	idx, err := strconv.Atoi(nums[len(nums)-1])
	if err != nil {
		return 1
	}

	return idx
}

// gloverRatios maps Glover file indices 1..5 to p/n.
var gloverRatios = [5]float64{0.2, 0.35, 0.5, 0.65, 0.8}

// InferP derives p from the benchmark naming convention:
//   - Geo/Ran: 20 files per n; index ≤ 10 ⇒ p = 0.1n, otherwise 0.3n.
//   - Glover: 5 files per n; index 1..5 ⇒ {0.2, 0.35, 0.5, 0.65, 0.8}·n.
//   - Unknown: 0.3n.
//
// The result is rounded and clamped to [2, n].
func InferP(family Family, path string, n int) int {
	var ratio float64
	switch family {
	case FamilyGeo, FamilyRan:
		ratio = 0.3
		if fileIndex(path) <= 10 {
			ratio = 0.1
		}
	case FamilyGlover:
		idx := min(max(fileIndex(path), 1), len(gloverRatios))
		ratio = gloverRatios[idx-1]
	default:
		ratio = 0.3
	}

	return min(max(int(math.Round(ratio*float64(n))), 2), n)
}

// ReadFile parses the instance at path. The family (and thus the format) is
// detected from the file name. p ≤ 0 means "infer p from the file name".
func ReadFile(path string, p int) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	family := DetectFamily(path)
	in, err := read(f, family.Format(), func(n int) int {
		if p > 0 {
			return p
		}
		return InferP(family, path, n)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	in.name = filepath.Base(path)

	return in, nil
}

// Read parses r in the given format with an explicit p.
func Read(r io.Reader, format Format, p int) (*Instance, error) {
	return read(r, format, func(int) int { return p })
}

func read(r io.Reader, format Format, pFor func(n int) int) (*Instance, error) {
	lines, err := nonEmptyLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty input: %w", ErrMalformed)
	}
	n, err := strconv.Atoi(lines[0][0])
	if err != nil || len(lines[0]) != 1 {
		return nil, fmt.Errorf("line 1: expected item count: %w", ErrMalformed)
	}
	if n < 2 {
		return nil, ErrTooSmall
	}

	var d *matrix.Dense
	switch format {
	case FormatPairwise:
		d, err = parsePairwise(lines[1:], n)
	default:
		d, err = parseCoordinates(lines[1:], n)
	}
	if err != nil {
		return nil, err
	}

	return New(d, pFor(n))
}

// nonEmptyLines splits r into whitespace-separated fields per non-blank line.
func nonEmptyLines(r io.Reader) ([][]string, error) {
	var out [][]string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) > 0 {
			out = append(out, fields)
		}
	}

	return out, sc.Err()
}

func parsePairwise(lines [][]string, n int) (*matrix.Dense, error) {
	d, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	var (
		u, v int
		w    float64
	)
	for k, f := range lines {
		if len(f) < 3 {
			return nil, fmt.Errorf("line %d: expected \"u v dist\": %w", k+2, ErrMalformed)
		}
		if u, err = strconv.Atoi(f[0]); err != nil {
			return nil, fmt.Errorf("line %d: %w", k+2, ErrMalformed)
		}
		if v, err = strconv.Atoi(f[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", k+2, ErrMalformed)
		}
		if w, err = strconv.ParseFloat(f[2], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", k+2, ErrMalformed)
		}
		if err = d.SetSym(u, v, w); err != nil {
			return nil, fmt.Errorf("line %d: %w", k+2, err)
		}
	}

	return d, nil
}

func parseCoordinates(lines [][]string, n int) (*matrix.Dense, error) {
	if len(lines) == 0 || len(lines[0]) != 1 {
		return nil, fmt.Errorf("line 2: expected dimension: %w", ErrMalformed)
	}
	k, err := strconv.Atoi(lines[0][0])
	if err != nil || k <= 0 {
		return nil, fmt.Errorf("line 2: expected dimension: %w", ErrMalformed)
	}
	lines = lines[1:]
	if len(lines) < n {
		return nil, fmt.Errorf("%d points for n=%d: %w", len(lines), n, ErrMissingCoordinates)
	}

	var (
		ids    = make([]int, n)
		points = make([][]float64, n)
		minID  = math.MaxInt
		maxID  = math.MinInt
		t      int
	)
	for i, f := range lines[:n] {
		if len(f) < 1+k {
			return nil, fmt.Errorf("line %d: expected index and %d coordinates: %w", i+3, k, ErrMalformed)
		}
		if ids[i], err = strconv.Atoi(f[0]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+3, ErrMalformed)
		}
		minID = min(minID, ids[i])
		maxID = max(maxID, ids[i])
		points[i] = make([]float64, k)
		for t = 0; t < k; t++ {
			if points[i][t], err = strconv.ParseFloat(f[1+t], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+3, ErrMalformed)
			}
		}
	}

	// 1-based files number their points 1..n.
	shift := 0
	if minID == 1 && maxID == n {
		shift = 1
	}
	ordered := make([][]float64, n)
	for i := range points {
		idx := ids[i] - shift
		if idx < 0 || idx >= n || ordered[idx] != nil {
			return nil, fmt.Errorf("point index %d: %w", ids[i], ErrMissingCoordinates)
		}
		ordered[idx] = points[i]
	}

	return matrix.Euclidean(ordered)
}
