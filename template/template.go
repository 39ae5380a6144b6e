// Package template builds matrix templates and parameter slots for eigenfish
// sampling: random matrices over a small population of values, random
// distinct slot choices, the cyclic-shift matrix and CSV loading.
package template

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/eigenfish"
	"github.com/nozzle/eigenfish/internal/rand"
)

var (
	// ErrEmptyPopulation is returned when there are no values to draw from.
	ErrEmptyPopulation = errors.New("template: empty population")

	// ErrTooManySlots is returned when more distinct slots are requested
	// than the matrix has cells.
	ErrTooManySlots = errors.New("template: more slots than matrix cells")

	// ErrBadDimension is returned for a non-positive matrix dimension.
	ErrBadDimension = errors.New("template: dimension must be positive")
)

// DefaultPopulation is the value set of the rectangle-sampled plots.
var DefaultPopulation = []complex128{0, -1i, 1i, 1, 0.5}

// TorusPopulation is the value set of the torus-sampled plots. Zero appears
// twice so the matrices come out sparser.
var TorusPopulation = []complex128{0, 0, -1i, 1i, 0.2}

// Random returns an n×n matrix whose cells are drawn uniformly from population.
func Random(n int, population []complex128, seed int64) (*mat.CDense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("got %d: %w", n, ErrBadDimension)
	}
	if len(population) == 0 {
		return nil, ErrEmptyPopulation
	}

	mt := rand.NewMT19937(uint32(seed))
	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, population[mt.Intn(len(population))])
		}
	}
	return m, nil
}

// RandomSlots picks k distinct cells of an n×n matrix. Flat indices are drawn
// without replacement from [0, n²) and unraveled row-major.
func RandomSlots(n, k int, seed int64) ([]eigenfish.Slot, error) {
	if n <= 0 {
		return nil, fmt.Errorf("got %d: %w", n, ErrBadDimension)
	}
	if k <= 0 {
		return nil, eigenfish.ErrNoSlots
	}
	cells := n * n
	if k > cells {
		return nil, fmt.Errorf("%d slots in %d×%d matrix: %w", k, n, n, ErrTooManySlots)
	}

	// Partial Fisher-Yates over the flat indices.
	mt := rand.NewMT19937(uint32(seed))
	idx := make([]int, cells)
	for i := range idx {
		idx[i] = i
	}
	slots := make([]eigenfish.Slot, k)
	for i := 0; i < k; i++ {
		j := i + mt.Intn(cells-i)
		idx[i], idx[j] = idx[j], idx[i]
		slots[i] = eigenfish.Slot{Row: idx[i] / n, Col: idx[i] % n}
	}
	return slots, nil
}

// Cyclic returns the n×n cyclic shift matrix scaled by weight: weight on the
// superdiagonal and in the bottom-left corner. Its eigenvalues are weight
// times the n-th roots of unity.
func Cyclic(n int, weight complex128) (*mat.CDense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("got %d: %w", n, ErrBadDimension)
	}
	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, (i+1)%n, weight)
	}
	return m, nil
}

// LoadCSV loads a square complex matrix from a CSV file (no header).
// Cells use Go complex syntax ("1+2i", "-0.5", "1i"); NumPy's "j" suffix is
// accepted too.
func LoadCSV(filename string) (*mat.CDense, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	n := len(records)
	m := mat.NewCDense(n, n, nil)
	for i, record := range records {
		if len(record) != n {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(record), n, eigenfish.ErrNonSquare)
		}
		for j, val := range record {
			v, err := ParseComplex(val)
			if err != nil {
				return nil, fmt.Errorf("row %d, col %d: %v", i, j, err)
			}
			m.Set(i, j, v)
		}
	}

	return m, nil
}

// ParseComplex parses one cell value in Go or NumPy notation.
func ParseComplex(s string) (complex128, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "()")
	s = strings.ReplaceAll(s, "j", "i")
	return strconv.ParseComplex(s, 128)
}
