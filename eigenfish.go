// Package eigenfish samples the eigenvalue clouds behind "eigenfish" plots.
//
// A square complex matrix template has a few designated cells, the parameter
// slots. Each draw replaces those cells with random values, recomputes the
// full spectrum with a dense eigenvalue routine and appends it to one flat
// buffer. Scatter-plotting the buffer gives the picture.
//
// Basic usage:
//
//	s, err := eigenfish.New[complex64](m, []eigenfish.Slot{{0, 3}, {4, 1}}, eigenfish.DefaultConfig())
//	if err != nil { ... }
//	eigenvalues, err := s.SampleUniformRect(100000, 20)
//
// The type parameter picks the storage precision of the returned buffer.
// complex64 halves the memory of large runs (hundreds of thousands of draws)
// at the cost of float32 coordinates; use complex128 when the matrix is
// numerically sensitive enough for that to show in the plot.
package eigenfish

import (
	"fmt"
	"math/cmplx"
	"sync/atomic"

	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/eigenfish/internal/eigen"
	"github.com/nozzle/eigenfish/internal/parallel"
	"github.com/nozzle/eigenfish/internal/rand"
)

// Complex is the set of element types an eigenvalue buffer can hold.
type Complex interface {
	~complex64 | ~complex128
}

// Slot is a (row, col) coordinate of a parameter cell.
type Slot struct {
	Row, Col int
}

// SlotsFromIndices pairs parallel row and column index lists, the
// numpy.unravel_index form, into slots.
func SlotsFromIndices(rows, cols []int) ([]Slot, error) {
	if len(rows) != len(cols) {
		return nil, fmt.Errorf("%d rows, %d cols: %w", len(rows), len(cols), ErrSlotMismatch)
	}
	slots := make([]Slot, len(rows))
	for i := range rows {
		slots[i] = Slot{Row: rows[i], Col: cols[i]}
	}
	return slots, nil
}

// Config configures a Sampler.
type Config struct {
	// Seed for the default random source, used when Source is nil.
	// Draws match numpy.random.seed(Seed) followed by the same calls.
	// Default: 42
	Seed int64

	// Source overrides the random source. When set, Seed is ignored.
	// The sampler owns the source for its lifetime.
	// Default: nil
	Source Source

	// NumWorkers splits each sampling call across private copies of the
	// template. 1 runs sequentially on the owned template and reproduces
	// the single-stream draw order exactly. 0 = auto-detect based on CPU
	// cores. Parallel output is deterministic for a fixed Seed and
	// NumWorkers but differs from the sequential output.
	// Default: 1
	NumWorkers int

	// Verbose enables progress output.
	// Default: false
	Verbose bool

	// ProgressCallback is called after each draw with (done, total).
	// With more than one worker it is called from several goroutines.
	// Default: nil
	ProgressCallback func(done, total int)
}

// DefaultConfig returns the default sampler configuration.
func DefaultConfig() Config {
	return Config{
		Seed:       42,
		NumWorkers: 1,
		Verbose:    false,
	}
}

// Sampler draws parameter vectors, injects them into a matrix template and
// collects eigenvalues. It is not safe for concurrent use.
type Sampler[T Complex] struct {
	Config Config

	n      int
	slots  []Slot
	matrix *mat.CDense
	phases bool

	src    Source
	solver *eigen.Solver
	params []complex128
}

// New creates a Sampler over a copy of m with the given parameter slots.
// Later changes to m do not affect the sampler.
//
// Duplicate slots are allowed: within a draw the later component overwrites
// the earlier one at that cell.
func New[T Complex](m mat.CMatrix, slots []Slot, config Config) (*Sampler[T], error) {
	if m == nil {
		return nil, ErrEmptyMatrix
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}
	if r != c {
		return nil, fmt.Errorf("template is %d×%d: %w", r, c, ErrNonSquare)
	}
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	n := r
	for i, sl := range slots {
		if sl.Row < 0 || sl.Row >= n || sl.Col < 0 || sl.Col >= n {
			return nil, fmt.Errorf("slot %d at (%d, %d) in %d×%d template: %w",
				i, sl.Row, sl.Col, n, n, ErrSlotOutOfRange)
		}
	}

	matrix := mat.NewCDense(n, n, nil)
	matrix.Copy(m)

	src := config.Source
	if src == nil {
		src = rand.NewMT19937(uint32(config.Seed))
	}

	return &Sampler[T]{
		Config: config,
		n:      n,
		slots:  append([]Slot(nil), slots...),
		matrix: matrix,
		phases: isMatrixOfPhases(matrix),
		src:    src,
		solver: eigen.NewSolver(n),
		params: make([]complex128, len(slots)),
	}, nil
}

// isMatrixOfPhases reports whether every entry has modulus exactly 1.
func isMatrixOfPhases(m *mat.CDense) bool {
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if cmplx.Abs(m.At(i, j)) != 1.0 {
				return false
			}
		}
	}
	return true
}

// Dim returns the matrix dimension n.
func (s *Sampler[T]) Dim() int { return s.n }

// NumParams returns the number of parameter slots k.
func (s *Sampler[T]) NumParams() int { return len(s.slots) }

// Slots returns a copy of the parameter slots in injection order.
func (s *Sampler[T]) Slots() []Slot { return append([]Slot(nil), s.slots...) }

// IsMatrixOfPhases reports the phase predicate computed at construction.
func (s *Sampler[T]) IsMatrixOfPhases() bool { return s.phases }

// Matrix returns a copy of the current template. After a sequential sampling
// call the slot cells hold the last drawn parameters.
func (s *Sampler[T]) Matrix() *mat.CDense {
	m := mat.NewCDense(s.n, s.n, nil)
	m.Copy(s.matrix)
	return m
}

// SampleUniformRect draws every parameter from U[-rng, rng].
func (s *Sampler[T]) SampleUniformRect(numSamples int, rng float64) ([]T, error) {
	return s.Sample(numSamples, Uniform(rng))
}

// SampleGaussian draws every parameter from N(0, stddev²).
func (s *Sampler[T]) SampleGaussian(numSamples int, stddev float64) ([]T, error) {
	return s.Sample(numSamples, Normal(stddev))
}

// SampleTorus draws every parameter uniformly from the circle of the given
// radius; see DefaultTorusRadius.
func (s *Sampler[T]) SampleTorus(numSamples int, radius float64) ([]T, error) {
	return s.Sample(numSamples, Circle(radius))
}

// Sample performs numSamples independent draws from dist and returns the
// eigenvalues of every resulting matrix, n per draw, in draw order. Within a
// draw the order is whatever the eigenvalue routine produces. On error no
// buffer is returned.
func (s *Sampler[T]) Sample(numSamples int, dist Distribution) ([]T, error) {
	if numSamples <= 0 {
		return nil, fmt.Errorf("got %d: %w", numSamples, ErrInvalidSampleCount)
	}
	if err := dist.validate(); err != nil {
		return nil, err
	}

	workers := s.Config.NumWorkers
	if workers == 0 {
		workers = parallel.NumWorkers()
	}

	if s.Config.Verbose {
		fmt.Printf("Sampling %d draws of %d parameters from %s (n=%d, workers=%d)\n",
			numSamples, len(s.slots), dist, s.n, max(workers, 1))
	}

	out := make([]T, numSamples*s.n)

	var err error
	if workers <= 1 {
		err = s.sampleSequential(numSamples, dist, out)
	} else {
		err = s.sampleParallel(numSamples, workers, dist, out)
	}
	if err != nil {
		return nil, err
	}

	if s.Config.Verbose {
		fmt.Printf("Collected %d eigenvalues\n", len(out))
	}
	return out, nil
}

func (s *Sampler[T]) sampleSequential(numSamples int, dist Distribution, out []T) error {
	for i := 0; i < numSamples; i++ {
		if err := drawInto(s.matrix, s.slots, s.params, dist, s.src, s.solver, out[i*s.n:(i+1)*s.n]); err != nil {
			return fmt.Errorf("draw %d: %w", i, err)
		}
		if s.Config.ProgressCallback != nil {
			s.Config.ProgressCallback(i+1, numSamples)
		}
	}
	return nil
}

// sampleParallel gives each worker a private template clone, solver and
// generator. Worker seeds are taken from the master source in worker order
// before any goroutine starts.
func (s *Sampler[T]) sampleParallel(numSamples, workers int, dist Distribution, out []T) error {
	chunks := parallel.Split(numSamples, workers)
	seeds := make([]uint32, len(chunks))
	for w := range seeds {
		seeds[w] = workerSeed(s.src)
	}

	errs := make([]error, len(chunks))
	var done atomic.Int64

	parallel.Run(chunks, func(w int, c parallel.Chunk) {
		m := s.Matrix()
		solver := eigen.NewSolver(s.n)
		src := rand.NewMT19937(seeds[w])
		params := make([]complex128, len(s.slots))

		for i := c.Start; i < c.End; i++ {
			if err := drawInto(m, s.slots, params, dist, src, solver, out[i*s.n:(i+1)*s.n]); err != nil {
				errs[w] = fmt.Errorf("draw %d: %w", i, err)
				return
			}
			if s.Config.ProgressCallback != nil {
				s.Config.ProgressCallback(int(done.Add(1)), numSamples)
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Evaluate injects an explicit parameter vector, one value per slot in slot
// order, and returns the resulting spectrum.
func (s *Sampler[T]) Evaluate(params []complex128) ([]T, error) {
	if len(params) != len(s.slots) {
		return nil, fmt.Errorf("got %d parameters for %d slots: %w", len(params), len(s.slots), ErrSlotMismatch)
	}
	inject(s.matrix, s.slots, params)
	vals, err := s.solver.Values(s.matrix)
	if err != nil {
		return nil, err
	}
	out := make([]T, s.n)
	for j, v := range vals {
		out[j] = T(v)
	}
	return out, nil
}

// drawInto draws one parameter vector, injects it and stores the spectrum in dst.
func drawInto[T Complex](m *mat.CDense, slots []Slot, params []complex128, dist Distribution,
	src Source, solver *eigen.Solver, dst []T) error {
	for j := range params {
		params[j] = dist.draw(src)
	}
	inject(m, slots, params)

	vals, err := solver.Values(m)
	if err != nil {
		return err
	}
	for j, v := range vals {
		dst[j] = T(v)
	}
	return nil
}

func inject(m *mat.CDense, slots []Slot, params []complex128) {
	for j, sl := range slots {
		m.Set(sl.Row, sl.Col, params[j])
	}
}
