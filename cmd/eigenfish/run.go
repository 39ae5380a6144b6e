package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/eigenfish"
	"github.com/nozzle/eigenfish/template"
)

// plotClip is the real-part magnitude past which the original plots clipped
// their x-axis to [-8, 8].
const plotClip = 10

func run(dist eigenfish.Distribution, defaultPopulation []complex128) error {
	m, slots, err := setup(defaultPopulation)
	if err != nil {
		return err
	}
	if double {
		return sample[complex128](m, slots, dist)
	}
	return sample[complex64](m, slots, dist)
}

func sample[T eigenfish.Complex](m *mat.CDense, slots []eigenfish.Slot, dist eigenfish.Distribution) error {
	config := eigenfish.DefaultConfig()
	config.Seed = seed
	config.NumWorkers = numWorkers
	config.Verbose = verbose

	var bar *pb.ProgressBar
	if verbose {
		bar = pb.StartNew(numSamples)
		config.ProgressCallback = func(done, total int) {
			bar.SetCurrent(int64(done))
		}
	}

	s, err := eigenfish.New[T](m, slots, config)
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}

	eigenvalues, err := s.Sample(numSamples, dist)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("sampling failed: %w", err)
	}

	if err := saveCSV(outputFile, eigenvalues); err != nil {
		return fmt.Errorf("failed to save output: %w", err)
	}

	if verbose {
		minRe, maxRe, minIm, maxIm := extent(eigenvalues)
		fmt.Printf("Real part in [%g, %g], imaginary part in [%g, %g]\n", minRe, maxRe, minIm, maxIm)
		if maxRe > plotClip {
			fmt.Printf("Real parts exceed %d; consider clipping the x-axis to [-8, 8]\n", plotClip)
		}
		fmt.Printf("Saved %d eigenvalues to %s\n", len(eigenvalues), outputFile)
	}
	return nil
}

func gershgorin(defaultPopulation []complex128) error {
	m, slots, err := setup(defaultPopulation)
	if err != nil {
		return err
	}
	s, err := eigenfish.New[complex128](m, slots, eigenfish.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}

	circles, ok := s.GershgorinCircles()
	if !ok {
		fmt.Println("Gershgorin disks unavailable: template is not a matrix of phases")
		return nil
	}
	for i := range circles.Radii {
		fmt.Printf("disk %d: center (%g, %g), radius %g\n",
			i, circles.CentersX[i], circles.CentersY[i], circles.Radii[i])
	}
	return nil
}

// setup resolves the template and slots from the flags.
func setup(defaultPopulation []complex128) (*mat.CDense, []eigenfish.Slot, error) {
	var m *mat.CDense
	var err error
	if matrixFile != "" {
		m, err = template.LoadCSV(matrixFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load matrix: %w", err)
		}
	} else {
		pop := defaultPopulation
		if population != "" {
			pop, err = parsePopulation(population)
			if err != nil {
				return nil, nil, err
			}
		}
		m, err = template.Random(dim, pop, seed)
		if err != nil {
			return nil, nil, err
		}
	}

	n, _ := m.Dims()
	var slots []eigenfish.Slot
	if slotsFlag != "" {
		slots, err = parseSlots(slotsFlag)
	} else {
		slots, err = template.RandomSlots(n, numSlots, seed+1)
	}
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		fmt.Printf("Template %d×%d with parameter slots %v\n", n, n, slots)
	}
	return m, slots, nil
}

// parseSlots parses "row,col;row,col".
func parseSlots(s string) ([]eigenfish.Slot, error) {
	var rows, cols []int
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("slot %q: want row,col", pair)
		}
		r, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("slot %q: %v", pair, err)
		}
		c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("slot %q: %v", pair, err)
		}
		rows = append(rows, r)
		cols = append(cols, c)
	}
	return eigenfish.SlotsFromIndices(rows, cols)
}

// parsePopulation parses a comma-separated list of complex values.
func parsePopulation(s string) ([]complex128, error) {
	var pop []complex128
	for _, field := range strings.Split(s, ",") {
		v, err := template.ParseComplex(field)
		if err != nil {
			return nil, fmt.Errorf("population value %q: %v", field, err)
		}
		pop = append(pop, v)
	}
	return pop, nil
}

// saveCSV writes one "real,imag" row per eigenvalue.
func saveCSV[T eigenfish.Complex](filename string, eigenvalues []T) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	bitSize := 64
	var zero T
	if _, ok := any(zero).(complex64); ok {
		bitSize = 32
	}

	record := make([]string, 2)
	for _, v := range eigenvalues {
		c := complex128(v)
		record[0] = strconv.FormatFloat(real(c), 'g', -1, bitSize)
		record[1] = strconv.FormatFloat(imag(c), 'g', -1, bitSize)
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// extent returns the bounding box of the eigenvalue cloud.
func extent[T eigenfish.Complex](eigenvalues []T) (minRe, maxRe, minIm, maxIm float64) {
	minRe, minIm = math.Inf(1), math.Inf(1)
	maxRe, maxIm = math.Inf(-1), math.Inf(-1)
	for _, v := range eigenvalues {
		c := complex128(v)
		minRe = math.Min(minRe, real(c))
		maxRe = math.Max(maxRe, real(c))
		minIm = math.Min(minIm, imag(c))
		maxIm = math.Max(maxIm, imag(c))
	}
	return minRe, maxRe, minIm, maxIm
}
