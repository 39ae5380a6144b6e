package eigenfish_test

import (
	"encoding/csv"
	"fmt"
	"math/cmplx"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/eigenfish"
	"github.com/nozzle/eigenfish/template"
)

// TestPythonComparison samples the same template, slots and seed with the
// Go sampler and with NumPy, and checks that every draw yields the same
// spectrum. The MT19937 source reproduces numpy.random's legacy stream, so
// the parameters agree draw for draw; only the eigenvalue order may differ.
//
// This test requires `uv` to be installed and available in PATH.
// The test will automatically sync the Python environment if needed.
func TestPythonComparison(t *testing.T) {
	// Skip if uv is not available
	if _, err := exec.LookPath("uv"); err != nil {
		t.Skip("uv not found in PATH, skipping Python comparison test")
	}

	pythonDir := filepath.Join("testdata", "python")

	// Ensure the Python environment is synced
	syncCmd := exec.Command("uv", "sync")
	syncCmd.Dir = pythonDir
	syncCmd.Stdout = os.Stdout
	syncCmd.Stderr = os.Stderr
	if err := syncCmd.Run(); err != nil {
		t.Fatalf("Failed to sync Python environment: %v", err)
	}

	const (
		n          = 5
		numSamples = 200
		seed       = 42
	)
	slots := []eigenfish.Slot{{0, 3}, {4, 1}}

	m, err := template.Random(n, template.DefaultPopulation, 3)
	if err != nil {
		t.Fatalf("Failed to build template: %v", err)
	}
	matrixPath := filepath.Join(t.TempDir(), "matrix.csv")
	if err := writeMatrixCSV(matrixPath, m); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}
	absMatrixPath, err := filepath.Abs(matrixPath)
	if err != nil {
		t.Fatalf("Failed to get absolute path: %v", err)
	}

	for _, tc := range []struct {
		mode string
		dist eigenfish.Distribution
	}{
		{"rect", eigenfish.Uniform(20)},
		{"gaussian", eigenfish.Normal(2)},
		{"torus", eigenfish.Circle(1)},
	} {
		t.Run(tc.mode, func(t *testing.T) {
			pythonOutputPath := filepath.Join(t.TempDir(), "python.csv")

			t.Log("Running NumPy sampler...")
			pythonCmd := exec.Command("uv", "run", "python", "run_eigenfish.py",
				"--matrix", absMatrixPath,
				"--rows", joinInts(slots, func(s eigenfish.Slot) int { return s.Row }),
				"--cols", joinInts(slots, func(s eigenfish.Slot) int { return s.Col }),
				"--mode", tc.mode,
				"--param", strconv.FormatFloat(tc.dist.Param, 'g', -1, 64),
				"--samples", strconv.Itoa(numSamples),
				"--seed", strconv.Itoa(seed),
				"--output", pythonOutputPath,
			)
			pythonCmd.Dir = pythonDir
			pythonCmd.Stdout = os.Stdout
			pythonCmd.Stderr = os.Stderr
			if err := pythonCmd.Run(); err != nil {
				t.Fatalf("Failed to run NumPy sampler: %v", err)
			}

			config := eigenfish.DefaultConfig()
			config.Seed = seed
			s, err := eigenfish.New[complex128](m, slots, config)
			if err != nil {
				t.Fatalf("Failed to create sampler: %v", err)
			}
			goValues, err := s.Sample(numSamples, tc.dist)
			if err != nil {
				t.Fatalf("Go sampling failed: %v", err)
			}

			pyValues, err := loadEigenvaluesCSV(pythonOutputPath)
			if err != nil {
				t.Fatalf("Failed to load NumPy output: %v", err)
			}
			if len(pyValues) != len(goValues) {
				t.Fatalf("Length mismatch: Go %d, NumPy %d", len(goValues), len(pyValues))
			}

			mismatches := 0
			for i := 0; i < numSamples; i++ {
				if d := spectrumDistance(goValues[i*n:(i+1)*n], pyValues[i*n:(i+1)*n]); d > 1e-6 {
					mismatches++
					if mismatches <= 5 {
						t.Errorf("draw %d: spectra differ by %.3e\n  Go:    %v\n  NumPy: %v",
							i, d, goValues[i*n:(i+1)*n], pyValues[i*n:(i+1)*n])
					}
				}
			}
			t.Logf("%d/%d draws differ", mismatches, numSamples)
		})
	}
}

// spectrumDistance greedily pairs each Go eigenvalue with its nearest unused
// NumPy eigenvalue and returns the largest relative pairing distance.
func spectrumDistance(a, b []complex128) float64 {
	used := make([]bool, len(b))
	var worst float64
	for _, x := range a {
		best, bestIdx := -1.0, -1
		for j, y := range b {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(x - y); best < 0 || d < best {
				best, bestIdx = d, j
			}
		}
		used[bestIdx] = true
		if rel := best / (1 + cmplx.Abs(x)); rel > worst {
			worst = rel
		}
	}
	return worst
}

func joinInts(slots []eigenfish.Slot, field func(eigenfish.Slot) int) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = strconv.Itoa(field(s))
	}
	return strings.Join(parts, ",")
}

// writeMatrixCSV writes the template in Python complex() syntax.
func writeMatrixCSV(filename string, m *mat.CDense) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		record := make([]string, n)
		for j := 0; j < n; j++ {
			v := m.At(i, j)
			record[j] = fmt.Sprintf("(%s%+gj)", strconv.FormatFloat(real(v), 'g', -1, 64), imag(v))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// loadEigenvaluesCSV loads "real,imag" rows.
func loadEigenvaluesCSV(filename string) ([]complex128, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	values := make([]complex128, len(records))
	for i, record := range records {
		if len(record) != 2 {
			return nil, fmt.Errorf("row %d: want 2 columns, got %d", i, len(record))
		}
		re, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d, col 0: %v", i, err)
		}
		im, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d, col 1: %v", i, err)
		}
		values[i] = complex(re, im)
	}
	return values, nil
}
