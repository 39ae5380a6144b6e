package template_test

import (
	"math/cmplx"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozzle/eigenfish"
	"github.com/nozzle/eigenfish/template"
)

func TestRandomDrawsFromPopulation(t *testing.T) {
	m, err := template.Random(6, template.TorusPopulation, 42)
	require.NoError(t, err)

	allowed := map[complex128]bool{}
	for _, v := range template.TorusPopulation {
		allowed[v] = true
	}
	r, c := m.Dims()
	require.Equal(t, 6, r)
	require.Equal(t, 6, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.True(t, allowed[m.At(i, j)], "cell (%d, %d) = %v", i, j, m.At(i, j))
		}
	}
}

func TestRandomIsSeeded(t *testing.T) {
	a, err := template.Random(5, template.DefaultPopulation, 7)
	require.NoError(t, err)
	b, err := template.Random(5, template.DefaultPopulation, 7)
	require.NoError(t, err)
	assert.Equal(t, a.RawCMatrix().Data, b.RawCMatrix().Data)
}

func TestRandomErrors(t *testing.T) {
	_, err := template.Random(0, template.DefaultPopulation, 1)
	assert.ErrorIs(t, err, template.ErrBadDimension)
	_, err = template.Random(3, nil, 1)
	assert.ErrorIs(t, err, template.ErrEmptyPopulation)
}

func TestRandomSlotsAreDistinctAndInRange(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		slots, err := template.RandomSlots(5, 2, seed)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.NotEqual(t, slots[0], slots[1])
		for _, s := range slots {
			assert.True(t, s.Row >= 0 && s.Row < 5 && s.Col >= 0 && s.Col < 5, "slot %v", s)
		}
	}

	// Every cell, each exactly once.
	slots, err := template.RandomSlots(3, 9, 1)
	require.NoError(t, err)
	seen := map[eigenfish.Slot]bool{}
	for _, s := range slots {
		seen[s] = true
	}
	assert.Len(t, seen, 9)
}

func TestRandomSlotsErrors(t *testing.T) {
	_, err := template.RandomSlots(2, 5, 1)
	assert.ErrorIs(t, err, template.ErrTooManySlots)
	_, err = template.RandomSlots(2, 0, 1)
	assert.ErrorIs(t, err, eigenfish.ErrNoSlots)
	_, err = template.RandomSlots(-1, 1, 1)
	assert.ErrorIs(t, err, template.ErrBadDimension)
}

func TestCyclicSpectrumHasWeightModulus(t *testing.T) {
	m, err := template.Cyclic(6, 0.2)
	require.NoError(t, err)

	s, err := eigenfish.New[complex128](m, []eigenfish.Slot{{Row: 0, Col: 1}}, eigenfish.DefaultConfig())
	require.NoError(t, err)
	vals, err := s.Evaluate([]complex128{0.2})
	require.NoError(t, err)
	for _, v := range vals {
		assert.InDelta(t, 0.2, cmplx.Abs(v), 1e-9)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.csv")
	content := "0,1i,-1j\n0.5, (1+2j),1\n-1i,0,2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := template.LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []complex128{
		0, 1i, -1i,
		0.5, 1 + 2i, 1,
		-1i, 0, 2,
	}, m.RawCMatrix().Data)
}

func TestLoadCSVNonSquare(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2,3\n4,5,6\n"), 0o644))

	_, err := template.LoadCSV(path)
	assert.ErrorIs(t, err, eigenfish.ErrNonSquare)
}

func TestParseComplex(t *testing.T) {
	for in, want := range map[string]complex128{
		"1":      1,
		"-0.5":   -0.5,
		"1j":     1i,
		"-1i":    -1i,
		"(0+1j)": 1i,
		" 2-3i ": 2 - 3i,
		"0.2+0j": 0.2,
	} {
		got, err := template.ParseComplex(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := template.ParseComplex("abc")
	assert.Error(t, err)
}
