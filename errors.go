package eigenfish

import (
	"errors"

	"github.com/nozzle/eigenfish/internal/eigen"
)

// Sentinel errors. Call sites wrap them with context via fmt.Errorf("...: %w");
// match them with errors.Is.
var (
	// ErrEmptyMatrix is returned for a nil or 0×0 template.
	ErrEmptyMatrix = errors.New("eigenfish: empty matrix")

	// ErrNonSquare is returned when the template has rows != cols.
	ErrNonSquare = errors.New("eigenfish: matrix is not square")

	// ErrNoSlots is returned when no parameter slot is given.
	ErrNoSlots = errors.New("eigenfish: at least one parameter slot is required")

	// ErrSlotOutOfRange is returned when a slot coordinate lies outside [0, n).
	ErrSlotOutOfRange = errors.New("eigenfish: parameter slot out of range")

	// ErrSlotMismatch is returned when a parameter vector, or a row/column
	// index pair, does not have one entry per slot.
	ErrSlotMismatch = errors.New("eigenfish: parameter count does not match slot count")

	// ErrInvalidSampleCount is returned for numSamples <= 0.
	ErrInvalidSampleCount = errors.New("eigenfish: number of samples must be positive")

	// ErrInvalidDistribution is returned for a negative, NaN or infinite
	// distribution parameter, or an unknown distribution kind.
	ErrInvalidDistribution = errors.New("eigenfish: invalid distribution")

	// ErrNoConvergence is returned when an eigenvalue iteration fails.
	ErrNoConvergence = eigen.ErrNoConvergence
)
