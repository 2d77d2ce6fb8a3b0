package window

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize reports a window length below two samples.
	ErrInvalidSize = errors.New("window size must be > 1")
	// ErrUnknownType reports a window name that Parse does not recognize.
	ErrUnknownType = errors.New("unknown window type")

	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

func validateLength(size int) error {
	if size <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return nil
}
