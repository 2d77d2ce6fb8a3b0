package spectrum

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSize reports a non-positive transform size or one the
	// backend cannot handle.
	ErrInvalidSize = errors.New("spectrum: invalid transform size")
	// ErrUnknownBackend reports a backend name ParseBackend does not recognize.
	ErrUnknownBackend = errors.New("spectrum: unknown backend")
)

// Transform maps a windowed real frame to a one-sided dB magnitude spectrum.
//
// Implementations keep per-instance scratch memory and are not safe for
// concurrent use; create one Transform per goroutine.
type Transform interface {
	// Size returns the transform size N.
	Size() int
	// Bins returns the output length N/2+1.
	Bins() int
	// DB writes the dB magnitude of bins [0, N/2] of frame into dst, which
	// must have length Bins().
	DB(dst, frame []float64) error
}

// Backend selects a Transform implementation.
type Backend int

const (
	// BackendDirect is the reference O(N·L) direct summation.
	BackendDirect Backend = iota
	// BackendFFT is the radix-2 algo-fft backend; N must be a power of two.
	BackendFFT
	// BackendRealFFT is the gonum real-input backend for any N.
	BackendRealFFT
)

var backendNames = map[Backend]string{
	BackendDirect:  "direct",
	BackendFFT:     "fft",
	BackendRealFFT: "realfft",
}

// String returns the backend name accepted by ParseBackend.
func (b Backend) String() string {
	if s, ok := backendNames[b]; ok {
		return s
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend resolves a backend name. The empty string selects BackendDirect.
func ParseBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BackendDirect, nil
	}
	for b, s := range backendNames {
		if s == name {
			return b, nil
		}
	}
	return BackendDirect, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// New creates a Transform of size n for the given backend.
func New(b Backend, n int) (Transform, error) {
	switch b {
	case BackendDirect:
		return NewDFT(n)
	case BackendFFT:
		return NewFFT(n)
	case BackendRealFFT:
		return NewRealFFT(n)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownBackend, b)
	}
}

func validateSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	return nil
}

func checkDst(dst []float64, bins int) error {
	if len(dst) != bins {
		return fmt.Errorf("spectrum: dst holds %d bins, need %d", len(dst), bins)
	}
	return nil
}
