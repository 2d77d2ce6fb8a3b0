package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// FFT is a radix-2 complex FFT backend. The frame is zero-extended or
// truncated to N and the first N/2+1 output bins are kept.
type FFT struct {
	n    int
	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
}

// NewFFT returns an FFT backend of size n, which must be a power of two.
func NewFFT(n int) (*FFT, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	if !core.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: fft backend needs a power of two, got %d", ErrInvalidSize, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: init fft plan: %w", err)
	}

	return &FFT{
		n:    n,
		plan: plan,
		in:   make([]complex128, n),
		out:  make([]complex128, n),
	}, nil
}

// Size returns N.
func (f *FFT) Size() int { return f.n }

// Bins returns N/2+1.
func (f *FFT) Bins() int { return Bins(f.n) }

// DB computes the dB magnitude spectrum of frame into dst.
func (f *FFT) DB(dst, frame []float64) error {
	if err := checkDst(dst, f.Bins()); err != nil {
		return err
	}

	l := min(len(frame), f.n)
	for i := range f.in {
		if i < l {
			f.in[i] = complex(frame[i], 0)
		} else {
			f.in[i] = 0
		}
	}

	if err := f.plan.Forward(f.out, f.in); err != nil {
		return fmt.Errorf("spectrum: fft forward: %w", err)
	}

	return MagnitudeDBComplex(dst, f.out[:f.Bins()])
}
