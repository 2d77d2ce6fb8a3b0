package spectrum

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// RealFFT is a real-input FFT backend built on gonum's mixed-radix FFTPACK
// port. It accepts any positive N.
type RealFFT struct {
	n      int
	fft    *fourier.FFT
	seq    []float64
	coeffs []complex128
}

// NewRealFFT returns a real FFT backend of size n.
func NewRealFFT(n int) (*RealFFT, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}

	return &RealFFT{
		n:      n,
		fft:    fourier.NewFFT(n),
		seq:    make([]float64, n),
		coeffs: make([]complex128, Bins(n)),
	}, nil
}

// Size returns N.
func (r *RealFFT) Size() int { return r.n }

// Bins returns N/2+1.
func (r *RealFFT) Bins() int { return len(r.coeffs) }

// DB computes the dB magnitude spectrum of frame into dst.
func (r *RealFFT) DB(dst, frame []float64) error {
	if err := checkDst(dst, r.Bins()); err != nil {
		return err
	}

	core.FitInto(r.seq, frame)
	r.coeffs = r.fft.Coefficients(r.coeffs, r.seq)

	return MagnitudeDBComplex(dst, r.coeffs)
}
