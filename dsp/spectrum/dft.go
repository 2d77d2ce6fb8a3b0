package spectrum

import "math"

// DFT is the reference direct transform.
//
//	real(k) =  Σ x[n]·cos(2πkn/N)
//	imag(k) = -Σ x[n]·sin(2πkn/N)
//
// summed over n in increasing order for n < min(L, N). Twiddles are
// evaluated per term rather than from a table so the rounding of every
// angle matches the closed form.
type DFT struct {
	n      int
	re, im []float64
}

// NewDFT returns a direct transform of size n.
func NewDFT(n int) (*DFT, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}

	bins := Bins(n)

	return &DFT{
		n:  n,
		re: make([]float64, bins),
		im: make([]float64, bins),
	}, nil
}

// Size returns N.
func (d *DFT) Size() int { return d.n }

// Bins returns N/2+1.
func (d *DFT) Bins() int { return len(d.re) }

// DB computes the dB magnitude spectrum of frame into dst.
func (d *DFT) DB(dst, frame []float64) error {
	if err := checkDst(dst, d.Bins()); err != nil {
		return err
	}

	d.Compute(d.re, d.im, frame)

	return MagnitudeDB(dst, d.re, d.im)
}

// Compute writes the real and imaginary parts of bins [0, len(re)) into re
// and im. re and im must have equal length no greater than N/2+1.
func (d *DFT) Compute(re, im, frame []float64) {
	x := frame[:min(len(frame), d.n)]
	size := float64(d.n)

	for k := range re {
		sumRe, sumIm := 0.0, 0.0
		for n, v := range x {
			angle := 2 * math.Pi * float64(k) * float64(n) / size
			sumRe += v * math.Cos(angle)
			sumIm -= v * math.Sin(angle)
		}
		re[k] = sumRe
		im[k] = sumIm
	}
}
