package spectrum

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

const (
	// Epsilon is added to every magnitude before the logarithm so silent
	// bins map to FloorDB instead of -Inf.
	Epsilon = 1e-10

	// FastToleranceDB bounds the per-bin difference between a fast backend
	// and the direct DFT on bins above the floor region.
	FastToleranceDB = 1e-6
)

// FloorDB is the value of a bin with zero magnitude: 20*log10(Epsilon).
var FloorDB = core.AmplitudeToDB(0, Epsilon)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	buf.data = core.EnsureLen(buf.data, 2*n)
	return buf.data[:n], buf.data[n : 2*n], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Bins returns the one-sided bin count N/2+1 for transform size n.
func Bins(n int) int {
	return n/2 + 1
}

// BinFrequency returns the center frequency in Hz of bin k for a transform
// of size n at sampleRate.
func BinFrequency(k, n int, sampleRate float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(n)
}

// MagnitudeDB computes 20*log10(sqrt(re[k]^2 + im[k]^2) + Epsilon) into dst.
// All three slices must have the same length.
func MagnitudeDB(dst, re, im []float64) error {
	if len(dst) != len(re) || len(re) != len(im) {
		return fmt.Errorf("spectrum: magnitude length mismatch: dst=%d re=%d im=%d", len(dst), len(re), len(im))
	}

	vecmath.Magnitude(dst, re, im)
	for k, m := range dst {
		dst[k] = core.AmplitudeToDB(m, Epsilon)
	}

	return nil
}

// MagnitudeDBComplex is MagnitudeDB for interleaved complex bins.
func MagnitudeDBComplex(dst []float64, bins []complex128) error {
	if len(dst) != len(bins) {
		return fmt.Errorf("spectrum: magnitude length mismatch: dst=%d bins=%d", len(dst), len(bins))
	}

	re, im, buf := getScratch(len(bins))
	defer putScratch(buf)

	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return MagnitudeDB(dst, re, im)
}

// PeakBin returns the index of the largest value in row, or -1 if row is empty.
func PeakBin(row []float64) int {
	peak := -1
	best := math.Inf(-1)
	for k, v := range row {
		if v > best {
			peak, best = k, v
		}
	}
	return peak
}
