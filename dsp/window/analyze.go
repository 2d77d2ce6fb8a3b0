package window

import "math"

// Analysis holds numerically computed spectral properties of a window.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// Bandwidth3dB is the two-sided half-power main lobe width in bins.
	Bandwidth3dB float64
	// HighestSidelobedB is the highest sidelobe level relative to DC in dB.
	HighestSidelobedB float64
	// FirstMinimumBins is the first null position in bins.
	FirstMinimumBins float64
	// ScallopLossdB is the worst-case amplitude error for a signal half a bin off-center.
	ScallopLossdB float64
}

// Analyze generates a window of the given type and size and measures it.
func Analyze(t Type, size int, opts ...Option) (Analysis, error) {
	coeffs, err := Generate(t, size, opts...)
	if err != nil {
		return Analysis{}, err
	}
	return AnalyzeCoefficients(coeffs), nil
}

// AnalyzeCoefficients computes spectral properties of coeffs by evaluating
// the DTFT of the window at arbitrary normalized frequencies.
func AnalyzeCoefficients(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	r := response(coeffs)
	dc := r(0)
	if dc == 0 {
		return Analysis{}
	}

	enbw, _ := EquivalentNoiseBandwidth(coeffs)
	nf := float64(n)

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	a := Analysis{
		CoherentGain: sum / nf,
		ENBW:         enbw,
	}

	if half := r(0.5 / nf); half > 0 {
		a.ScallopLossdB = 10 * math.Log10(half/dc)
	}

	// Half-power point by bisection on [0, Nyquist].
	lo, hi := 0.0, 0.5
	for range 80 {
		mid := (lo + hi) / 2
		if r(mid)/dc > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}
	a.Bandwidth3dB = 2 * lo * nf

	firstMin := firstMinimum(r, dc, nf)
	a.FirstMinimumBins = firstMin * nf
	a.HighestSidelobedB = highestSidelobe(r, dc, firstMin, nf)

	return a
}

// response returns |W(f)|^2 for normalized frequency f in [0, 0.5].
func response(coeffs []float64) func(f float64) float64 {
	return func(f float64) float64 {
		re, im := 0.0, 0.0
		w := 2 * math.Pi * f
		for k, c := range coeffs {
			re += c * math.Cos(w*float64(k))
			im -= c * math.Sin(w*float64(k))
		}
		return re*re + im*im
	}
}

// firstMinimum scans outward from DC in eighth-bin steps for the first turn
// after the response has fallen below 10% of DC, then refines the position
// with a golden-section search.
func firstMinimum(r func(float64) float64, dc, nf float64) float64 {
	step := 1 / (nf * 8)
	threshold := dc * 0.1

	coarse := step
	prev := dc
	for f := step; f < 0.5; f += step {
		v := r(f)
		if prev < threshold && v > prev {
			coarse = f - step
			break
		}
		prev = v
	}

	a := math.Max(0, coarse-2*step)
	b := math.Min(0.5, coarse+2*step)

	const phi = 0.6180339887498949
	for range 80 {
		c := b - phi*(b-a)
		d := a + phi*(b-a)
		if r(c) < r(d) {
			b = d
		} else {
			a = c
		}
	}

	return (a + b) / 2
}

func highestSidelobe(r func(float64) float64, dc, start, nf float64) float64 {
	step := 1 / (nf * 8)

	peak, peakFreq := 0.0, start
	for f := start; f < 0.5; f += step {
		if v := r(f); v > peak {
			peak, peakFreq = v, f
		}
	}

	for f := math.Max(0, peakFreq-step); f <= peakFreq+step; f += step / 32 {
		if v := r(f); v > peak {
			peak = v
		}
	}

	if peak <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(peak/dc)
}
