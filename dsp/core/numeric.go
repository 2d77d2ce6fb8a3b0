package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// MillisToSamples converts a duration in milliseconds to a sample count at
// sampleRate, rounding to the nearest integer.
func MillisToSamples(ms float64, sampleRate int) int {
	return int(math.Round(ms * float64(sampleRate) / 1000))
}

// SamplesToMillis converts a sample count back to milliseconds at sampleRate.
// It returns 0 for a non-positive sampleRate.
func SamplesToMillis(samples, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return float64(samples) * 1000 / float64(sampleRate)
}

// AmplitudeToDB converts a linear amplitude to dB (20*log10 convention)
// after adding floor, so a zero amplitude maps to 20*log10(floor) instead of
// -Inf. A non-positive floor reproduces the unguarded conversion.
func AmplitudeToDB(linear, floor float64) float64 {
	return 20 * math.Log10(linear+floor)
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
