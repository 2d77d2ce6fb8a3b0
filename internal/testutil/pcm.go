package testutil

import "math"

// SinePCM generates a deterministic 16-bit sine wave. The amplitude is
// clamped to the int16 range.
func SinePCM(freqHz, sampleRate, amplitude float64, length int) []int16 {
	return ToPCM(DeterministicSine(freqHz, sampleRate, amplitude, length))
}

// NoisePCM generates deterministic 16-bit white noise.
func NoisePCM(seed int64, amplitude float64, length int) []int16 {
	return ToPCM(DeterministicNoise(seed, amplitude, length))
}

// Ramp returns the samples 0, 1, ..., length-1, which makes frame offsets
// visible in test failures.
func Ramp(length int) []int16 {
	out := make([]int16, length)
	for i := range out {
		out[i] = int16(i)
	}
	return out
}

// ToPCM rounds and clamps float samples to int16.
func ToPCM(in []float64) []int16 {
	out := make([]int16, len(in))
	for i, v := range in {
		v = math.Round(v)
		v = math.Max(math.MinInt16, math.Min(math.MaxInt16, v))
		out[i] = int16(v)
	}
	return out
}

// ToFloat widens int16 samples to float64.
func ToFloat(in []int16) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
