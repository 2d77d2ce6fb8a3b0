package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireSpectraClose compares two dB spectra bin by bin within tolDB,
// skipping bins where both sides sit below floorDB. Near the floor the dB
// scale amplifies rounding noise without bound.
func RequireSpectraClose(t testing.TB, got, want []float64, tolDB, floorDB float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("bin count mismatch: got %d, want %d", len(got), len(want))
	}
	for k := range want {
		if got[k] < floorDB && want[k] < floorDB {
			continue
		}
		if diff := math.Abs(got[k] - want[k]); diff > tolDB {
			t.Fatalf("bin %d: got %.12f dB, want %.12f dB (diff %g > %g)", k, got[k], want[k], diff, tolDB)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest element-wise difference over the common
// prefix of a and b.
func MaxAbsDiff(a, b []float64) float64 {
	maxDiff := 0.0
	for i := range min(len(a), len(b)) {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}
	return maxDiff
}
