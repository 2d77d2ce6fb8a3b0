package spectrum

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/cwbudde/algo-spectrogram/internal/testutil"
)

func TestMagnitudeDB(t *testing.T) {
	re := []float64{3, 0, 0}
	im := []float64{4, 0, 1}
	dst := make([]float64, 3)

	if err := MagnitudeDB(dst, re, im); err != nil {
		t.Fatal(err)
	}

	if math.Abs(dst[0]-20*math.Log10(5+Epsilon)) > 1e-12 {
		t.Fatalf("dst[0]=%v, want %v", dst[0], 20*math.Log10(5))
	}
	if dst[1] != FloorDB {
		t.Fatalf("dst[1]=%v, want floor %v", dst[1], FloorDB)
	}
	if math.Abs(dst[2]) > 1e-9 {
		t.Fatalf("dst[2]=%v, want ~0", dst[2])
	}

	if err := MagnitudeDB(make([]float64, 2), re, im); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestMagnitudeDBComplex(t *testing.T) {
	dst := make([]float64, 2)
	if err := MagnitudeDBComplex(dst, []complex128{3 + 4i, 0}); err != nil {
		t.Fatal(err)
	}
	if math.Abs(dst[0]-20*math.Log10(5)) > 1e-9 || dst[1] != FloorDB {
		t.Fatalf("unexpected output: %v", dst)
	}
}

func TestFloorIsFinite(t *testing.T) {
	if math.IsInf(FloorDB, 0) || math.IsNaN(FloorDB) {
		t.Fatalf("FloorDB=%v must be finite", FloorDB)
	}
	if math.Abs(FloorDB-20*math.Log10(Epsilon)) > 1e-9 {
		t.Fatalf("FloorDB=%v, want %v", FloorDB, 20*math.Log10(Epsilon))
	}
}

func TestBinsAndFrequency(t *testing.T) {
	if Bins(512) != 257 || Bins(7) != 4 {
		t.Fatalf("Bins mismatch: %d %d", Bins(512), Bins(7))
	}
	if f := BinFrequency(10, 512, 16000); math.Abs(f-312.5) > 1e-12 {
		t.Fatalf("BinFrequency=%v, want 312.5", f)
	}
	if BinFrequency(1, 0, 16000) != 0 {
		t.Fatal("expected 0 for zero transform size")
	}
}

func TestPeakBin(t *testing.T) {
	if PeakBin(nil) != -1 {
		t.Fatal("expected -1 for empty spectrum")
	}
	if got := PeakBin([]float64{-3, 7, 2, 7}); got != 1 {
		t.Fatalf("PeakBin=%d, want 1", got)
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in   string
		want Backend
	}{
		{"", BackendDirect},
		{"direct", BackendDirect},
		{"FFT", BackendFFT},
		{" realfft ", BackendRealFFT},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseBackend(%q)=%v,%v want %v", tt.in, got, err, tt.want)
		}
		if tt.in != "" && got.String() == "" {
			t.Fatalf("empty name for %v", got)
		}
	}

	if _, err := ParseBackend("radix4"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("err=%v, want ErrUnknownBackend", err)
	}
}

func TestNewValidation(t *testing.T) {
	for _, b := range []Backend{BackendDirect, BackendFFT, BackendRealFFT} {
		if _, err := New(b, 0); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("%v: err=%v, want ErrInvalidSize", b, err)
		}
	}

	if _, err := New(BackendFFT, 100); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("fft non power of two err=%v, want ErrInvalidSize", err)
	}
	if _, err := New(Backend(42), 64); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("err=%v, want ErrUnknownBackend", err)
	}
}

func TestDSTLengthChecked(t *testing.T) {
	for _, b := range []Backend{BackendDirect, BackendFFT, BackendRealFFT} {
		tr, err := New(b, 16)
		if err != nil {
			t.Fatal(err)
		}
		if err := tr.DB(make([]float64, 8), make([]float64, 16)); err == nil {
			t.Fatalf("%v: expected dst length error", b)
		}
	}
}

func TestFastBackendsMatchDirect(t *testing.T) {
	tests := []struct {
		backend Backend
		sizes   []int
	}{
		{BackendFFT, []int{16, 64, 256, 1024}},
		{BackendRealFFT, []int{16, 100, 256, 441}},
	}

	for _, tt := range tests {
		for _, n := range tt.sizes {
			t.Run(tt.backend.String()+"/"+strconv.Itoa(n), func(t *testing.T) {
				frame := testutil.DeterministicNoise(int64(n), 8000, n)

				direct, _ := NewDFT(n)
				fast, err := New(tt.backend, n)
				if err != nil {
					t.Fatal(err)
				}

				want := make([]float64, direct.Bins())
				got := make([]float64, fast.Bins())
				if err := direct.DB(want, frame); err != nil {
					t.Fatal(err)
				}
				if err := fast.DB(got, frame); err != nil {
					t.Fatal(err)
				}

				testutil.RequireSpectraClose(t, got, want, FastToleranceDB, -100)
			})
		}
	}
}

func TestFastBackendsZeroExtend(t *testing.T) {
	frame := testutil.DeterministicNoise(7, 1000, 40)

	direct, _ := NewDFT(64)
	want := make([]float64, direct.Bins())
	_ = direct.DB(want, frame)

	for _, b := range []Backend{BackendFFT, BackendRealFFT} {
		t.Run(b.String(), func(t *testing.T) {
			fast, _ := New(b, 64)
			got := make([]float64, fast.Bins())
			if err := fast.DB(got, frame); err != nil {
				t.Fatal(err)
			}
			testutil.RequireSpectraClose(t, got, want, FastToleranceDB, -100)
		})
	}
}
