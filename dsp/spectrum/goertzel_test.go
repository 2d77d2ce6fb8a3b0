package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectrogram/internal/testutil"
)

func TestGoertzelMatchesDFT(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		frame []float64
	}{
		{"noise-64", 64, testutil.DeterministicNoise(11, 2000, 64)},
		{"noise-odd", 75, testutil.DeterministicNoise(12, 2000, 75)},
		{"short-frame", 128, testutil.DeterministicNoise(13, 2000, 90)},
		{"long-frame", 32, testutil.DeterministicNoise(14, 2000, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := NewDFT(tt.n)
			want := make([]float64, d.Bins())
			if err := d.DB(want, tt.frame); err != nil {
				t.Fatal(err)
			}

			for k := range want {
				got, err := BinDB(tt.frame, k, tt.n)
				if err != nil {
					t.Fatal(err)
				}
				if want[k] < -100 {
					continue
				}
				if math.Abs(got-want[k]) > FastToleranceDB {
					t.Fatalf("bin %d: goertzel=%.10f dft=%.10f", k, got, want[k])
				}
			}
		})
	}
}

func TestGoertzelSilence(t *testing.T) {
	got, err := BinDB(make([]float64, 16), 3, 16)
	if err != nil {
		t.Fatal(err)
	}
	if got != FloorDB {
		t.Fatalf("got %v, want floor %v", got, FloorDB)
	}
}

func TestGoertzelValidation(t *testing.T) {
	if _, err := NewGoertzel(0, 0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := NewGoertzel(9, 16); err == nil {
		t.Fatal("expected error for bin above N/2")
	}
	if _, err := NewGoertzel(-1, 16); err == nil {
		t.Fatal("expected error for negative bin")
	}
}

func TestGoertzelReuse(t *testing.T) {
	g, _ := NewGoertzel(4, 32)
	frame := testutil.DeterministicSine(4, 32, 100, 32)

	g.Process(frame)
	first := g.Power()
	g.Process(frame)

	if g.Power() != first {
		t.Fatalf("Process is not idempotent: %v vs %v", g.Power(), first)
	}
	if math.Abs(g.Magnitude()-1600) > 1e-6 {
		t.Fatalf("magnitude=%v, want 1600", g.Magnitude())
	}
}
