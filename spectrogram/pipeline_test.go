package spectrogram

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-spectrogram/audio/wav"
	"github.com/cwbudde/algo-spectrogram/dsp/spectrum"
	"github.com/cwbudde/algo-spectrogram/dsp/window"
	"github.com/cwbudde/algo-spectrogram/internal/testutil"
)

func testConfig(windowMs, transform, intervalMs int, kind string) Config {
	cfg := DefaultConfig()
	cfg.WindowSizeMs = windowMs
	cfg.TransformSize = transform
	cfg.FrameIntervalMs = intervalMs
	cfg.Window = kind
	return cfg
}

func runMatrix(t *testing.T, cfg Config, stream Stream) (*Matrix, Result) {
	t.Helper()

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m := &Matrix{}
	res, err := p.Run(context.Background(), stream, m)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	return m, res
}

func runText(t *testing.T, cfg Config, stream Stream) []byte {
	t.Helper()

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var buf bytes.Buffer
	if _, err := p.Run(context.Background(), stream, NewTextWriter(&buf, 6)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	return buf.Bytes()
}

func TestFrameCounts(t *testing.T) {
	// 1000 Hz makes one millisecond one sample.
	tests := []struct {
		name       string
		samples    int
		windowMs   int
		intervalMs int
		want       int
	}{
		{"exact multiple", 30, 10, 10, 3},
		{"remainder discarded", 35, 10, 10, 3},
		{"single window", 10, 10, 10, 1},
		{"shorter than window", 9, 10, 10, 0},
		{"half overlap", 100, 20, 10, 9},
		{"stride beyond window", 100, 10, 25, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.windowMs, 16, tt.intervalMs, "hamming")
			m, res := runMatrix(t, cfg, Mono16(1000, testutil.Ramp(tt.samples)))

			if res.Frames != tt.want || m.Len() != tt.want {
				t.Fatalf("frames=%d rows=%d, want %d", res.Frames, m.Len(), tt.want)
			}
			for i, row := range m.Rows {
				if len(row) != 9 {
					t.Fatalf("row %d has %d bins, want 9", i, len(row))
				}
			}
		})
	}
}

func TestResultGeometry(t *testing.T) {
	cfg := testConfig(25, 512, 10, "hanning")
	_, res := runMatrix(t, cfg, Mono16(44100, make([]int16, 44100)))

	// round(25*44.1) = 1103 (1102.5 rounds half away from zero), round(441) = 441.
	if res.WindowSize != 1103 || res.Stride != 441 {
		t.Fatalf("window=%d stride=%d, want 1103/441", res.WindowSize, res.Stride)
	}
	if res.Bins != 257 || res.TransformSize != 512 || res.SampleRate != 44100 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Window != window.TypeHann || res.Backend != spectrum.BackendDirect {
		t.Fatalf("window=%v backend=%v", res.Window, res.Backend)
	}
	if want := (44100-1103)/441 + 1; res.Frames != want {
		t.Fatalf("frames=%d, want %d", res.Frames, want)
	}
}

func TestSilenceYieldsFloor(t *testing.T) {
	m, _ := runMatrix(t, testConfig(8, 32, 4, "hamming"), Mono16(1000, make([]int16, 40)))

	for i, row := range m.Rows {
		for k, v := range row {
			if math.Abs(v-(-200)) > 1e-9 {
				t.Fatalf("row %d bin %d = %v, want -200", i, k, v)
			}
		}
	}
}

func TestRowsMatchManualComputation(t *testing.T) {
	samples := testutil.NoisePCM(21, 12000, 200)
	cfg := testConfig(50, 64, 30, "hamming")
	m, _ := runMatrix(t, cfg, Mono16(1000, samples))

	coeffs, _ := window.Generate(window.TypeHamming, 50)
	d, _ := spectrum.NewDFT(64)
	windowed := make([]float64, 50)
	want := make([]float64, d.Bins())

	for i, row := range m.Rows {
		off := i * 30
		if err := window.ApplyPCM(windowed, samples[off:off+50], coeffs); err != nil {
			t.Fatal(err)
		}
		if err := d.DB(want, windowed); err != nil {
			t.Fatal(err)
		}
		for k := range want {
			if row[k] != want[k] {
				t.Fatalf("row %d bin %d: %v, want %v", i, k, row[k], want[k])
			}
		}
	}
}

func TestSinusoidPeak(t *testing.T) {
	const rate = 8000

	samples := testutil.SinePCM(1000, rate, 10000, rate/2)
	m, _ := runMatrix(t, testConfig(32, 256, 16, "hanning"), Mono16(rate, samples))

	wantBin := 1000 * 256 / rate
	for i, row := range m.Rows {
		if got := spectrum.PeakBin(row); got != wantBin {
			t.Fatalf("row %d peak bin=%d, want %d", i, got, wantBin)
		}
		if row[wantBin] <= row[wantBin-1] || row[wantBin] <= row[wantBin+1] {
			t.Fatalf("row %d: peak not above neighbours", i)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	stream := Mono16(8000, testutil.NoisePCM(2, 15000, 4000))
	cfg := testConfig(20, 128, 5, "hanning")

	a := runText(t, cfg, stream)
	b := runText(t, cfg, stream)

	if !bytes.Equal(a, b) {
		t.Fatal("two runs over the same input differ")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	stream := Mono16(8000, testutil.NoisePCM(3, 15000, 6000))

	for _, backend := range []string{"direct", "fft", "realfft"} {
		cfg := testConfig(16, 128, 5, "hamming")
		cfg.Backend = backend
		want := runText(t, cfg, stream)

		for _, workers := range []int{2, 3, 8} {
			cfg.Workers = workers
			if got := runText(t, cfg, stream); !bytes.Equal(got, want) {
				t.Fatalf("backend=%s workers=%d output differs from sequential", backend, workers)
			}
		}
	}
}

func TestTransformSizeDiffersFromWindow(t *testing.T) {
	samples := testutil.NoisePCM(4, 8000, 120)

	// Zero extension: 40-sample window, 64-point transform.
	m, _ := runMatrix(t, testConfig(40, 64, 40, "rectangular"), Mono16(1000, samples))
	if m.Len() != 3 || m.Bins() != 33 {
		t.Fatalf("rows=%d bins=%d, want 3/33", m.Len(), m.Bins())
	}

	// Truncation: 40-sample window, 16-point transform.
	m, _ = runMatrix(t, testConfig(40, 16, 40, "rectangular"), Mono16(1000, samples))
	d, _ := spectrum.NewDFT(16)
	want := make([]float64, d.Bins())
	_ = d.DB(want, testutil.ToFloat(samples[:16]))
	testutil.RequireSliceNearlyEqual(t, m.Rows[0], want, 0)
}

func TestPositionedReaderMatchesMemory(t *testing.T) {
	samples := testutil.NoisePCM(5, 20000, 3000)
	path := testutil.WriteWAV(t, 8000, samples)

	f, err := wav.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	disk := Stream{
		SampleRate:    int(f.SampleRate),
		Channels:      int(f.Channels),
		BitsPerSample: int(f.BitsPerSample),
		Samples:       f.Reader(),
	}

	cfg := testConfig(30, 256, 10, "hamming")
	if !bytes.Equal(runText(t, cfg, disk), runText(t, cfg, Mono16(8000, samples))) {
		t.Fatal("positioned reader output differs from in-memory output")
	}
}

func TestUnsupportedStream(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Stream)
	}{
		{"stereo", func(s *Stream) { s.Channels = 2 }},
		{"8 bit", func(s *Stream) { s.BitsPerSample = 8 }},
		{"zero rate", func(s *Stream) { s.SampleRate = 0 }},
		{"no samples", func(s *Stream) { s.Samples = nil }},
	}

	p, err := New(testConfig(10, 16, 10, "hamming"))
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Mono16(1000, testutil.Ramp(100))
			tt.mutate(&s)

			called := false
			sink := SinkFunc(func(int, []float64) error {
				called = true
				return nil
			})

			_, err := p.Run(context.Background(), s, sink)
			if !errors.Is(err, ErrUnsupportedStream) {
				t.Fatalf("err=%v, want ErrUnsupportedStream", err)
			}
			if called {
				t.Fatal("sink received rows before validation failed")
			}
		})
	}
}

func TestGeometryErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		rate int
	}{
		{"window rounds to one sample", testConfig(1, 16, 1, "hamming"), 1000},
		{"interval rounds to zero", testConfig(10, 16, 1, "hamming"), 400},
		{"window above limit", func() Config {
			c := testConfig(100, 16, 10, "hamming")
			c.MaxWindowSize = 50
			return c
		}(), 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg)
			if err != nil {
				t.Fatal(err)
			}

			_, err = p.Run(context.Background(), Mono16(tt.rate, testutil.Ramp(1000)), &Matrix{})
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("err=%v, want ErrConfig", err)
			}
		})
	}
}

func TestUnknownWindowPolicy(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	cfg := testConfig(10, 16, 10, "blackman")
	p, err := New(cfg, WithLogger(logger))
	if err != nil {
		t.Fatalf("tolerant mode: %v", err)
	}
	if p.Window() != window.TypeRectangular {
		t.Fatalf("window=%v, want rectangular fallback", p.Window())
	}
	if !strings.Contains(logs.String(), "unknown window kind") {
		t.Fatalf("missing warning, logs: %q", logs.String())
	}

	cfg.StrictWindow = true
	if _, err := New(cfg); !errors.Is(err, ErrConfig) || !errors.Is(err, window.ErrUnknownType) {
		t.Fatalf("strict mode err=%v, want ErrConfig wrapping ErrUnknownType", err)
	}
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		cfg := testConfig(10, 16, 10, "hamming")
		cfg.Workers = workers
		p, _ := New(cfg)

		_, err := p.Run(ctx, Mono16(1000, testutil.Ramp(1000)), &Matrix{})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("workers=%d err=%v, want context.Canceled", workers, err)
		}
	}
}

func TestSinkErrorStopsRun(t *testing.T) {
	boom := errors.New("disk full")

	for _, workers := range []int{1, 3} {
		cfg := testConfig(10, 16, 10, "hamming")
		cfg.Workers = workers
		p, _ := New(cfg)

		sink := SinkFunc(func(index int, _ []float64) error {
			if index == 2 {
				return boom
			}
			return nil
		})

		res, err := p.Run(context.Background(), Mono16(1000, testutil.Ramp(100)), sink)
		if !errors.Is(err, boom) {
			t.Fatalf("workers=%d err=%v, want %v", workers, err, boom)
		}
		if res.Frames != 2 {
			t.Fatalf("workers=%d frames=%d, want 2", workers, res.Frames)
		}
	}
}

func TestDebugLogsPerFrame(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, _ := New(testConfig(10, 16, 10, "hamming"), WithLogger(logger))
	if _, err := p.Run(context.Background(), Mono16(1000, testutil.Ramp(30)), &Matrix{}); err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(logs.String(), "msg=frame "); got != 3 {
		t.Fatalf("got %d frame records, want 3:\n%s", got, logs.String())
	}
}
