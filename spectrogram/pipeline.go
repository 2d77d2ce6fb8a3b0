package spectrogram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-spectrogram/dsp/buffer"
	"github.com/cwbudde/algo-spectrogram/dsp/frame"
	"github.com/cwbudde/algo-spectrogram/dsp/spectrum"
	"github.com/cwbudde/algo-spectrogram/dsp/window"
)

// Result describes a completed run.
type Result struct {
	Frames        int
	Bins          int
	WindowSize    int
	Stride        int
	TransformSize int
	SampleRate    int
	Window        window.Type
	Backend       spectrum.Backend
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pipeline runs the frame → window → transform → sink loop for one Config.
// A Pipeline holds no per-run state and may be reused.
type Pipeline struct {
	cfg     Config
	window  window.Type
	backend spectrum.Backend
	logger  *slog.Logger
	pool    *buffer.Pool
}

// New validates cfg and returns a Pipeline. An unknown window name falls
// back to rectangular with a warning unless cfg.StrictWindow is set.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	cfg = cfg.withDefaults()

	p := &Pipeline{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
		pool:   buffer.NewPool(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	wt, err := window.Parse(cfg.Window)
	if err != nil {
		// Strict mode already failed in Validate.
		p.logger.Warn("unknown window kind, using rectangular", "window", cfg.Window)
	}
	p.window = wt

	p.backend, err = spectrum.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return p, nil
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Window returns the resolved window type.
func (p *Pipeline) Window() window.Type { return p.window }

// Backend returns the resolved transform backend.
func (p *Pipeline) Backend() spectrum.Backend { return p.backend }

// run carries the per-run state shared by the sequential and parallel loops.
type run struct {
	*Pipeline

	src    *frame.Source
	coeffs []float64
	sink   Sink
	res    Result
}

// Run validates stream, then emits one row per full frame to sink in frame
// order. It returns once the stream is exhausted, ctx is done or an error
// occurs. Nothing is written to sink if validation fails.
func (p *Pipeline) Run(ctx context.Context, stream Stream, sink Sink) (Result, error) {
	if sink == nil {
		return Result{}, errors.New("spectrogram: nil sink")
	}
	if err := stream.Validate(); err != nil {
		return Result{}, err
	}

	size, stride, err := p.cfg.Geometry(stream.SampleRate)
	if err != nil {
		return Result{}, err
	}

	coeffs, err := window.Generate(p.window, size)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	src, err := frame.New(stream.Samples, size, stride)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	r := &run{
		Pipeline: p,
		src:      src,
		coeffs:   coeffs,
		sink:     sink,
		res: Result{
			Bins:          spectrum.Bins(p.cfg.TransformSize),
			WindowSize:    size,
			Stride:        stride,
			TransformSize: p.cfg.TransformSize,
			SampleRate:    stream.SampleRate,
			Window:        p.window,
			Backend:       p.backend,
		},
	}

	p.logger.Info("spectrogram run",
		"sample_rate", stream.SampleRate,
		"samples", stream.Samples.Len(),
		"window", p.window.String(),
		"window_size", size,
		"stride", stride,
		"transform_size", p.cfg.TransformSize,
		"backend", p.backend.String(),
		"workers", p.cfg.Workers,
		"expected_frames", src.Count(),
	)

	if p.cfg.Workers > 1 {
		err = r.parallel(ctx, p.cfg.Workers)
	} else {
		err = r.sequential(ctx)
	}
	if err != nil {
		return r.res, err
	}

	p.logger.Info("spectrogram done", "frames", r.res.Frames)

	return r.res, nil
}

func (r *run) sequential(ctx context.Context) error {
	tr, err := spectrum.New(r.backend, r.cfg.TransformSize)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	buf := r.pool.Get(r.src.Size())
	defer r.pool.Put(buf)

	row := make([]float64, tr.Bins())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		f, err := r.src.NextInto(buf.PCM())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("spectrogram: frame %d: %w", r.res.Frames, err)
		}

		if err := r.transform(tr, buf.Samples(), f, row); err != nil {
			return err
		}
		if err := r.emit(ctx, f, row); err != nil {
			return err
		}
	}
}

// parallel reads up to workers frames per batch, transforms them
// concurrently with one transform and one scratch buffer per slot, and then
// emits the batch in frame order.
func (r *run) parallel(ctx context.Context, workers int) error {
	slots := make([]slot, workers)
	for i := range slots {
		tr, err := spectrum.New(r.backend, r.cfg.TransformSize)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
		slots[i] = slot{
			tr:  tr,
			buf: r.pool.Get(r.src.Size()),
			row: make([]float64, tr.Bins()),
		}
	}
	defer func() {
		for _, s := range slots {
			r.pool.Put(s.buf)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, done, err := r.fill(slots)
		if err != nil {
			return err
		}

		var g errgroup.Group
		for i := range n {
			s := &slots[i]
			g.Go(func() error {
				return r.transform(s.tr, s.buf.Samples(), s.frame, s.row)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i := range n {
			if err := r.emit(ctx, slots[i].frame, slots[i].row); err != nil {
				return err
			}
		}

		if done {
			return nil
		}
	}
}

type slot struct {
	tr    spectrum.Transform
	buf   *buffer.Buffer
	row   []float64
	frame frame.Frame
}

// fill reads frames into consecutive slots and reports how many were filled
// and whether the source is exhausted.
func (r *run) fill(slots []slot) (int, bool, error) {
	for i := range slots {
		f, err := r.src.NextInto(slots[i].buf.PCM())
		if errors.Is(err, io.EOF) {
			return i, true, nil
		}
		if err != nil {
			return i, false, fmt.Errorf("spectrogram: frame %d: %w", r.res.Frames+i, err)
		}
		slots[i].frame = f
	}
	return len(slots), false, nil
}

func (r *run) transform(tr spectrum.Transform, windowed []float64, f frame.Frame, row []float64) error {
	if err := window.ApplyPCM(windowed, f.Samples, r.coeffs); err != nil {
		return fmt.Errorf("spectrogram: window frame %d: %w", f.Index, err)
	}
	if err := tr.DB(row, windowed); err != nil {
		return fmt.Errorf("spectrogram: transform frame %d: %w", f.Index, err)
	}
	return nil
}

func (r *run) emit(ctx context.Context, f frame.Frame, row []float64) error {
	if r.logger.Enabled(ctx, slog.LevelDebug) {
		peak := spectrum.PeakBin(row)
		r.logger.Debug("frame",
			"index", f.Index,
			"offset", f.Offset,
			"samples", len(f.Samples),
			"head", f.Samples[:min(len(f.Samples), 10)],
			"peak_bin", peak,
			"peak_db", row[peak],
		)
	}

	if err := r.sink.WriteRow(f.Index, row); err != nil {
		return fmt.Errorf("spectrogram: write row %d: %w", f.Index, err)
	}
	r.res.Frames++

	return nil
}
