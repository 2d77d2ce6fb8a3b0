package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cwbudde/algo-spectrogram/audio/wav"
	"github.com/cwbudde/algo-spectrogram/dsp/frame"
	"github.com/cwbudde/algo-spectrogram/spectrogram"
	"github.com/cwbudde/algo-spectrogram/stats/level"
)

func run(ctx context.Context, stdout, stderr io.Writer, opts options) (err error) {
	logger := newLogger(opts.LogLevel, stderr)
	p := message.NewPrinter(language.English)

	pipe, err := spectrogram.New(opts.Config, spectrogram.WithLogger(logger))
	if err != nil {
		return err
	}

	in, err := wav.Open(opts.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	p.Fprintf(stdout, "Sample rate: %d, Channels: %d, Subchunk2 size: %d\n",
		in.SampleRate, in.Channels, in.DataSize)

	var samples frame.Reader = in.Reader()
	if opts.InMemory {
		all, err := in.ReadAll()
		if err != nil {
			return err
		}
		samples = all
	}

	stream := spectrogram.Stream{
		SampleRate:    int(in.SampleRate),
		Channels:      int(in.Channels),
		BitsPerSample: int(in.BitsPerSample),
		Samples:       samples,
	}
	if err := stream.Validate(); err != nil {
		return err
	}

	out, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("create %q: %w", opts.Output, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", opts.Output, cerr)
		}
		if err != nil {
			_ = os.Remove(opts.Output)
		}
	}()

	res, err := pipe.Run(ctx, stream, spectrogram.NewTextWriter(out, opts.Precision))
	if err != nil {
		return err
	}

	p.Fprintf(stdout, "Total samples: %d, Window size: %d, Frame interval: %d\n",
		samples.Len(), res.WindowSize, res.Stride)
	p.Fprintf(stdout, "%s window, %d-point %s transform, %d bins per frame\n",
		cases.Title(language.English).String(res.Window.String()), res.TransformSize, res.Backend, res.Bins)
	p.Fprintf(stdout, "Total frames processed: %d\n", res.Frames)

	lvl, err := level.Measure(samples)
	if err != nil {
		return err
	}
	p.Fprintf(stdout, "Input level: peak %.2f dBFS, RMS %.2f dBFS, %d clipped samples\n",
		lvl.PeakDBFS, lvl.RMSDBFS, lvl.Clipped)

	if opts.Summary != "" {
		s := spectrogram.NewSummary(res)
		s.Input = opts.Input
		s.Output = opts.Output
		s.PeakDBFS = &lvl.PeakDBFS
		s.RMSDBFS = &lvl.RMSDBFS
		if err := writeSummary(opts.Summary, s); err != nil {
			return err
		}
	}

	p.Fprintf(stdout, "Spectrogram saved to %s\n", opts.Output)

	return nil
}

func writeSummary(path string, s spectrogram.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	return errors.Join(spectrogram.WriteSummary(f, s), f.Close())
}

func newLogger(name string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(name) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
