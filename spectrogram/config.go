package spectrogram

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
	"github.com/cwbudde/algo-spectrogram/dsp/spectrum"
	"github.com/cwbudde/algo-spectrogram/dsp/window"
)

const (
	// DefaultMaxWindowSize caps the analysis window in samples.
	DefaultMaxWindowSize = 1 << 20
	// DefaultMaxTransformSize caps the transform size.
	DefaultMaxTransformSize = 1 << 16
	// DefaultPrecision is the number of decimals TextWriter prints.
	DefaultPrecision = 2
)

// Config describes one spectrogram run.
type Config struct {
	// WindowSizeMs is the analysis window length in milliseconds.
	WindowSizeMs int `mapstructure:"window_size_ms" yaml:"window_size_ms"`
	// Window names the taper: rectangular, hamming or hanning.
	Window string `mapstructure:"window" yaml:"window"`
	// TransformSize is the DFT size N. The output has N/2+1 bins.
	TransformSize int `mapstructure:"transform_size" yaml:"transform_size"`
	// FrameIntervalMs is the hop between frame starts in milliseconds.
	FrameIntervalMs int `mapstructure:"frame_interval_ms" yaml:"frame_interval_ms"`

	// Backend selects the transform: direct (default), fft or realfft.
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Workers > 1 computes the transforms of each batch concurrently.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// StrictWindow turns an unknown window name into a configuration error
	// instead of a rectangular fallback.
	StrictWindow bool `mapstructure:"strict_window" yaml:"strict_window"`

	MaxWindowSize    int `mapstructure:"max_window_size" yaml:"max_window_size"`
	MaxTransformSize int `mapstructure:"max_transform_size" yaml:"max_transform_size"`
}

// DefaultConfig returns a Config with the allocation bounds and defaults
// filled in. Window sizes and intervals are left for the caller.
func DefaultConfig() Config {
	return Config{
		Window:           window.TypeRectangular.String(),
		Backend:          spectrum.BackendDirect.String(),
		Workers:          1,
		MaxWindowSize:    DefaultMaxWindowSize,
		MaxTransformSize: DefaultMaxTransformSize,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxWindowSize == 0 {
		c.MaxWindowSize = DefaultMaxWindowSize
	}
	if c.MaxTransformSize == 0 {
		c.MaxTransformSize = DefaultMaxTransformSize
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	return c
}

// Validate checks the rate-independent parts of c and reports every
// violation at once. The returned error wraps ErrConfig.
func (c Config) Validate() error {
	var errs []error

	if c.WindowSizeMs <= 0 {
		errs = append(errs, fmt.Errorf("window_size_ms %d must be > 0", c.WindowSizeMs))
	}
	if c.FrameIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("frame_interval_ms %d must be > 0", c.FrameIntervalMs))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must be >= 0", c.Workers))
	}
	if c.MaxWindowSize <= 0 {
		errs = append(errs, fmt.Errorf("max_window_size %d must be > 0", c.MaxWindowSize))
	}
	if c.MaxTransformSize <= 0 {
		errs = append(errs, fmt.Errorf("max_transform_size %d must be > 0", c.MaxTransformSize))
	}

	switch {
	case c.TransformSize <= 0:
		errs = append(errs, fmt.Errorf("transform_size %d must be > 0", c.TransformSize))
	case c.MaxTransformSize > 0 && c.TransformSize > c.MaxTransformSize:
		errs = append(errs, fmt.Errorf("transform_size %d exceeds limit %d", c.TransformSize, c.MaxTransformSize))
	}

	backend, err := spectrum.ParseBackend(c.Backend)
	if err != nil {
		errs = append(errs, err)
	} else if backend == spectrum.BackendFFT && c.TransformSize > 0 && !core.IsPowerOfTwo(c.TransformSize) {
		errs = append(errs, fmt.Errorf("transform_size %d must be a power of two for backend %s", c.TransformSize, backend))
	}

	if c.StrictWindow {
		if _, err := window.Parse(c.Window); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrConfig, errors.Join(errs...))
}

// Geometry resolves the millisecond durations against sampleRate and
// checks the resulting sizes against the allocation bounds.
func (c Config) Geometry(sampleRate int) (windowSize, stride int, err error) {
	windowSize = core.MillisToSamples(float64(c.WindowSizeMs), sampleRate)
	stride = core.MillisToSamples(float64(c.FrameIntervalMs), sampleRate)

	var errs []error
	if windowSize <= 1 {
		errs = append(errs, fmt.Errorf("window of %d ms at %d Hz is %d samples, need > 1", c.WindowSizeMs, sampleRate, windowSize))
	}
	if windowSize > c.MaxWindowSize {
		errs = append(errs, fmt.Errorf("window of %d samples exceeds limit %d", windowSize, c.MaxWindowSize))
	}
	if stride <= 0 {
		errs = append(errs, fmt.Errorf("frame interval of %d ms at %d Hz is %d samples, need > 0", c.FrameIntervalMs, sampleRate, stride))
	}

	if len(errs) > 0 {
		return 0, 0, fmt.Errorf("%w: %w", ErrConfig, errors.Join(errs...))
	}

	return windowSize, stride, nil
}
