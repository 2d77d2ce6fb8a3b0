package spectrogram

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
	"github.com/cwbudde/algo-spectrogram/dsp/spectrum"
)

// Summary describes the axes of a rendered spectrogram so consumers do not
// have to hardcode the frame interval or transform size. The level fields are
// nil when the input was not measured.
type Summary struct {
	Input         string   `yaml:"input,omitempty"`
	Output        string   `yaml:"output,omitempty"`
	SampleRate    int      `yaml:"sample_rate"`
	Window        string   `yaml:"window"`
	WindowSize    int      `yaml:"window_size"`
	WindowMs      float64  `yaml:"window_ms"`
	Stride        int      `yaml:"stride"`
	StrideMs      float64  `yaml:"stride_ms"`
	TransformSize int      `yaml:"transform_size"`
	Bins          int      `yaml:"bins"`
	BinWidthHz    float64  `yaml:"bin_width_hz"`
	Frames        int      `yaml:"frames"`
	Backend       string   `yaml:"backend"`
	PeakDBFS      *float64 `yaml:"peak_dbfs,omitempty"`
	RMSDBFS       *float64 `yaml:"rms_dbfs,omitempty"`
}

// NewSummary derives a Summary from a completed run.
func NewSummary(res Result) Summary {
	return Summary{
		SampleRate:    res.SampleRate,
		Window:        res.Window.String(),
		WindowSize:    res.WindowSize,
		WindowMs:      core.SamplesToMillis(res.WindowSize, res.SampleRate),
		Stride:        res.Stride,
		StrideMs:      core.SamplesToMillis(res.Stride, res.SampleRate),
		TransformSize: res.TransformSize,
		Bins:          res.Bins,
		BinWidthHz:    spectrum.BinFrequency(1, res.TransformSize, float64(res.SampleRate)),
		Frames:        res.Frames,
		Backend:       res.Backend.String(),
	}
}

// WriteSummary encodes s as YAML.
func WriteSummary(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("spectrogram: encode summary: %w", err)
	}
	return enc.Close()
}

// ReadSummary decodes a YAML summary, rejecting unknown fields.
func ReadSummary(r io.Reader) (Summary, error) {
	var s Summary
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Summary{}, fmt.Errorf("spectrogram: decode summary: %w", err)
	}
	return s, nil
}
