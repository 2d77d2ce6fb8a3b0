package spectrogram

import (
	"fmt"

	"github.com/cwbudde/algo-spectrogram/dsp/frame"
)

// Stream is the input of one run: an addressable mono 16-bit sample
// sequence tagged with its geometry.
type Stream struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	Samples       frame.Reader
}

// Validate reports ErrUnsupportedStream unless s is mono 16-bit PCM with a
// positive sample rate and a sample source.
func (s Stream) Validate() error {
	switch {
	case s.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedStream, s.SampleRate)
	case s.Channels != 1:
		return fmt.Errorf("%w: %d channels, only mono is supported", ErrUnsupportedStream, s.Channels)
	case s.BitsPerSample != 16:
		return fmt.Errorf("%w: %d bits per sample, only 16 is supported", ErrUnsupportedStream, s.BitsPerSample)
	case s.Samples == nil:
		return fmt.Errorf("%w: no samples", ErrUnsupportedStream)
	}
	return nil
}

// Mono16 wraps in-memory samples as a mono 16-bit Stream.
func Mono16(sampleRate int, samples []int16) Stream {
	return Stream{
		SampleRate:    sampleRate,
		Channels:      1,
		BitsPerSample: 16,
		Samples:       frame.Samples(samples),
	}
}
