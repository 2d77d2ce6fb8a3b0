package wav

import "errors"

var (
	// ErrNotRIFF reports a stream that does not start with a RIFF tag.
	ErrNotRIFF = errors.New("wav: missing RIFF tag")
	// ErrNotWAVE reports a RIFF stream whose form type is not WAVE.
	ErrNotWAVE = errors.New("wav: missing WAVE tag")
	// ErrMissingFormat reports a data chunk that precedes any "fmt " chunk,
	// or a "fmt " chunk too short to decode.
	ErrMissingFormat = errors.New("wav: missing fmt chunk")
	// ErrMissingData reports a stream that ends before the data chunk.
	ErrMissingData = errors.New("wav: missing data chunk")
	// ErrUnsupportedFormat reports a non-PCM format tag.
	ErrUnsupportedFormat = errors.New("wav: unsupported audio format")
)
