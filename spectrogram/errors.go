package spectrogram

import "errors"

var (
	// ErrConfig wraps every configuration violation.
	ErrConfig = errors.New("spectrogram: invalid configuration")
	// ErrUnsupportedStream reports a stream that is not mono 16-bit PCM
	// with a positive sample rate.
	ErrUnsupportedStream = errors.New("spectrogram: unsupported stream")
	// ErrOutOfOrder reports a row delivered to a Matrix out of frame order.
	ErrOutOfOrder = errors.New("spectrogram: row out of order")
)
