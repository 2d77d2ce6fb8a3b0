package frame

import "errors"

var (
	// ErrInvalidSize reports a frame size below two samples.
	ErrInvalidSize = errors.New("frame size must be > 1")
	// ErrInvalidStride reports a stride that would not advance the cursor.
	ErrInvalidStride = errors.New("frame stride must be > 0")
	// ErrNilReader reports a Source constructed without a sample reader.
	ErrNilReader = errors.New("frame reader must not be nil")
)
