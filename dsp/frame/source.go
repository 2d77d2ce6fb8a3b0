package frame

import (
	"fmt"
	"io"
)

// Frame is one full analysis window.
type Frame struct {
	// Index is the zero-based position of the frame in extraction order.
	Index int
	// Offset is the sample index of Samples[0] in the underlying stream.
	Offset int
	// Samples holds exactly the source's frame size values.
	Samples []int16
}

// Source is a cursor over a Reader that yields fixed-size frames.
//
// A Source is not safe for concurrent use.
type Source struct {
	r      Reader
	size   int
	stride int
	pos    int
	index  int
}

// New creates a Source yielding frames of size samples whose starts are
// stride samples apart.
func New(r Reader, size, stride int) (*Source, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	if size <= 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if stride <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStride, stride)
	}

	return &Source{r: r, size: size, stride: stride}, nil
}

// Size returns the frame size in samples.
func (s *Source) Size() int { return s.size }

// Stride returns the cursor advance between frames in samples.
func (s *Source) Stride() int { return s.stride }

// Pos returns the sample index the next frame will start at.
func (s *Source) Pos() int { return s.pos }

// Count returns the total number of full frames the source yields from the
// start of the stream.
func (s *Source) Count() int { return Count(s.r.Len(), s.size, s.stride) }

// Reset rewinds the cursor to the start of the stream.
func (s *Source) Reset() {
	s.pos = 0
	s.index = 0
}

// Next returns the frame at the cursor in a newly allocated slice and
// advances the cursor by stride. It returns io.EOF once fewer than size
// samples remain.
func (s *Source) Next() (Frame, error) {
	buf := make([]int16, s.size)
	return s.NextInto(buf)
}

// NextInto is like Next but reads into buf, which must hold at least size
// samples. The returned frame aliases buf.
func (s *Source) NextInto(buf []int16) (Frame, error) {
	if len(buf) < s.size {
		return Frame{}, fmt.Errorf("frame: buffer holds %d samples, need %d", len(buf), s.size)
	}
	if s.r.Len()-s.pos < s.size {
		return Frame{}, io.EOF
	}

	buf = buf[:s.size]
	n, err := s.r.ReadSamples(buf, s.pos)
	if err != nil {
		return Frame{}, err
	}
	if n < s.size {
		return Frame{}, io.EOF
	}

	f := Frame{Index: s.index, Offset: s.pos, Samples: buf}
	s.pos += s.stride
	s.index++

	return f, nil
}

// Count returns the number of full frames of size samples, stride apart,
// that fit in total samples.
func Count(total, size, stride int) int {
	if size <= 0 || stride <= 0 || total < size {
		return 0
	}
	return (total-size)/stride + 1
}
