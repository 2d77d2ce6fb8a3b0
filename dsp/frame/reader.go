package frame

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader is an addressable, finite sequence of 16-bit samples.
type Reader interface {
	// Len returns the total number of samples.
	Len() int
	// ReadSamples copies samples starting at sample index off into dst and
	// returns the number of samples copied. Fewer than len(dst) samples are
	// returned only when the sequence ends; that is not an error.
	ReadSamples(dst []int16, off int) (int, error)
}

// Samples adapts an in-memory []int16 as a Reader.
type Samples []int16

// Len returns the sample count.
func (s Samples) Len() int { return len(s) }

// ReadSamples copies from the slice at off.
func (s Samples) ReadSamples(dst []int16, off int) (int, error) {
	if off < 0 || off > len(s) {
		return 0, fmt.Errorf("frame: offset %d out of range [0,%d]", off, len(s))
	}
	return copy(dst, s[off:]), nil
}

// PCMReader reads little-endian signed 16-bit samples from an io.ReaderAt.
//
// Each call issues one ReadAt at base + 2*off, which realizes overlapping
// frames as positioned re-reads instead of a retained buffer.
type PCMReader struct {
	r     io.ReaderAt
	base  int64
	count int
	raw   []byte
}

// NewPCMReader returns a reader over count samples stored at byte offset base.
func NewPCMReader(r io.ReaderAt, base int64, count int) *PCMReader {
	if count < 0 {
		count = 0
	}
	return &PCMReader{r: r, base: base, count: count}
}

// Len returns the sample count.
func (p *PCMReader) Len() int { return p.count }

// ReadSamples decodes samples starting at sample index off into dst.
func (p *PCMReader) ReadSamples(dst []int16, off int) (int, error) {
	if off < 0 || off > p.count {
		return 0, fmt.Errorf("frame: offset %d out of range [0,%d]", off, p.count)
	}

	n := min(len(dst), p.count-off)
	if n == 0 {
		return 0, nil
	}

	need := 2 * n
	if cap(p.raw) < need {
		p.raw = make([]byte, need)
	}
	raw := p.raw[:need]

	read, err := p.r.ReadAt(raw, p.base+2*int64(off))
	if read < need {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return read / 2, fmt.Errorf("frame: read %d samples at %d: %w", n, off, err)
	}

	for i := range n {
		dst[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}

	return n, nil
}
