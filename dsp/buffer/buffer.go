package buffer

// Buffer pairs a raw PCM frame with a float64 slice of the same length that
// holds the windowed samples.
type Buffer struct {
	pcm     []int16
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{
		pcm:     make([]int16, length),
		samples: make([]float64, length),
	}
}

// PCM returns the raw sample slice.
func (b *Buffer) PCM() []int16 {
	return b.pcm
}

// Samples returns the float64 working slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current length of both slices.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Resize sets the length of both slices to n, reusing capacity when possible.
// Elements exposed beyond the previous length are zeroed.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}

	old := len(b.samples)
	if n <= cap(b.samples) && n <= cap(b.pcm) {
		b.samples = b.samples[:n]
		b.pcm = b.pcm[:n]
	} else {
		samples := make([]float64, n)
		pcm := make([]int16, n)
		copy(samples, b.samples)
		copy(pcm, b.pcm)
		b.samples, b.pcm = samples, pcm
	}

	if n > old {
		clear(b.samples[old:])
		clear(b.pcm[old:])
	}
}

// Zero clears both slices.
func (b *Buffer) Zero() {
	clear(b.samples)
	clear(b.pcm)
}
