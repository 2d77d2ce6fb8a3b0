package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// FitInto copies the first min(len(dst), len(src)) values of src into dst and
// zeroes the remainder of dst. It returns the number of copied values.
func FitInto(dst, src []float64) int {
	n := copy(dst, src)
	Zero(dst[n:])
	return n
}
