package wav

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/algo-spectrogram/dsp/frame"
)

// File is an opened WAV file positioned-read through its *os.File.
type File struct {
	Header

	f    *os.File
	path string
	size int64
}

// Open opens path and decodes its header.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	h, err := ReadHeader(bufio.NewReader(f))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}

	return &File{Header: h, f: f, path: path, size: info.Size()}, nil
}

// Path returns the path the file was opened from.
func (w *File) Path() string { return w.path }

// NumSamples returns the number of whole samples actually present. A data
// chunk that declares more bytes than the file holds is clamped to the file.
func (w *File) NumSamples() int {
	n := w.Header.NumSamples()

	avail := w.size - w.DataOffset
	if avail < 0 {
		return 0
	}

	align := int64(w.frameSize())
	if align <= 0 {
		return 0
	}

	return min(n, int(avail/align))
}

// Reader returns a positioned reader over the payload. Each call returns an
// independent reader; a single reader is not safe for concurrent use.
func (w *File) Reader() *frame.PCMReader {
	return frame.NewPCMReader(w.f, w.DataOffset, w.NumSamples())
}

// ReadAll loads the whole payload into memory.
func (w *File) ReadAll() (frame.Samples, error) {
	out := make(frame.Samples, w.NumSamples())

	n, err := w.Reader().ReadSamples(out, 0)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", w.path, err)
	}

	return out[:n], nil
}

// Close closes the underlying file.
func (w *File) Close() error {
	return w.f.Close()
}
