package spectrogram

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Sink receives spectrum rows in frame order. The row slice is reused by
// the pipeline after WriteRow returns; implementations that keep it must
// copy it.
type Sink interface {
	WriteRow(index int, row []float64) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(index int, row []float64) error

// WriteRow calls f.
func (f SinkFunc) WriteRow(index int, row []float64) error { return f(index, row) }

// Tee fans every row out to each sink in turn and stops at the first error.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(index int, row []float64) error {
		for _, s := range sinks {
			if err := s.WriteRow(index, row); err != nil {
				return err
			}
		}
		return nil
	})
}

// Matrix is an in-memory spectrogram: one row per frame, in frame order.
type Matrix struct {
	Rows [][]float64
}

// WriteRow appends a copy of row. index must equal the number of rows
// already stored.
func (m *Matrix) WriteRow(index int, row []float64) error {
	if index != len(m.Rows) {
		return fmt.Errorf("%w: got row %d, want %d", ErrOutOfOrder, index, len(m.Rows))
	}
	m.Rows = append(m.Rows, append([]float64(nil), row...))
	return nil
}

// Len returns the number of rows.
func (m *Matrix) Len() int { return len(m.Rows) }

// Bins returns the row length, or 0 for an empty matrix.
func (m *Matrix) Bins() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

// WriteTo renders the matrix with a TextWriter at DefaultPrecision.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	tw := NewTextWriter(w, DefaultPrecision)
	for i, row := range m.Rows {
		if err := tw.WriteRow(i, row); err != nil {
			return tw.Written(), err
		}
	}
	return tw.Written(), nil
}

// TextWriter formats rows as fixed-precision decimals separated by single
// spaces, one line per row. Each row is flushed before WriteRow returns so
// a reader of the output never sees a partial line from a finished row.
type TextWriter struct {
	w         *bufio.Writer
	precision int
	line      []byte
	written   int64
}

// NewTextWriter returns a TextWriter printing precision decimals. A
// negative precision selects DefaultPrecision.
func NewTextWriter(w io.Writer, precision int) *TextWriter {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return &TextWriter{w: bufio.NewWriter(w), precision: precision}
}

// WriteRow formats and flushes one row.
func (t *TextWriter) WriteRow(_ int, row []float64) error {
	line := t.line[:0]
	for k, v := range row {
		if k > 0 {
			line = append(line, ' ')
		}
		line = strconv.AppendFloat(line, v, 'f', t.precision, 64)
	}
	line = append(line, '\n')
	t.line = line

	n, err := t.w.Write(line)
	t.written += int64(n)
	if err != nil {
		return err
	}

	return t.w.Flush()
}

// Written returns the number of bytes written so far.
func (t *TextWriter) Written() int64 { return t.written }
