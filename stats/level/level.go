// Package level measures the level of a 16-bit PCM stream relative to
// digital full scale.
//
// The CLI reports these figures next to the spectrogram so a flat -200 dB
// matrix can be told apart from a broken run: silence shows up as a floor
// level here as well.
package level

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
	"github.com/cwbudde/algo-spectrogram/dsp/frame"
)

const (
	// FullScale is the magnitude of the most negative int16 sample.
	FullScale = 32768

	// Floor keeps dBFS values finite for silent input.
	Floor = 1e-10

	// chunk is the number of samples Measure reads per call.
	chunk = 4096
)

// Level summarizes a PCM stream. Linear values are normalized to full scale.
type Level struct {
	Samples  int
	Peak     float64
	PeakDBFS float64
	RMS      float64
	RMSDBFS  float64
	DC       float64
	CrestDB  float64
	// ZeroCrossings counts sign changes between non-zero samples.
	ZeroCrossings int
	// Clipped counts samples at either int16 extreme.
	Clipped int
}

// Meter accumulates level statistics across blocks.
type Meter struct {
	n         int
	sum       float64
	sumSq     float64
	peak      int
	clipped   int
	crossings int
	// lastSign is the sign of the most recent non-zero sample, 0 before one.
	lastSign int
}

// Update adds a block of samples.
func (m *Meter) Update(samples []int16) {
	for _, s := range samples {
		x := float64(s)
		m.sum += x
		m.sumSq += x * x

		a := int(s)
		if a < 0 {
			a = -a
		}
		m.peak = max(m.peak, a)

		if s == math.MaxInt16 || s == math.MinInt16 {
			m.clipped++
		}
		if sign := cmpSign(s); sign != 0 {
			if m.lastSign != 0 && sign != m.lastSign {
				m.crossings++
			}
			m.lastSign = sign
		}

		m.n++
	}
}

func cmpSign(s int16) int {
	switch {
	case s > 0:
		return 1
	case s < 0:
		return -1
	}
	return 0
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}

// Result returns the statistics of everything passed to Update.
func (m *Meter) Result() Level {
	if m.n == 0 {
		floor := core.AmplitudeToDB(0, Floor)
		return Level{PeakDBFS: floor, RMSDBFS: floor}
	}

	nf := float64(m.n)
	peak := float64(m.peak) / FullScale
	rms := math.Sqrt(m.sumSq/nf) / FullScale

	l := Level{
		Samples:       m.n,
		Peak:          peak,
		PeakDBFS:      core.AmplitudeToDB(peak, Floor),
		RMS:           rms,
		RMSDBFS:       core.AmplitudeToDB(rms, Floor),
		DC:            m.sum / nf / FullScale,
		ZeroCrossings: m.crossings,
		Clipped:       m.clipped,
	}
	if rms > 0 {
		l.CrestDB = 20 * math.Log10(peak/rms)
	}

	return l
}

// Measure reads every sample of r in fixed-size chunks.
func Measure(r frame.Reader) (Level, error) {
	var m Meter

	buf := make([]int16, chunk)
	for off := 0; off < r.Len(); {
		n, err := r.ReadSamples(buf, off)
		if err != nil {
			return Level{}, fmt.Errorf("level: read at %d: %w", off, err)
		}
		if n == 0 {
			break
		}
		m.Update(buf[:n])
		off += n
	}

	return m.Result(), nil
}
