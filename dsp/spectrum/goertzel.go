package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// Goertzel evaluates a single bin k of a size-N transform with the
// second-order Goertzel recurrence.
//
// Frames follow the same rules as the full transforms: samples beyond N are
// ignored and frames shorter than N are zero-extended. After Process the
// squared magnitude equals |X[k]|^2 of the direct DFT up to rounding.
type Goertzel struct {
	bin    int
	n      int
	coeff  float64
	s0, s1 float64
}

// NewGoertzel creates an analyzer for bin k of a transform of size n.
// k must lie in [0, n/2].
func NewGoertzel(k, n int) (*Goertzel, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	if k < 0 || k > n/2 {
		return nil, fmt.Errorf("spectrum: bin %d outside [0,%d]", k, n/2)
	}

	return &Goertzel{
		bin:   k,
		n:     n,
		coeff: 2 * math.Cos(2*math.Pi*float64(k)/float64(n)),
	}, nil
}

// Bin returns the analyzed bin index.
func (g *Goertzel) Bin() int { return g.bin }

// Reset clears the recurrence state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// Process resets the state and runs exactly N steps over frame.
func (g *Goertzel) Process(frame []float64) {
	g.Reset()

	s0, s1 := 0.0, 0.0
	coeff := g.coeff
	for i := range g.n {
		x := 0.0
		if i < len(frame) {
			x = frame[i]
		}
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

// Power returns |X[k]|^2 for the last processed frame.
func (g *Goertzel) Power() float64 {
	p := g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
	return math.Max(p, 0)
}

// Magnitude returns |X[k]|.
func (g *Goertzel) Magnitude() float64 {
	return math.Sqrt(g.Power())
}

// DB returns the bin level on the same scale as Transform.DB.
func (g *Goertzel) DB() float64 {
	return core.AmplitudeToDB(g.Magnitude(), Epsilon)
}

// BinDB computes the dB level of bin k of a size-n transform of frame in one shot.
func BinDB(frame []float64, k, n int) (float64, error) {
	g, err := NewGoertzel(k, n)
	if err != nil {
		return 0, err
	}
	g.Process(frame)
	return g.DB(), nil
}
