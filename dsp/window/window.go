package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHamming
	TypeHann
)

// Types lists every supported window type in declaration order.
var Types = []Type{TypeRectangular, TypeHamming, TypeHann}

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name                string
	ENBW                float64
	HighestSidelobe     float64
	CoherentGain        float64
	CoherentGainSquared float64
}

var metadataByType = map[Type]Metadata{
	TypeRectangular: {Name: "rectangular", ENBW: 1, HighestSidelobe: -13.26, CoherentGain: 1, CoherentGainSquared: 1},
	TypeHamming:     {Name: "hamming", ENBW: 1.3628, HighestSidelobe: -42.68, CoherentGain: 0.54, CoherentGainSquared: 0.2916},
	TypeHann:        {Name: "hanning", ENBW: 1.5, HighestSidelobe: -31.47, CoherentGain: 0.5, CoherentGainSquared: 0.25},
}

var aliases = map[string]Type{
	"rectangular": TypeRectangular,
	"rect":        TypeRectangular,
	"none":        TypeRectangular,
	"hamming":     TypeHamming,
	"hanning":     TypeHann,
	"hann":        TypeHann,
}

// String returns the canonical window name.
func (t Type) String() string {
	if m, ok := metadataByType[t]; ok {
		return m.Name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Parse resolves a window name case-insensitively.
//
// Unknown names resolve to TypeRectangular and return an error wrapping
// ErrUnknownType, leaving the fallback policy to the caller: use the returned
// type to stay tolerant, or treat the error as fatal.
func Parse(name string) (Type, error) {
	if t, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return TypeRectangular, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
//
// The symmetric form divides the phase by size-1, so sizes below 2 are
// rejected with ErrInvalidSize.
func Generate(t Type, size int, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	den := float64(size - 1)
	if cfg.periodic {
		den = float64(size)
	}

	out := make([]float64, size)
	for i := range out {
		out[i] = coefficient(t, float64(i), den)
	}

	return out, nil
}

// Coefficient returns the symmetric coefficient at index i of a window of
// the given size. It is the scalar form of Generate.
func Coefficient(t Type, i, size int) float64 {
	if size <= 1 {
		return 1
	}
	return coefficient(t, float64(i), float64(size-1))
}

func coefficient(t Type, i, den float64) float64 {
	switch t {
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(2*math.Pi*i/den)
	case TypeHann:
		return 0.5 * (1 - math.Cos(2*math.Pi*i/den))
	default:
		return 1
	}
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) error {
	coeffs, err := Generate(t, len(buf), opts...)
	if err != nil {
		return err
	}

	vecmath.MulBlockInPlace(buf, coeffs)

	return nil
}

// ApplyPCM widens a raw 16-bit frame into dst and multiplies it by coeffs.
// dst, frame and coeffs must have the same length.
func ApplyPCM(dst []float64, frame []int16, coeffs []float64) error {
	if len(dst) != len(frame) || len(frame) != len(coeffs) {
		return errMismatchedLength
	}

	for i, s := range frame {
		dst[i] = float64(s)
	}

	vecmath.MulBlockInPlace(dst, coeffs)

	return nil
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}
