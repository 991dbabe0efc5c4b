package ionex

import (
	"fmt"
	"math"
)

// spacingEps is the tolerance used when checking that an axis width is
// an integer multiple of its spacing.
const spacingEps = 1e-9

// Linspace is a regular linear space as used in IONEX grid
// definitions, ranging from Start to End (included) with the given
// point spacing. A single-point axis has Start == End and zero
// spacing.
type Linspace struct {
	// Start is the first value.
	Start float64

	// End is the last value (included).
	End float64

	// Spacing is the increment between two points.
	Spacing float64
}

// NewLinspace builds a new linear space. The width must be an integer
// multiple of the spacing, unless the axis degenerates to a single
// point (Start == End, zero spacing).
func NewLinspace(start, end, spacing float64) (Linspace, error) {
	if start == end && spacing == 0.0 {
		return Linspace{Start: start, End: end}, nil
	}
	if spacing == 0.0 {
		return Linspace{}, fmt.Errorf("%w: null spacing over (%g, %g)", ErrInvalidGridDefinition, start, end)
	}
	steps := (end - start) / spacing
	if math.Abs(steps-math.Round(steps)) > spacingEps {
		return Linspace{}, fmt.Errorf("%w: (%g, %g, %g)", ErrInvalidGridDefinition, start, end, spacing)
	}
	if steps < 0 {
		return Linspace{}, fmt.Errorf("%w: spacing sign over (%g, %g, %g)", ErrInvalidGridDefinition, start, end, spacing)
	}
	return Linspace{Start: start, End: end, Spacing: spacing}, nil
}

// IsSinglePoint reports whether the axis is a degenerate single point.
func (l Linspace) IsSinglePoint() bool {
	return l.Start == l.End && l.Spacing == 0.0
}

// Width returns the total axis width.
func (l Linspace) Width() float64 {
	return l.End - l.Start
}

// Length returns the number of steps between Start and End.
func (l Linspace) Length() int {
	if l.Spacing == 0.0 {
		return 0
	}
	return int(math.Floor((l.End - l.Start) / l.Spacing))
}

// NumPoints returns the number of grid points, both bounds included.
func (l Linspace) NumPoints() int {
	return l.Length() + 1
}

// Min returns the smallest of both bounds.
func (l Linspace) Min() float64 {
	return math.Min(l.Start, l.End)
}

// Max returns the largest of both bounds.
func (l Linspace) Max() float64 {
	return math.Max(l.Start, l.End)
}

// MinMax returns the ordered (smallest, largest) bounds.
func (l Linspace) MinMax() (float64, float64) {
	return l.Min(), l.Max()
}

// NearestLower returns the largest grid point below or at p,
// or false if p lies below the axis.
func (l Linspace) NearestLower(p float64) (float64, bool) {
	lo, hi := l.MinMax()
	if p < lo {
		return 0, false
	}
	if l.IsSinglePoint() {
		return lo, true
	}
	step := math.Abs(l.Spacing)
	k := math.Floor((p - lo) / step)
	point := lo + k*step
	if point > hi {
		return hi, true
	}
	return point, true
}

// NearestAbove returns the smallest grid point above NearestLower(p),
// or false if p lies below the axis or no grid point lies above
// NearestLower(p) (p at or beyond the last point).
func (l Linspace) NearestAbove(p float64) (float64, bool) {
	lower, ok := l.NearestLower(p)
	if !ok {
		return 0, false
	}
	point := lower + math.Abs(l.Spacing)
	if point > l.Max() {
		return 0, false
	}
	return point, true
}

// Quantize returns the grid points as quantized values, in axis order
// (from Start towards End, following the spacing sign).
func (l Linspace) Quantize() []Quantized {
	if l.IsSinglePoint() {
		return []Quantized{AutoScaled(l.Start)}
	}
	exponent := FindExponent(l.Spacing)
	points := make([]Quantized, 0, l.NumPoints())
	for i := 0; i <= l.Length(); i++ {
		points = append(points, NewQuantized(l.Start+float64(i)*l.Spacing, exponent))
	}
	return points
}

// SortedPoints returns the grid point values in ascending order.
func (l Linspace) SortedPoints() []float64 {
	quantized := l.Quantize()
	points := make([]float64, len(quantized))
	if l.Spacing < 0 {
		for i, q := range quantized {
			points[len(points)-1-i] = q.Real()
		}
	} else {
		for i, q := range quantized {
			points[i] = q.Real()
		}
	}
	return points
}

// StretchMut stretches the axis dimensions by a positive, possibly
// fractional factor, preserving the point spacing.
// To modify the sampling, use ResampleMut.
func (l *Linspace) StretchMut(factor float64) error {
	if factor <= 0.0 || math.IsNaN(factor) {
		return ErrNegativeStretchFactor
	}
	l.Start *= factor
	l.End *= factor
	return nil
}

// Stretched returns a stretched copy of the axis. See StretchMut.
func (l Linspace) Stretched(factor float64) (Linspace, error) {
	s := l
	if err := s.StretchMut(factor); err != nil {
		return Linspace{}, err
	}
	return s, nil
}

// ResampleMut modifies the point spacing by a positive, possibly
// fractional factor, preserving the axis dimensions.
// To modify the dimensions, use StretchMut.
func (l *Linspace) ResampleMut(factor float64) error {
	if factor <= 0.0 || math.IsNaN(factor) {
		return ErrNegativeStretchFactor
	}
	l.Spacing *= factor
	return nil
}

// Resampled returns a resampled copy of the axis. See ResampleMut.
func (l Linspace) Resampled(factor float64) (Linspace, error) {
	s := l
	if err := s.ResampleMut(factor); err != nil {
		return Linspace{}, err
	}
	return s, nil
}
