package ionex

import "math"

// maxQuantizationExponent bounds the exponent search for values whose
// binary representation never becomes integral.
const maxQuantizationExponent = 12

// Quantized is an exact decimal stored as value * 10^(-exponent).
// Grid coordinates and TEC estimates are kept quantized so that
// equality, ordering and map indexing are exact.
//
// Quantized values are canonicalized on construction: the smallest
// non-negative exponent is used, so two values representing the same
// real number are equal as Go values and usable as map keys.
type Quantized struct {
	// Value is the quantized value.
	Value int64

	// Exponent is the decimal scaling.
	Exponent int8
}

// FindExponent determines the best suited exponent to quantize the given value.
func FindExponent(value float64) int8 {
	val := value
	exponent := int8(0)
	for val != math.Trunc(val) && exponent < maxQuantizationExponent {
		val *= 10.0
		exponent++
	}
	return exponent
}

// NewQuantized quantizes value using the given decimal scaling.
func NewQuantized(value float64, exponent int8) Quantized {
	q := Quantized{
		Value:    int64(math.Round(value * math.Pow(10.0, float64(exponent)))),
		Exponent: exponent,
	}
	return q.normalized()
}

// AutoScaled quantizes the given value, automatically selecting the
// most appropriate scaling.
func AutoScaled(value float64) Quantized {
	return NewQuantized(value, FindExponent(value))
}

// normalized reduces to the canonical representation: the smallest
// non-negative exponent.
func (q Quantized) normalized() Quantized {
	for q.Exponent < 0 {
		q.Value *= 10
		q.Exponent++
	}
	for q.Exponent > 0 && q.Value%10 == 0 {
		q.Value /= 10
		q.Exponent--
	}
	return q
}

// Real returns the decoded value.
func (q Quantized) Real() float64 {
	return float64(q.Value) / math.Pow(10.0, float64(q.Exponent))
}

// Equal reports whether both quantized values decode to the same real number.
func (q Quantized) Equal(rhs Quantized) bool {
	return q.normalized() == rhs.normalized()
}

// Cmp compares the decoded values, returning -1, 0 or +1.
func (q Quantized) Cmp(rhs Quantized) int {
	a, b := q.Real(), rhs.Real()
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	default:
		return 0
	}
}
