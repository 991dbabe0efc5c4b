package ionex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindExponent(t *testing.T) {
	tests := []struct {
		value float64
		want  int8
	}{
		{5.0, 0},
		{5.5, 1},
		{0.5, 1},
		{1.25, 2},
		{0.25, 2},
		{0.333, 3},
		{-2.5, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FindExponent(tt.value), "value %g", tt.value)
	}
}

func TestQuantization(t *testing.T) {
	tests := []struct {
		value    float64
		exponent int8
	}{
		{1.0, 0},
		{1.0, 1},
		{1.1, 1},
		{1.25, 2},
		{1.333, 3},
		{-3.215, 3},
		{87.5, 1},
		{-180.0, 0},
	}
	for _, tt := range tests {
		q := NewQuantized(tt.value, tt.exponent)
		assert.Equal(t, tt.value, q.Real(), "%g 10**%d", tt.value, tt.exponent)
	}
}

func TestQuantizedOrdering(t *testing.T) {
	assert.Equal(t, +1, NewQuantized(1.0, 0).Cmp(NewQuantized(0.1, 0)))
	assert.Equal(t, -1, NewQuantized(1.0, 0).Cmp(NewQuantized(1.1, 1)))
	assert.Equal(t, +1, NewQuantized(1.12, 3).Cmp(NewQuantized(1.1, 1)))
	assert.Equal(t, +1, NewQuantized(1.101, 4).Cmp(NewQuantized(1.1, 1)))
	assert.Equal(t, -1, NewQuantized(-1.0, 1).Cmp(NewQuantized(0.0, 1)))
	assert.Equal(t, 0, NewQuantized(1.1, 1).Cmp(NewQuantized(1.1, 3)))
}

// Differently scaled constructions of the same real value must be the
// same Go value, so quantized coordinates index exactly in maps.
func TestQuantizedNormalization(t *testing.T) {
	assert.Equal(t, NewQuantized(85.0, 1), AutoScaled(85.0))
	assert.Equal(t, NewQuantized(87.5, 2), AutoScaled(87.5))
	assert.Equal(t, NewQuantized(-180.0, 1), AutoScaled(-180.0))
	assert.Equal(t, NewQuantized(350.0, 0), AutoScaled(350.0))
	assert.True(t, NewQuantized(1.1, 1).Equal(NewQuantized(1.1, 4)))

	// negative exponents reduce to the canonical form as well
	q := Quantized{Value: 3, Exponent: -1}.normalized()
	assert.Equal(t, Quantized{Value: 30, Exponent: 0}, q)
	assert.Equal(t, 30.0, q.Real())
}

func TestAutoScaled(t *testing.T) {
	for _, value := range []float64{0.0, 1.0, 9.2, -87.5, 350.0, 1.25} {
		assert.Equal(t, value, AutoScaled(value).Real(), "value %g", value)
	}
}
