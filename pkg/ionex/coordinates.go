package ionex

// QuantizedCoordinates is the spatial part of a record key: latitude
// and longitude in decimal degrees and altitude in kilometers, all
// quantized so coordinates index exactly.
type QuantizedCoordinates struct {
	latDdeg Quantized
	lonDdeg Quantized
	altKm   Quantized
}

// NewCoordinates builds coordinates from decimal degrees and
// kilometers, using the given quantization scaling per axis.
func NewCoordinates(latDdeg float64, latExponent int8, lonDdeg float64, lonExponent int8, altKm float64, altExponent int8) QuantizedCoordinates {
	return QuantizedCoordinates{
		latDdeg: NewQuantized(latDdeg, latExponent),
		lonDdeg: NewQuantized(lonDdeg, lonExponent),
		altKm:   NewQuantized(altKm, altExponent),
	}
}

// CoordinatesFromDegrees builds coordinates from decimal degrees and
// kilometers, automatically selecting the scaling per axis.
func CoordinatesFromDegrees(latDdeg, lonDdeg, altKm float64) QuantizedCoordinates {
	return QuantizedCoordinates{
		latDdeg: AutoScaled(latDdeg),
		lonDdeg: AutoScaled(lonDdeg),
		altKm:   AutoScaled(altKm),
	}
}

// coordinatesFromQuantized assembles coordinates from already
// quantized axis values.
func coordinatesFromQuantized(latDdeg, lonDdeg, altKm Quantized) QuantizedCoordinates {
	return QuantizedCoordinates{latDdeg: latDdeg, lonDdeg: lonDdeg, altKm: altKm}
}

// LatitudeDdeg returns the latitude in decimal degrees.
func (c QuantizedCoordinates) LatitudeDdeg() float64 {
	return c.latDdeg.Real()
}

// LongitudeDdeg returns the longitude in decimal degrees.
func (c QuantizedCoordinates) LongitudeDdeg() float64 {
	return c.lonDdeg.Real()
}

// AltitudeKm returns the altitude in kilometers.
func (c QuantizedCoordinates) AltitudeKm() float64 {
	return c.altKm.Real()
}

// Cmp orders coordinates lexicographically on the decoded
// (latitude, longitude, altitude) triple.
func (c QuantizedCoordinates) Cmp(rhs QuantizedCoordinates) int {
	if v := c.latDdeg.Cmp(rhs.latDdeg); v != 0 {
		return v
	}
	if v := c.lonDdeg.Cmp(rhs.lonDdeg); v != 0 {
		return v
	}
	return c.altKm.Cmp(rhs.altKm)
}
