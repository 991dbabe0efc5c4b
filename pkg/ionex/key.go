package ionex

import (
	"math"
	"time"
)

// Key indexes a TEC estimate within a Record: the observation instant
// plus the quantized coordinates of the grid point.
type Key struct {
	// Epoch of the attached TEC estimation, in UTC.
	Epoch time.Time

	// Coordinates of the attached TEC estimate.
	Coordinates QuantizedCoordinates
}

// NewKey creates an index key from an epoch, latitude and longitude in
// decimal degrees and altitude in kilometers.
func NewKey(epoch time.Time, latDdeg, lonDdeg, altKm float64) Key {
	return Key{
		Epoch:       epoch,
		Coordinates: CoordinatesFromDegrees(latDdeg, lonDdeg, altKm),
	}
}

// NewKeyRadians creates an index key from an epoch, latitude and
// longitude angles in radians and altitude in kilometers.
func NewKeyRadians(epoch time.Time, latRad, lonRad, altKm float64) Key {
	return NewKey(epoch, latRad*180.0/math.Pi, lonRad*180.0/math.Pi, altKm)
}

// LatitudeDdeg returns the latitude in decimal degrees.
func (k Key) LatitudeDdeg() float64 {
	return k.Coordinates.LatitudeDdeg()
}

// LongitudeDdeg returns the longitude in decimal degrees.
func (k Key) LongitudeDdeg() float64 {
	return k.Coordinates.LongitudeDdeg()
}

// AltitudeKm returns the altitude in kilometers.
func (k Key) AltitudeKm() float64 {
	return k.Coordinates.AltitudeKm()
}

// Less orders keys chronologically first, then spatially.
func (k Key) Less(rhs Key) bool {
	if !k.Epoch.Equal(rhs.Epoch) {
		return k.Epoch.Before(rhs.Epoch)
	}
	return k.Coordinates.Cmp(rhs.Coordinates) < 0
}
