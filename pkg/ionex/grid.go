package ionex

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid describes the latitude, longitude and altitude linear spaces
// defining the entire map.
type Grid struct {
	// Latitude axis, in decimal degrees.
	Latitude Linspace

	// Longitude axis, in decimal degrees.
	Longitude Linspace

	// Altitude axis, in kilometers.
	Altitude Linspace
}

// Is2D reports whether the grid describes fixed-altitude maps,
// which is the case when the altitude axis is a single point.
func (g Grid) Is2D() bool {
	return g.Altitude.IsSinglePoint()
}

// Is3D reports whether the grid describes maps at several altitudes.
func (g Grid) Is3D() bool {
	return !g.Is2D()
}

// WithLatitude returns a copy of the grid with an updated latitude axis.
func (g Grid) WithLatitude(l Linspace) Grid {
	g.Latitude = l
	return g
}

// WithLongitude returns a copy of the grid with an updated longitude axis.
func (g Grid) WithLongitude(l Linspace) Grid {
	g.Longitude = l
	return g
}

// WithAltitude returns a copy of the grid with an updated altitude axis.
func (g Grid) WithAltitude(l Linspace) Grid {
	g.Altitude = l
	return g
}

// gridSpec is the per-row axis declaration carried by a
// LAT/LON1/LON2/DLON/H body line: the latitude and altitude of the
// next row of samples and its longitude axis.
type gridSpec struct {
	latDdeg   float64
	altKm     float64
	longitude Linspace
}

// parseGridSpec parses a grid-spec from the 60 content columns of a
// LAT/LON1/LON2/DLON/H line. The five fields live in six-wide columns
// at offsets 2, 8, 14, 20 and 26.
func parseGridSpec(content string) (gridSpec, error) {
	if len(content) < 32 {
		return gridSpec{}, fmt.Errorf("%w: grid spec %q", ErrInvalidGridDefinition, content)
	}

	fields := make([]float64, 5)
	for i := range fields {
		raw := strings.TrimSpace(content[2+6*i : 8+6*i])
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return gridSpec{}, fmt.Errorf("%w: grid coordinates %q", ErrInvalidGridDefinition, raw)
		}
		fields[i] = f
	}

	longitude, err := NewLinspace(fields[1], fields[2], fields[3])
	if err != nil {
		return gridSpec{}, err
	}

	return gridSpec{
		latDdeg:   fields[0],
		altKm:     fields[4],
		longitude: longitude,
	}, nil
}
