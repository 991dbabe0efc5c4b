package ionex

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// TecPoint attaches a TEC estimate to a geographic point
// (x is the longitude, y the latitude, both in decimal degrees).
type TecPoint struct {
	// Point location in decimal degrees.
	Point orb.Point

	// TEC estimate at this location.
	TEC TEC
}

// MapCell describes a four corner region that supports interpolation.
// In the processing workflow, cells are constructed from individual
// quanta (the smallest ROI) described in an IONEX map; they are views
// derived from the record on demand and own no storage.
type MapCell struct {
	// Epoch of observation.
	Epoch time.Time

	// NorthEast corner.
	NorthEast TecPoint

	// NorthWest corner.
	NorthWest TecPoint

	// SouthEast corner.
	SouthEast TecPoint

	// SouthWest corner.
	SouthWest TecPoint
}

// NewMapCell defines a cell from its four corner points at this epoch.
func NewMapCell(epoch time.Time, northEast, northWest, southEast, southWest TecPoint) MapCell {
	return MapCell{
		Epoch:     epoch,
		NorthEast: northEast,
		NorthWest: northWest,
		SouthEast: southEast,
		SouthWest: southWest,
	}
}

// MapCellFromDegrees defines a cell from four (lon, lat) corner
// locations in decimal degrees and the associated TEC values.
func MapCellFromDegrees(epoch time.Time,
	northEast orb.Point, northEastTec TEC,
	northWest orb.Point, northWestTec TEC,
	southEast orb.Point, southEastTec TEC,
	southWest orb.Point, southWestTec TEC) MapCell {
	return NewMapCell(epoch,
		TecPoint{Point: northEast, TEC: northEastTec},
		TecPoint{Point: northWest, TEC: northWestTec},
		TecPoint{Point: southEast, TEC: southEastTec},
		TecPoint{Point: southWest, TEC: southWestTec},
	)
}

// UnitaryCell defines the ((0,0), (1,0), (0,1), (1,1)) cell with the
// associated TEC values, where (x=0, y=0) is the SW corner and
// (x=1, y=1) the NE corner.
func UnitaryCell(epoch time.Time, northEastTec, northWestTec, southEastTec, southWestTec TEC) MapCell {
	return MapCellFromDegrees(epoch,
		orb.Point{1.0, 1.0}, northEastTec,
		orb.Point{0.0, 1.0}, northWestTec,
		orb.Point{1.0, 0.0}, southEastTec,
		orb.Point{0.0, 0.0}, southWestTec,
	)
}

// BoundingRectDegrees returns the cell borders as a rectangle in
// decimal degrees, discarding the associated TEC values.
func (c MapCell) BoundingRectDegrees() orb.Bound {
	return orb.Bound{Min: c.SouthWest.Point, Max: c.NorthEast.Point}
}

// Center returns the central point of the cell.
func (c MapCell) Center() orb.Point {
	return c.BoundingRectDegrees().Center()
}

// GeodesicPerimeter returns the cell perimeter in meters.
func (c MapCell) GeodesicPerimeter() float64 {
	return geo.Length(c.BoundingRectDegrees().ToRing())
}

// GeodesicArea returns the cell area in square meters.
func (c MapCell) GeodesicArea() float64 {
	return math.Abs(geo.Area(c.BoundingRectDegrees()))
}

// LatitudeSpanDegrees returns the latitude span of the cell.
func (c MapCell) LatitudeSpanDegrees() float64 {
	b := c.BoundingRectDegrees()
	return b.Max.Y() - b.Min.Y()
}

// LongitudeSpanDegrees returns the longitude span of the cell.
func (c MapCell) LongitudeSpanDegrees() float64 {
	b := c.BoundingRectDegrees()
	return b.Max.X() - b.Min.X()
}

// Contains reports whether the given geometry, expressed in decimal
// degrees, is entirely contained within the cell.
func (c MapCell) Contains(geometry orb.Geometry) bool {
	b := c.BoundingRectDegrees()
	gb := geometry.Bound()
	return b.Contains(gb.Min) && b.Contains(gb.Max)
}

// WrapsEntirely reports whether the cell entirely contains the
// spatial region described by the right-hand cell.
func (c MapCell) WrapsEntirely(rhs MapCell) bool {
	return c.Contains(rhs.BoundingRectDegrees())
}

// SpatialMatch reports whether both cells describe the same region.
func (c MapCell) SpatialMatch(rhs MapCell) bool {
	return c.NorthEast.Point == rhs.NorthEast.Point &&
		c.NorthWest.Point == rhs.NorthWest.Point &&
		c.SouthEast.Point == rhs.SouthEast.Point &&
		c.SouthWest.Point == rhs.SouthWest.Point
}

// TemporalMatch reports whether both cells describe the same instant.
func (c MapCell) TemporalMatch(rhs MapCell) bool {
	return c.Epoch.Equal(rhs.Epoch)
}

// SpatialTemporalMatch reports whether both cells describe the same
// region at the same instant.
func (c MapCell) SpatialTemporalMatch(rhs MapCell) bool {
	return c.SpatialMatch(rhs) && c.TemporalMatch(rhs)
}

// IsNorthernNeighbor reports whether the cell is the direct northern
// neighbor of rhs: they share the rhs northern corner pair.
func (c MapCell) IsNorthernNeighbor(rhs MapCell) bool {
	return rhs.NorthEast.Point == c.SouthEast.Point &&
		rhs.NorthWest.Point == c.SouthWest.Point
}

// IsSouthernNeighbor reports whether the cell is the direct southern
// neighbor of rhs.
func (c MapCell) IsSouthernNeighbor(rhs MapCell) bool {
	return rhs.SouthEast.Point == c.NorthEast.Point &&
		rhs.SouthWest.Point == c.NorthWest.Point
}

// IsEasternNeighbor reports whether the cell is the direct eastern
// neighbor of rhs.
func (c MapCell) IsEasternNeighbor(rhs MapCell) bool {
	return rhs.NorthEast.Point == c.NorthWest.Point &&
		rhs.SouthEast.Point == c.SouthWest.Point
}

// IsWesternNeighbor reports whether the cell is the direct western
// neighbor of rhs.
func (c MapCell) IsWesternNeighbor(rhs MapCell) bool {
	return rhs.NorthWest.Point == c.NorthEast.Point &&
		rhs.SouthWest.Point == c.SouthEast.Point
}

// IsNorthEasternNeighbor reports whether the cell touches rhs at its
// north-eastern corner only.
func (c MapCell) IsNorthEasternNeighbor(rhs MapCell) bool {
	return c.SouthWest.Point == rhs.NorthEast.Point
}

// IsNorthWesternNeighbor reports whether the cell touches rhs at its
// north-western corner only.
func (c MapCell) IsNorthWesternNeighbor(rhs MapCell) bool {
	return c.SouthEast.Point == rhs.NorthWest.Point
}

// IsSouthEasternNeighbor reports whether the cell touches rhs at its
// south-eastern corner only.
func (c MapCell) IsSouthEasternNeighbor(rhs MapCell) bool {
	return c.NorthWest.Point == rhs.SouthEast.Point
}

// IsSouthWesternNeighbor reports whether the cell touches rhs at its
// south-western corner only.
func (c MapCell) IsSouthWesternNeighbor(rhs MapCell) bool {
	return c.NorthEast.Point == rhs.SouthWest.Point
}

// IsNeighbor reports whether both cells are direct or diagonal
// neighbors, sharing a corner pair or a single diagonal corner.
func (c MapCell) IsNeighbor(rhs MapCell) bool {
	return c.IsNorthernNeighbor(rhs) ||
		c.IsSouthernNeighbor(rhs) ||
		c.IsEasternNeighbor(rhs) ||
		c.IsWesternNeighbor(rhs) ||
		c.IsNorthEasternNeighbor(rhs) ||
		c.IsNorthWesternNeighbor(rhs) ||
		c.IsSouthEasternNeighbor(rhs) ||
		c.IsSouthWesternNeighbor(rhs)
}

// WithNorthEasternTec returns a copy with an updated NE component.
func (c MapCell) WithNorthEasternTec(tec TEC) MapCell {
	c.NorthEast.TEC = tec
	return c
}

// WithNorthWesternTec returns a copy with an updated NW component.
func (c MapCell) WithNorthWesternTec(tec TEC) MapCell {
	c.NorthWest.TEC = tec
	return c
}

// WithSouthEasternTec returns a copy with an updated SE component.
func (c MapCell) WithSouthEasternTec(tec TEC) MapCell {
	c.SouthEast.TEC = tec
	return c
}

// WithSouthWesternTec returns a copy with an updated SW component.
func (c MapCell) WithSouthWesternTec(tec TEC) MapCell {
	c.SouthWest.TEC = tec
	return c
}

// WithEpoch returns a copy with an updated temporal instant.
func (c MapCell) WithEpoch(epoch time.Time) MapCell {
	c.Epoch = epoch
	return c
}

// bilinearAt evaluates the bilinear surface defined by the four corner
// TEC values at the given point, without a containment check. The
// coefficients are normalized to the SW corner.
func (c MapCell) bilinearAt(point orb.Point) float64 {
	latSpan := c.LatitudeSpanDegrees()
	lonSpan := c.LongitudeSpanDegrees()

	sw := c.SouthWest.Point
	px := (point.X() - sw.X()) / lonSpan
	py := (point.Y() - sw.Y()) / latSpan

	e00 := c.SouthWest.TEC.TecuValue()
	e10 := c.SouthEast.TEC.TecuValue()
	e01 := c.NorthWest.TEC.TecuValue()
	e11 := c.NorthEast.TEC.TecuValue()

	return (1.0-py)*(1.0-px)*e00 +
		(1.0-py)*px*e10 +
		py*(1.0-px)*e01 +
		py*px*e11
}

// SpatialInterpolation returns the bilinear spatial interpolation of
// the TEC value at the given point, which must lie within the cell.
func (c MapCell) SpatialInterpolation(point orb.Point) (TEC, error) {
	if !c.BoundingRectDegrees().Contains(point) {
		return TEC{}, ErrOutsideSpatialBoundaries
	}
	return TECFromTecu(c.bilinearAt(point)), nil
}

// TemporalSpatialInterpolation interpolates the TEC value at the given
// point and instant using the right-hand cell as the other temporal
// bound. Both cells should describe the same spatial region and be
// closely sampled in time; this is not verified here. The instant must
// lie within both observation instants.
func (c MapCell) TemporalSpatialInterpolation(epoch time.Time, point orb.Point, rhs MapCell) (TEC, error) {
	tec0, err := c.SpatialInterpolation(point)
	if err != nil {
		return TEC{}, err
	}
	tec1, err := rhs.SpatialInterpolation(point)
	if err != nil {
		return TEC{}, err
	}

	tecu0, tecu1 := tec0.TecuValue(), tec1.TecuValue()

	switch {
	case !epoch.Before(c.Epoch) && epoch.Before(rhs.Epoch):
		// forward
		dt := rhs.Epoch.Sub(c.Epoch).Seconds()
		tecu := rhs.Epoch.Sub(epoch).Seconds()/dt*tecu0 + epoch.Sub(c.Epoch).Seconds()/dt*tecu1
		return TECFromTecu(tecu), nil

	case !epoch.Before(rhs.Epoch) && epoch.Before(c.Epoch):
		// backwards
		dt := c.Epoch.Sub(rhs.Epoch).Seconds()
		tecu := c.Epoch.Sub(epoch).Seconds()/dt*tecu1 + epoch.Sub(rhs.Epoch).Seconds()/dt*tecu0
		return TECFromTecu(tecu), nil

	default:
		return TEC{}, ErrTemporalMismatch
	}
}

// StretchMut stretches the cell dimensions by a non-zero finite
// factor: each corner location scales by the factor, and its TEC is
// recomputed by evaluating the bilinear surface of the original
// corner values at the new location. Accuracy degrades for large
// factors; prefer the 3x3 neighborhood above a factor of 2.
func (c *MapCell) StretchMut(factor float64) error {
	if factor == 0.0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return ErrInvalidStretchFactor
	}

	stretch := func(p TecPoint) TecPoint {
		point := orb.Point{p.Point.X() * factor, p.Point.Y() * factor}
		return TecPoint{Point: point, TEC: TECFromTecu(c.bilinearAt(point))}
	}

	northEast := stretch(c.NorthEast)
	northWest := stretch(c.NorthWest)
	southEast := stretch(c.SouthEast)
	southWest := stretch(c.SouthWest)

	c.NorthEast = northEast
	c.NorthWest = northWest
	c.SouthEast = southEast
	c.SouthWest = southWest

	return nil
}

// Stretched returns a stretched copy of the cell. See StretchMut.
func (c MapCell) Stretched(factor float64) (MapCell, error) {
	s := c
	if err := s.StretchMut(factor); err != nil {
		return MapCell{}, err
	}
	return s, nil
}
