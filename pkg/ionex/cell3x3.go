package ionex

import (
	"math"
	"time"

	"github.com/paulmach/orb"
)

// Cell3x3 is a synchronous 3x3 region of interest made of a central
// cell and its eight neighboring cells.
type Cell3x3 struct {
	// Center is the central cell.
	Center MapCell

	// NorthEast neighboring cell.
	NorthEast MapCell

	// North neighboring cell.
	North MapCell

	// NorthWest neighboring cell.
	NorthWest MapCell

	// West neighboring cell.
	West MapCell

	// SouthWest neighboring cell.
	SouthWest MapCell

	// South neighboring cell.
	South MapCell

	// SouthEast neighboring cell.
	SouthEast MapCell

	// East neighboring cell.
	East MapCell
}

// cells lists the nine cells, center first.
func (c Cell3x3) cells() []MapCell {
	return []MapCell{
		c.Center,
		c.NorthEast, c.North, c.NorthWest,
		c.West, c.SouthWest, c.South, c.SouthEast, c.East,
	}
}

// SpatialMatch reports whether both regions describe the same space.
func (c Cell3x3) SpatialMatch(rhs Cell3x3) bool {
	lhs, other := c.cells(), rhs.cells()
	for i := range lhs {
		if !lhs[i].SpatialMatch(other[i]) {
			return false
		}
	}
	return true
}

// TemporalMatch reports whether both regions are synchronous.
func (c Cell3x3) TemporalMatch(rhs Cell3x3) bool {
	lhs, other := c.cells(), rhs.cells()
	for i := range lhs {
		if !lhs[i].TemporalMatch(other[i]) {
			return false
		}
	}
	return true
}

// SpatialTemporalMatch reports whether both regions describe the same
// space at the same instant.
func (c Cell3x3) SpatialTemporalMatch(rhs Cell3x3) bool {
	return c.SpatialMatch(rhs) && c.TemporalMatch(rhs)
}

// WithEpoch returns a copy updated in time.
func (c Cell3x3) WithEpoch(epoch time.Time) Cell3x3 {
	c.Center.Epoch = epoch
	c.NorthEast.Epoch = epoch
	c.North.Epoch = epoch
	c.NorthWest.Epoch = epoch
	c.West.Epoch = epoch
	c.SouthWest.Epoch = epoch
	c.South.Epoch = epoch
	c.SouthEast.Epoch = epoch
	c.East.Epoch = epoch
	return c
}

// replace swaps one cell of the region, which must be synchronous
// with the slot it replaces.
func replaceCell(slot *MapCell, cell MapCell) error {
	if !cell.Epoch.Equal(slot.Epoch) {
		return ErrTemporalMismatch
	}
	*slot = cell
	return nil
}

// WithCentralCell returns a copy with an updated central cell,
// which must be synchronous.
func (c Cell3x3) WithCentralCell(cell MapCell) (Cell3x3, error) {
	err := replaceCell(&c.Center, cell)
	return c, err
}

// WithNorthernCell returns a copy with an updated northern cell,
// which must be synchronous.
func (c Cell3x3) WithNorthernCell(cell MapCell) (Cell3x3, error) {
	err := replaceCell(&c.North, cell)
	return c, err
}

// WithSouthernCell returns a copy with an updated southern cell,
// which must be synchronous.
func (c Cell3x3) WithSouthernCell(cell MapCell) (Cell3x3, error) {
	err := replaceCell(&c.South, cell)
	return c, err
}

// WithEasternCell returns a copy with an updated eastern cell,
// which must be synchronous.
func (c Cell3x3) WithEasternCell(cell MapCell) (Cell3x3, error) {
	err := replaceCell(&c.East, cell)
	return c, err
}

// WithWesternCell returns a copy with an updated western cell,
// which must be synchronous.
func (c Cell3x3) WithWesternCell(cell MapCell) (Cell3x3, error) {
	err := replaceCell(&c.West, cell)
	return c, err
}

// WithNorthEasternCell returns a copy with an updated northeastern
// cell, which must be synchronous.
func (c Cell3x3) WithNorthEasternCell(cell MapCell) (Cell3x3, error) {
	err := replaceCell(&c.NorthEast, cell)
	return c, err
}

// WithNorthWesternCell returns a copy with an updated northwestern
// cell, which must be synchronous.
func (c Cell3x3) WithNorthWesternCell(cell MapCell) (Cell3x3, error) {
	err := replaceCell(&c.NorthWest, cell)
	return c, err
}

// WithSouthEasternCell returns a copy with an updated southeastern
// cell, which must be synchronous.
func (c Cell3x3) WithSouthEasternCell(cell MapCell) (Cell3x3, error) {
	err := replaceCell(&c.SouthEast, cell)
	return c, err
}

// WithSouthWesternCell returns a copy with an updated southwestern
// cell, which must be synchronous.
func (c Cell3x3) WithSouthWesternCell(cell MapCell) (Cell3x3, error) {
	err := replaceCell(&c.SouthWest, cell)
	return c, err
}

// Cell3x3FromSlice builds a region from nine unordered cells, by
// electing a central element whose eight companions are all
// synchronous neighbors, classified by cardinal direction.
// ErrIncompleteNeighborhood is returned when no candidate succeeds.
func Cell3x3FromSlice(cells [9]MapCell) (Cell3x3, error) {
candidates:
	for i := 0; i < 9; i++ {
		// the candidate must be a synchronous neighbor of all other eight
		for j := 0; j < 9; j++ {
			if j == i {
				continue
			}
			if !cells[i].IsNeighbor(cells[j]) || !cells[i].TemporalMatch(cells[j]) {
				continue candidates
			}
		}

		region := Cell3x3{}.WithEpoch(cells[i].Epoch)
		region.Center = cells[i]

		count := 0
		for j := 0; j < 9; j++ {
			if j == i {
				continue
			}
			var err error
			switch {
			case cells[j].IsNorthWesternNeighbor(cells[i]):
				region, err = region.WithNorthWesternCell(cells[j])
			case cells[j].IsNorthEasternNeighbor(cells[i]):
				region, err = region.WithNorthEasternCell(cells[j])
			case cells[j].IsNorthernNeighbor(cells[i]):
				region, err = region.WithNorthernCell(cells[j])
			case cells[j].IsSouthWesternNeighbor(cells[i]):
				region, err = region.WithSouthWesternCell(cells[j])
			case cells[j].IsSouthEasternNeighbor(cells[i]):
				region, err = region.WithSouthEasternCell(cells[j])
			case cells[j].IsSouthernNeighbor(cells[i]):
				region, err = region.WithSouthernCell(cells[j])
			case cells[j].IsEasternNeighbor(cells[i]):
				region, err = region.WithEasternCell(cells[j])
			case cells[j].IsWesternNeighbor(cells[i]):
				region, err = region.WithWesternCell(cells[j])
			default:
				continue
			}
			if err != nil {
				continue candidates
			}
			count++
		}

		if count == 8 {
			return region, nil
		}
	}

	return Cell3x3{}, ErrIncompleteNeighborhood
}

// Stretched returns the central cell spatially stretched by a non-zero
// finite factor, taking the neighboring values into account: each
// stretched corner location is interpolated within whichever of the
// nine cells contains it. A corner that falls outside the nine cells
// is extrapolated from the cell whose center is nearest.
func (c Cell3x3) Stretched(factor float64) (MapCell, error) {
	if factor == 0.0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return MapCell{}, ErrInvalidStretchFactor
	}

	interp := func(point orb.Point) TEC {
		for _, cell := range c.cells() {
			if cell.BoundingRectDegrees().Contains(point) {
				return TECFromTecu(cell.bilinearAt(point))
			}
		}
		// outside the 3x3 footprint: extrapolate from the nearest cell
		nearest := c.Center
		best := math.Inf(+1)
		for _, cell := range c.cells() {
			center := cell.Center()
			dx := center.X() - point.X()
			dy := center.Y() - point.Y()
			if d := dx*dx + dy*dy; d < best {
				best = d
				nearest = cell
			}
		}
		return TECFromTecu(nearest.bilinearAt(point))
	}

	stretch := func(p TecPoint) TecPoint {
		point := orb.Point{p.Point.X() * factor, p.Point.Y() * factor}
		return TecPoint{Point: point, TEC: interp(point)}
	}

	stretched := c.Center
	stretched.NorthEast = stretch(c.Center.NorthEast)
	stretched.NorthWest = stretch(c.Center.NorthWest)
	stretched.SouthEast = stretch(c.Center.SouthEast)
	stretched.SouthWest = stretch(c.Center.SouthWest)

	return stretched, nil
}
