package ionex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nineCells returns the 3x3 grouping of unit cells centered on the
// origin cell, in scrambled order.
func nineCells(epoch time.Time) [9]MapCell {
	return [9]MapCell{
		neighborCell(epoch, 1.0, 1.0),   // NE
		neighborCell(epoch, -1.0, -1.0), // SW
		neighborCell(epoch, 0.0, 1.0),   // N
		neighborCell(epoch, 1.0, -1.0),  // SE
		neighborCell(epoch, 0.0, 0.0),   // center
		neighborCell(epoch, -1.0, 1.0),  // NW
		neighborCell(epoch, 0.0, -1.0),  // S
		neighborCell(epoch, 1.0, 0.0),   // E
		neighborCell(epoch, -1.0, 0.0),  // W
	}
}

func TestCell3x3FromSlice(t *testing.T) {
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)

	region, err := Cell3x3FromSlice(nineCells(t0))
	require.NoError(t, err)

	center := neighborCell(t0, 0.0, 0.0)
	assert.True(t, region.Center.SpatialMatch(center))
	assert.True(t, region.North.SpatialMatch(neighborCell(t0, 0.0, 1.0)))
	assert.True(t, region.South.SpatialMatch(neighborCell(t0, 0.0, -1.0)))
	assert.True(t, region.East.SpatialMatch(neighborCell(t0, 1.0, 0.0)))
	assert.True(t, region.West.SpatialMatch(neighborCell(t0, -1.0, 0.0)))
	assert.True(t, region.NorthEast.SpatialMatch(neighborCell(t0, 1.0, 1.0)))
	assert.True(t, region.NorthWest.SpatialMatch(neighborCell(t0, -1.0, 1.0)))
	assert.True(t, region.SouthEast.SpatialMatch(neighborCell(t0, 1.0, -1.0)))
	assert.True(t, region.SouthWest.SpatialMatch(neighborCell(t0, -1.0, -1.0)))
}

func TestCell3x3FromSliceFailures(t *testing.T) {
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	// an asynchronous member disqualifies every candidate
	cells := nineCells(t0)
	cells[3] = neighborCell(t1, 1.0, -1.0)
	_, err := Cell3x3FromSlice(cells)
	assert.ErrorIs(t, err, ErrIncompleteNeighborhood)

	// a detached member cannot be classified
	cells = nineCells(t0)
	cells[0] = neighborCell(t0, 7.0, 7.0)
	_, err = Cell3x3FromSlice(cells)
	assert.ErrorIs(t, err, ErrIncompleteNeighborhood)
}

func TestCell3x3Matching(t *testing.T) {
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	region, err := Cell3x3FromSlice(nineCells(t0))
	require.NoError(t, err)

	same, err := Cell3x3FromSlice(nineCells(t0))
	require.NoError(t, err)

	later, err := Cell3x3FromSlice(nineCells(t1))
	require.NoError(t, err)

	assert.True(t, region.SpatialMatch(same))
	assert.True(t, region.TemporalMatch(same))
	assert.True(t, region.SpatialTemporalMatch(same))

	assert.True(t, region.SpatialMatch(later))
	assert.False(t, region.TemporalMatch(later))
	assert.False(t, region.SpatialTemporalMatch(later))
}

func TestCell3x3Builders(t *testing.T) {
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	region, err := Cell3x3FromSlice(nineCells(t0))
	require.NoError(t, err)

	// synchronous replacements pass
	updated, err := region.WithNorthernCell(neighborCell(t0, 0.0, 1.0).WithNorthEasternTec(TECFromTecu(5.0)))
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.North.NorthEast.TEC.TecuValue())

	// asynchronous replacements fail
	_, err = region.WithNorthernCell(neighborCell(t1, 0.0, 1.0))
	assert.ErrorIs(t, err, ErrTemporalMismatch)

	_, err = region.WithCentralCell(neighborCell(t1, 0.0, 0.0))
	assert.ErrorIs(t, err, ErrTemporalMismatch)
}

func TestCell3x3Stretching(t *testing.T) {
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)

	// constant field: any stretching factor keeps the corner values
	cells := nineCells(t0)
	for i := range cells {
		cells[i] = cells[i].
			WithNorthEasternTec(TECFromTecu(1.0)).
			WithNorthWesternTec(TECFromTecu(1.0)).
			WithSouthEasternTec(TECFromTecu(1.0)).
			WithSouthWesternTec(TECFromTecu(1.0))
	}

	region, err := Cell3x3FromSlice(cells)
	require.NoError(t, err)

	for _, factor := range []float64{0.5, 1.0, 2.0, 3.0} {
		stretched, err := region.Stretched(factor)
		require.NoError(t, err, "factor %g", factor)

		assert.InDelta(t, factor, stretched.LatitudeSpanDegrees(), 1e-9)
		assert.InDelta(t, factor, stretched.LongitudeSpanDegrees(), 1e-9)
		assert.InDelta(t, 1.0, stretched.NorthEast.TEC.TecuValue(), 1e-9)
		assert.InDelta(t, 1.0, stretched.SouthWest.TEC.TecuValue(), 1e-9)
	}

	_, err = region.Stretched(0.0)
	assert.ErrorIs(t, err, ErrInvalidStretchFactor)
}
