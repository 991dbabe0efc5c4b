package ionex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderDefaults(t *testing.T) {
	hdr := NewHeader()

	assert.Equal(t, NewVersion(1, 0), hdr.Version)
	assert.Equal(t, int8(-1), hdr.Exponent, "default exponent is required to parse files that omit it")
	assert.Equal(t, 2, hdr.MapDimension)
	assert.Equal(t, 6371.0, hdr.BaseRadiusKm)
	assert.Equal(t, time.Hour, hdr.SamplingPeriod)
	assert.Equal(t, DefaultReferenceSystem, hdr.ReferenceSystem)
}

func TestHeaderValidate(t *testing.T) {
	hdr := NewHeader()
	assert.NoError(t, hdr.Validate())

	hdr.MapDimension = 4
	assert.Error(t, hdr.Validate())

	hdr = NewHeader()
	hdr.BaseRadiusKm = 0.0
	assert.Error(t, hdr.Validate())

	hdr = NewHeader()
	hdr.NumberOfMaps = -1
	assert.Error(t, hdr.Validate())
}

func TestHeaderWithStyleUpdates(t *testing.T) {
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)

	hdr := NewHeader().
		WithNumberOfMaps(25).
		WithEpochOfFirstMap(t0).
		WithEpochOfLastMap(t1).
		WithMapDimension(3).
		WithExponent(-2).
		WithElevationCutoff(10.0).
		WithBaseRadiusKm(6378.0).
		WithMappingFunction(MappingCosZ).
		WithDescription("combined model")

	assert.Equal(t, 25, hdr.NumberOfMaps)
	assert.True(t, hdr.EpochOfFirstMap.Equal(t0))
	assert.True(t, hdr.EpochOfLastMap.Equal(t1))
	assert.Equal(t, 3, hdr.MapDimension)
	assert.Equal(t, int8(-2), hdr.Exponent)
	assert.Equal(t, 10.0, hdr.ElevationCutoff)
	assert.Equal(t, 6378.0, hdr.BaseRadiusKm)
	assert.Equal(t, MappingCosZ, hdr.MappingFunction)
	assert.Equal(t, "combined model", hdr.Description)

	hdr = hdr.WithDescription("for testing")
	assert.Equal(t, "combined model for testing", hdr.Description)

	// copy updates leave the receiver untouched
	base := NewHeader()
	_ = base.WithNumberOfMaps(99)
	assert.Equal(t, 0, base.NumberOfMaps)
}

func TestHeaderGridUpdates(t *testing.T) {
	lat := Linspace{Start: 87.5, End: -87.5, Spacing: -2.5}
	lon := Linspace{Start: -180.0, End: 180.0, Spacing: 5.0}
	alt := Linspace{Start: 350.0, End: 350.0}

	hdr := NewHeader().
		WithLatitudeGrid(lat).
		WithLongitudeGrid(lon).
		WithAltitudeGrid(alt)

	assert.Equal(t, lat, hdr.Grid.Latitude)
	assert.Equal(t, lon, hdr.Grid.Longitude)
	assert.Equal(t, alt, hdr.Grid.Altitude)
	assert.True(t, hdr.Grid.Is2D())
}

func TestHeaderMerge(t *testing.T) {
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)

	lhs := NewHeader().
		WithEpochOfFirstMap(t0).
		WithEpochOfLastMap(t0.Add(12 * time.Hour))
	lhs.Comments = []string{"lhs comment"}

	rhs := NewHeader().
		WithEpochOfFirstMap(t0.Add(-2 * time.Hour)).
		WithEpochOfLastMap(t0.Add(24 * time.Hour))
	rhs.Program = "GIM V3.0"
	rhs.Comments = []string{"lhs comment", "rhs comment"}
	rhs.SamplingPeriod = 30 * time.Minute
	rhs.ElevationCutoff = 10.0

	require.NoError(t, lhs.MergeMut(rhs))

	// union of the epoch range, finest sampling, unset fields filled
	assert.True(t, lhs.EpochOfFirstMap.Equal(t0.Add(-2*time.Hour)))
	assert.True(t, lhs.EpochOfLastMap.Equal(t0.Add(24*time.Hour)))
	assert.Equal(t, 30*time.Minute, lhs.SamplingPeriod)
	assert.Equal(t, 10.0, lhs.ElevationCutoff)
	assert.Equal(t, "GIM V3.0", lhs.Program)

	// deduplicated comments plus the merge marker
	assert.Equal(t, []string{"lhs comment", "rhs comment", "FILE MERGE"}, lhs.Comments)

	// diverging invariants abort
	rhs.MapDimension = 3
	assert.ErrorIs(t, NewHeader().MergeMut(rhs), ErrMergeMismatch)
}
