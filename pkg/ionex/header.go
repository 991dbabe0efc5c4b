package ionex

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Header holds the metadata section of an IONEX file: production
// fields, the map grid and the scaling applied to following TEC blocks.
type Header struct {
	// Version is the file format revision.
	Version Version

	// Program is the name of the production software.
	Program string

	// RunBy is the name of the operator (usually the agency) running the software.
	RunBy string

	// Date is the production date and time, as a readable string
	// preserved verbatim.
	Date string

	// License of use, when the file carries one.
	License string

	// DOI is the Digital Object Identifier, when the file carries one.
	DOI string

	// Description is a brief description of the technique or model.
	// It is not a general purpose comment.
	Description string

	// NumberOfMaps is the total number of TEC maps in the file.
	NumberOfMaps int `validate:"gte=0"`

	// NumStations is the number of contributing stations.
	NumStations int `validate:"gte=0"`

	// NumSatellites is the number of contributing satellites.
	NumSatellites int `validate:"gte=0"`

	// EpochOfFirstMap is the instant of the first map.
	EpochOfFirstMap time.Time

	// EpochOfLastMap is the instant of the last map.
	EpochOfLastMap time.Time

	// ReferenceSystem used in the evaluation of the TEC maps.
	ReferenceSystem ReferenceSystem

	// MappingFunction adopted for the TEC determination.
	MappingFunction MappingFunction

	// MapDimension is 2 for fixed-altitude maps, 3 otherwise.
	MapDimension int `validate:"oneof=2 3"`

	// BaseRadiusKm is the mean earth radius or bottom of the height grid.
	BaseRadiusKm float64 `validate:"gt=0"`

	// SamplingPeriod is the duration between two maps.
	SamplingPeriod time.Duration `validate:"gte=0"`

	// Grid defines the map discretization.
	Grid Grid

	// ElevationCutoff is the minimum elevation angle filter used, in degrees.
	ElevationCutoff float64

	// Exponent is the scaling to apply in upcoming TEC blocks.
	Exponent int8

	// Comments found in the header section, in order of appearance.
	Comments []string
}

// NewHeader returns a header with standard defaults: revision 1.0, 2D
// maps, standard Earth radius and hourly sampling. The default
// exponent matters: it allows parsing files that omit the EXPONENT
// field.
func NewHeader() *Header {
	return &Header{
		Version:         DefaultVersion,
		Exponent:        -1,
		MapDimension:    2,
		BaseRadiusKm:    6371.0,
		SamplingPeriod:  time.Hour,
		ReferenceSystem: DefaultReferenceSystem,
	}
}

var headerValidator = validator.New()

// Validate verifies the header invariants.
func (h *Header) Validate() error {
	return headerValidator.Struct(h)
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() *Header {
	c := *h
	c.Comments = append([]string(nil), h.Comments...)
	return &c
}

// WithNumberOfMaps returns a copy with an updated number of maps.
func (h *Header) WithNumberOfMaps(num int) *Header {
	c := h.Clone()
	c.NumberOfMaps = num
	return c
}

// WithEpochOfFirstMap returns a copy with an updated first instant.
func (h *Header) WithEpochOfFirstMap(t time.Time) *Header {
	c := h.Clone()
	c.EpochOfFirstMap = t
	return c
}

// WithEpochOfLastMap returns a copy with an updated last instant.
func (h *Header) WithEpochOfLastMap(t time.Time) *Header {
	c := h.Clone()
	c.EpochOfLastMap = t
	return c
}

// WithReferenceSystem returns a copy with an updated reference system.
func (h *Header) WithReferenceSystem(r ReferenceSystem) *Header {
	c := h.Clone()
	c.ReferenceSystem = r
	return c
}

// WithMappingFunction returns a copy with an updated mapping function.
func (h *Header) WithMappingFunction(m MappingFunction) *Header {
	c := h.Clone()
	c.MappingFunction = m
	return c
}

// WithMapDimension returns a copy with an updated map dimension.
func (h *Header) WithMapDimension(dim int) *Header {
	c := h.Clone()
	c.MapDimension = dim
	return c
}

// WithExponent returns a copy with an updated scaling exponent.
func (h *Header) WithExponent(e int8) *Header {
	c := h.Clone()
	c.Exponent = e
	return c
}

// WithElevationCutoff returns a copy with an updated elevation mask.
func (h *Header) WithElevationCutoff(deg float64) *Header {
	c := h.Clone()
	c.ElevationCutoff = deg
	return c
}

// WithBaseRadiusKm returns a copy with an updated base radius.
func (h *Header) WithBaseRadiusKm(km float64) *Header {
	c := h.Clone()
	c.BaseRadiusKm = km
	return c
}

// WithDescription returns a copy with the given description appended.
func (h *Header) WithDescription(desc string) *Header {
	c := h.Clone()
	if c.Description != "" {
		c.Description += " "
	}
	c.Description += desc
	return c
}

// WithLatitudeGrid returns a copy with an updated latitude axis.
func (h *Header) WithLatitudeGrid(l Linspace) *Header {
	c := h.Clone()
	c.Grid.Latitude = l
	return c
}

// WithLongitudeGrid returns a copy with an updated longitude axis.
func (h *Header) WithLongitudeGrid(l Linspace) *Header {
	c := h.Clone()
	c.Grid.Longitude = l
	return c
}

// WithAltitudeGrid returns a copy with an updated altitude axis.
func (h *Header) WithAltitudeGrid(l Linspace) *Header {
	c := h.Clone()
	c.Grid.Altitude = l
	return c
}

// MergeMut merges the right-hand header into this one: unset
// production fields are filled from the right side, the epoch range
// becomes the union, the sampling period the finest of both, and the
// comments are deduplicated. The reference system, map dimension and
// mapping function must match on both sides.
func (h *Header) MergeMut(rhs *Header) error {
	if h.ReferenceSystem != rhs.ReferenceSystem ||
		h.MapDimension != rhs.MapDimension ||
		h.MappingFunction != rhs.MappingFunction {
		return ErrMergeMismatch
	}

	if rhs.Version.Cmp(h.Version) < 0 {
		h.Version = rhs.Version
	}
	if h.Program == "" {
		h.Program = rhs.Program
	}
	if h.RunBy == "" {
		h.RunBy = rhs.RunBy
	}
	if h.Date == "" {
		h.Date = rhs.Date
	}
	if h.License == "" {
		h.License = rhs.License
	}
	if h.DOI == "" {
		h.DOI = rhs.DOI
	}
	if h.Description == "" {
		h.Description = rhs.Description
	} else if rhs.Description != "" && rhs.Description != h.Description {
		h.Description += " " + rhs.Description
	}

	if rhs.EpochOfFirstMap.Before(h.EpochOfFirstMap) {
		h.EpochOfFirstMap = rhs.EpochOfFirstMap
	}
	if rhs.EpochOfLastMap.After(h.EpochOfLastMap) {
		h.EpochOfLastMap = rhs.EpochOfLastMap
	}
	if rhs.SamplingPeriod < h.SamplingPeriod {
		h.SamplingPeriod = rhs.SamplingPeriod
	}
	if rhs.ElevationCutoff > h.ElevationCutoff {
		h.ElevationCutoff = rhs.ElevationCutoff
	}

	for _, comment := range rhs.Comments {
		if !containsString(h.Comments, comment) {
			h.Comments = append(h.Comments, comment)
		}
	}

	if !containsString(h.Comments, mergeComment) {
		h.Comments = append(h.Comments, mergeComment)
	}

	return nil
}

// mergeComment is the somewhat standardized comment marking merged files.
const mergeComment = "FILE MERGE"

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
