// Package ionex provides functions for reading, writing and
// manipulating IONEX files: ionospheric Total Electron Content maps
// exchanged on a regular geographic grid.
package ionex

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mholt/archiver/v3"
	"github.com/paulmach/orb"
)

// Worldwide maps span the full longitude circle and latitudes up to
// +/-87.5 degrees.
const (
	worldwideWidthDegrees  = 360.0
	worldwideHeightDegrees = 175.0
)

// IONEX is composed of a header section and a record section, plus the
// comments found in the file body and the production attributes
// resolved for file names following the standard conventions.
type IONEX struct {
	// Header gives general information and describes the following content.
	Header *Header

	// Record is the actual file content.
	Record *Record

	// Comments stored as they appeared in the file body.
	Comments []string

	// Attributes resolved from standardized file names, when available.
	Attributes *FileAttributes
}

// NewIONEX builds a new IONEX object from the given header and record sections.
func NewIONEX(header *Header, record *Record) *IONEX {
	return &IONEX{Header: header, Record: record}
}

// Parse reads IONEX content from the given reader. Attributes
// potentially described by a file name need to be provided externally
// or guessed once parsing has completed, see GuessAttributes.
func Parse(r io.Reader) (*IONEX, error) {
	dec, err := NewDecoder(r)
	if err != nil {
		return nil, err
	}

	record, comments, err := dec.Decode()
	if err != nil {
		return nil, err
	}

	hdr := dec.Header
	return &IONEX{
		Header:   &hdr,
		Record:   record,
		Comments: comments,
	}, nil
}

// ParseFile parses a local file. Gzip compressed files (".gz") are
// transparently decompressed. If the file name follows the standard
// naming conventions the production attributes are resolved as well.
func ParseFile(path string) (*IONEX, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var reader io.Reader = r
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("ionex: gzip: %w", err)
		}
		defer zr.Close()
		reader = zr
	}

	ionx, err := Parse(reader)
	if err != nil {
		return nil, err
	}

	if attrs, err := ParseFilename(filepath.Base(path)); err == nil {
		ionx.Attributes = attrs
	}

	return ionx, nil
}

// Encode formats the object into the given writer, following the
// standard specifications. This is the mirror operation of Parse.
func (x *IONEX) Encode(w io.Writer) error {
	return NewEncoder(w).Encode(x)
}

// WriteFile dumps the object into a local file. A ".gz" path gets
// gzip encoded at the default compression level.
func (x *IONEX) WriteFile(path string) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zw := gzip.NewWriter(fd)
		if err := x.Encode(zw); err != nil {
			return err
		}
		return zw.Close()
	}

	return x.Encode(fd)
}

// CompressFile gzip compresses the given file in place, returning the
// new path. The source file is removed once the compression finishes
// without errors.
func CompressFile(path string) (string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		return path, nil
	}
	target := path + ".gz"
	if err := archiver.CompressFile(path, target); err != nil {
		return "", err
	}
	os.Remove(path)
	return target, nil
}

// DecompressFile decompresses the given gzip file, returning the new
// path.
func DecompressFile(path string) (string, error) {
	target := strings.TrimSuffix(path, filepath.Ext(path))
	if err := archiver.DecompressFile(path, target); err != nil {
		return "", err
	}
	return target, nil
}

// Is2D reports whether the file describes fixed-altitude maps.
func (x *IONEX) Is2D() bool {
	return x.Header.Grid.Is2D()
}

// Is3D reports whether the file describes maps at several altitudes.
func (x *IONEX) Is3D() bool {
	return x.Header.Grid.Is3D()
}

// AltitudeWidthKm returns the width of the altitude axis.
func (x *IONEX) AltitudeWidthKm() float64 {
	lo, hi := x.Header.Grid.Altitude.MinMax()
	return hi - lo
}

// BoundingRectDegrees returns the map extent in decimal degrees.
func (x *IONEX) BoundingRectDegrees() orb.Bound {
	latMin, latMax := x.Header.Grid.Latitude.MinMax()
	lonMin, lonMax := x.Header.Grid.Longitude.MinMax()
	return orb.Bound{
		Min: orb.Point{lonMin, latMin},
		Max: orb.Point{lonMax, latMax},
	}
}

// IsWorldwideMap reports whether the maps span the entire globe. The
// answer comes from the production attributes when they were resolved,
// from the grid extent otherwise.
func (x *IONEX) IsWorldwideMap() bool {
	if x.Attributes != nil {
		return x.Attributes.Region == RegionWorldwide
	}
	b := x.BoundingRectDegrees()
	return b.Max.X()-b.Min.X() >= worldwideWidthDegrees &&
		b.Max.Y()-b.Min.Y() >= worldwideHeightDegrees
}

// IsRegionalMap reports whether the maps cover a local region only.
func (x *IONEX) IsRegionalMap() bool {
	return !x.IsWorldwideMap()
}

// Timeseries enumerates the sampling instants from the first to the
// last map announced by the header, using the sampling period.
func (x *IONEX) Timeseries() []time.Time {
	hdr := x.Header
	if hdr.SamplingPeriod <= 0 || hdr.EpochOfFirstMap.IsZero() {
		return nil
	}

	epochs := make([]time.Time, 0, hdr.NumberOfMaps)
	for t := hdr.EpochOfFirstMap; !t.After(hdr.EpochOfLastMap); t = t.Add(hdr.SamplingPeriod) {
		epochs = append(epochs, t)
	}
	return epochs
}

// SynchronousMapCells assembles the map cells of one epoch: every
// adjacent pair of latitude and longitude quanta forms a cell from its
// four corner keys. Cells missing a corner are skipped. Cells are
// yielded latitude-major, then longitude-major.
func (x *IONEX) SynchronousMapCells(epoch time.Time) []MapCell {
	grid := x.Header.Grid
	lats := grid.Latitude.SortedPoints()
	lons := grid.Longitude.SortedPoints()

	cells := make([]MapCell, 0)

	for _, alt := range grid.Altitude.SortedPoints() {
		for i := 0; i+1 < len(lats); i++ {
			south, north := lats[i], lats[i+1]

			for j := 0; j+1 < len(lons); j++ {
				west, east := lons[j], lons[j+1]

				northEast, ok := x.Record.Get(NewKey(epoch, north, east, alt))
				if !ok {
					continue
				}
				northWest, ok := x.Record.Get(NewKey(epoch, north, west, alt))
				if !ok {
					continue
				}
				southEast, ok := x.Record.Get(NewKey(epoch, south, east, alt))
				if !ok {
					continue
				}
				southWest, ok := x.Record.Get(NewKey(epoch, south, west, alt))
				if !ok {
					continue
				}

				cells = append(cells, MapCellFromDegrees(epoch,
					orb.Point{east, north}, northEast,
					orb.Point{west, north}, northWest,
					orb.Point{east, south}, southEast,
					orb.Point{west, south}, southWest,
				))
			}
		}
	}

	return cells
}

// MapCells assembles the map cells of every epoch of the header
// timeseries, epoch-major, then latitude-major, then longitude-major.
func (x *IONEX) MapCells() []MapCell {
	cells := make([]MapCell, 0)
	for _, epoch := range x.Timeseries() {
		cells = append(cells, x.SynchronousMapCells(epoch)...)
	}
	return cells
}

// WrappingMapCell returns the first cell at the given epoch that
// entirely contains the bounding rectangle of the given geometry.
func (x *IONEX) WrappingMapCell(epoch time.Time, geometry orb.Geometry) (MapCell, bool) {
	for _, cell := range x.SynchronousMapCells(epoch) {
		if cell.Contains(geometry) {
			return cell, true
		}
	}
	return MapCell{}, false
}

// UnitaryROIAt locates the cell containing the given point at the
// given instant. When the instant falls between two sampled epochs the
// two bracketing synchronous cells are interpolated.
func (x *IONEX) UnitaryROIAt(epoch time.Time, point orb.Point) (MapCell, error) {
	ts := x.Timeseries()
	if len(ts) == 0 {
		return MapCell{}, ErrOutsideTemporalBoundaries
	}
	if epoch.Before(ts[0]) || epoch.After(ts[len(ts)-1]) {
		return MapCell{}, ErrOutsideTemporalBoundaries
	}

	// locate the bracketing samples
	t0 := ts[0]
	t1 := t0
	for _, t := range ts {
		if t.After(epoch) {
			t1 = t
			break
		}
		t0 = t
		t1 = t
	}

	cell0, ok := x.WrappingMapCell(t0, point)
	if !ok {
		return MapCell{}, ErrOutsideSpatialBoundaries
	}

	if t1.Equal(t0) || epoch.Equal(t0) {
		return cell0, nil
	}

	cell1, ok := x.WrappingMapCell(t1, point)
	if !ok {
		return MapCell{}, ErrOutsideSpatialBoundaries
	}

	// corner wise linear interpolation between both synchronous cells
	w := epoch.Sub(t0).Seconds() / t1.Sub(t0).Seconds()
	lerp := func(a, b TecPoint) TecPoint {
		tecu := (1.0-w)*a.TEC.TecuValue() + w*b.TEC.TecuValue()
		return TecPoint{Point: a.Point, TEC: TECFromTecu(tecu)}
	}

	return MapCell{
		Epoch:     epoch,
		NorthEast: lerp(cell0.NorthEast, cell1.NorthEast),
		NorthWest: lerp(cell0.NorthWest, cell1.NorthWest),
		SouthEast: lerp(cell0.SouthEast, cell1.SouthEast),
		SouthWest: lerp(cell0.SouthWest, cell1.SouthWest),
	}, nil
}

// ToWorldwide widens the header grid to the worldwide extent and marks
// the attributes accordingly. The record is preserved.
func (x *IONEX) ToWorldwide() *IONEX {
	c := x.clone()

	lat := c.Header.Grid.Latitude
	if lat.Spacing < 0 || lat.Start > lat.End {
		lat.Start, lat.End = 87.5, -87.5
	} else {
		lat.Start, lat.End = -87.5, 87.5
	}

	lon := c.Header.Grid.Longitude
	if lon.Spacing < 0 || lon.Start > lon.End {
		lon.Start, lon.End = 180.0, -180.0
	} else {
		lon.Start, lon.End = -180.0, 180.0
	}

	c.Header.Grid.Latitude = lat
	c.Header.Grid.Longitude = lon

	if c.Attributes != nil {
		c.Attributes.Region = RegionWorldwide
	}

	return c
}

// ToRegional restricts the file to the bounding rectangle of the given
// polygon: cells entirely contained in the rectangle are preserved,
// the record is rebuilt from them and the header grid bounds are
// updated. ErrUndefinedBoundaries is returned when the polygon has no
// bounding rectangle.
func (x *IONEX) ToRegional(polygon orb.Polygon) (*IONEX, error) {
	if len(polygon) == 0 || len(polygon[0]) == 0 {
		return nil, ErrUndefinedBoundaries
	}
	bound := polygon.Bound()

	kept := make([]MapCell, 0)
	for _, cell := range x.MapCells() {
		cb := cell.BoundingRectDegrees()
		if bound.Contains(cb.Min) && bound.Contains(cb.Max) {
			kept = append(kept, cell)
		}
	}

	c := x.clone()
	c.Record = RecordFromMapCells(kept, x.Header.Grid.Altitude.Start)

	clip := func(axis Linspace, lo, hi float64) Linspace {
		if axis.Spacing < 0 || axis.Start > axis.End {
			axis.Start, axis.End = hi, lo
		} else {
			axis.Start, axis.End = lo, hi
		}
		return axis
	}
	c.Header.Grid.Latitude = clip(c.Header.Grid.Latitude, bound.Min.Y(), bound.Max.Y())
	c.Header.Grid.Longitude = clip(c.Header.Grid.Longitude, bound.Min.X(), bound.Max.X())

	if c.Attributes != nil {
		c.Attributes.Region = RegionRegional
	}

	return c, nil
}

// TemporalStretchMut multiplies the sampling period by a positive
// factor.
func (x *IONEX) TemporalStretchMut(factor float64) error {
	if factor <= 0.0 {
		return ErrNegativeStretchFactor
	}
	x.Header.SamplingPeriod = time.Duration(float64(x.Header.SamplingPeriod) * factor)
	return nil
}

// SpatialStretchMut stretches the latitude and longitude axes of the
// header grid by a positive factor, preserving the grid quantization.
func (x *IONEX) SpatialStretchMut(factor float64) error {
	if err := x.Header.Grid.Latitude.StretchMut(factor); err != nil {
		return err
	}
	return x.Header.Grid.Longitude.StretchMut(factor)
}

// MergeMut merges the right-hand file into this one. The reference
// system, map dimension and mapping function must match; the epoch
// range becomes the union of both, records are unioned by key, and a
// FILE MERGE comment marks the result.
func (x *IONEX) MergeMut(rhs *IONEX) error {
	if err := x.Header.MergeMut(rhs.Header); err != nil {
		return err
	}
	x.Record.MergeMut(rhs.Record)
	for _, comment := range rhs.Comments {
		if !containsString(x.Comments, comment) {
			x.Comments = append(x.Comments, comment)
		}
	}
	return nil
}

// Merge returns the merge of both files. See MergeMut.
func (x *IONEX) Merge(rhs *IONEX) (*IONEX, error) {
	c := x.clone()
	if err := c.MergeMut(rhs); err != nil {
		return nil, err
	}
	return c, nil
}

// IsMerged reports whether this file results from a previous merge
// operation, as marked by the somewhat standardized FILE MERGE
// comment.
func (x *IONEX) IsMerged() bool {
	return containsString(x.Header.Comments, mergeComment)
}

// StandardizedFilename returns a file name describing this file
// according to the standard conventions. Without resolved attributes,
// the date comes from the first record epoch, the region from the map
// extent, and the agency renders as the XXX placeholder.
func (x *IONEX) StandardizedFilename() string {
	if x.Attributes != nil {
		return x.Attributes.Filename()
	}

	attrs := FileAttributes{Agency: "XXX", Region: RegionWorldwide}
	if first, ok := x.Record.FirstEpoch(); ok {
		attrs.Year = first.Year()
		attrs.DOY = first.YearDay()
	}
	if x.IsRegionalMap() {
		attrs.Region = RegionRegional
	}
	return attrs.Filename()
}

// GuessAttributes derives production attributes from the record
// content. This is useful to generate standardized file names for
// files that do not follow the naming conventions. The agency cannot
// be derived from the content and must be provided as an at least
// three letter code.
func (x *IONEX) GuessAttributes(agency string) (*FileAttributes, error) {
	if len(agency) < 3 {
		return nil, fmt.Errorf("%w: agency %q", ErrNonStandardFilename, agency)
	}

	first, ok := x.Record.FirstEpoch()
	if !ok {
		first = x.Header.EpochOfFirstMap
	}

	region := RegionWorldwide
	if x.IsRegionalMap() {
		region = RegionRegional
	}

	return &FileAttributes{
		Agency: strings.ToUpper(agency[:3]),
		Region: region,
		Year:   first.Year(),
		DOY:    first.YearDay(),
	}, nil
}

// clone returns a deep copy of the file.
func (x *IONEX) clone() *IONEX {
	c := &IONEX{
		Header:   x.Header.Clone(),
		Record:   x.Record.Clone(),
		Comments: append([]string(nil), x.Comments...),
	}
	if x.Attributes != nil {
		attrs := *x.Attributes
		c.Attributes = &attrs
	}
	return c
}

// Equal reports whether both files carry the same header, record and
// comments.
func (x *IONEX) Equal(rhs *IONEX) bool {
	if len(x.Comments) != len(rhs.Comments) {
		return false
	}
	for i := range x.Comments {
		if x.Comments[i] != rhs.Comments[i] {
			return false
		}
	}
	if !x.Record.Equal(rhs.Record) {
		return false
	}
	return reflect.DeepEqual(x.Header, rhs.Header)
}
