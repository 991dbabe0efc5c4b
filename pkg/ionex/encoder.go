package ionex

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// tokensPerLine is the number of sample tokens carried by one body
// line (16 five-column values fill the 80 columns).
const tokensPerLine = 16

// Encoder formats an IONEX object into a writable stream, mirroring
// the Decoder. The emitter is a pure function of the in-memory state:
// it scans the grid announced by the header and renders missing record
// entries as the omitted-value sentinel.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns a new encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes the complete file: header section, then the map
// blocks in chronological order, then the END OF FILE marker.
func (enc *Encoder) Encode(x *IONEX) error {
	if err := enc.encodeHeader(x.Header); err != nil {
		return err
	}
	// body comments are preserved right after the header section
	for _, comment := range x.Comments {
		if err := enc.writeLine(comment, "COMMENT"); err != nil {
			return err
		}
	}
	if err := enc.encodeRecord(x.Header, x.Record); err != nil {
		return err
	}
	return enc.w.Flush()
}

// fmtLine pads content to 60 columns and appends the marker. Longer
// content wraps onto successive lines sharing the same marker.
func fmtLine(content, marker string) string {
	if len(content) <= 60 {
		return fmt.Sprintf("%-60s%s", content, marker)
	}

	var b strings.Builder
	for off := 0; off < len(content); off += 60 {
		end := off + 60
		if end > len(content) {
			end = len(content)
		}
		if off > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-60s%s", content[off:end], marker)
	}
	return b.String()
}

func (enc *Encoder) writeLine(content, marker string) error {
	_, err := fmt.Fprintln(enc.w, fmtLine(content, marker))
	return err
}

// encodeHeader emits the header fields in canonical order.
func (enc *Encoder) encodeHeader(hdr *Header) error {
	if hdr.Grid == (Grid{}) {
		return ErrNoGridDefinition
	}

	version := fmt.Sprintf("%8.1f            IONOSPHERE MAPS     %-4s",
		hdr.Version.Value(), hdr.ReferenceSystem)
	if err := enc.writeLine(version, "IONEX VERSION / TYPE"); err != nil {
		return err
	}

	pgm := fmt.Sprintf("%-20s%-20s%-20s", hdr.Program, hdr.RunBy, hdr.Date)
	if err := enc.writeLine(pgm, "PGM / RUN BY / DATE"); err != nil {
		return err
	}

	if hdr.Description != "" {
		if err := enc.writeLine(hdr.Description, "DESCRIPTION"); err != nil {
			return err
		}
	}
	if hdr.License != "" {
		if err := enc.writeLine(hdr.License, "LICENSE OF USE"); err != nil {
			return err
		}
	}
	if hdr.DOI != "" {
		if err := enc.writeLine(hdr.DOI, "DOI"); err != nil {
			return err
		}
	}

	if err := enc.writeLine(fmt.Sprintf("%6d", hdr.MapDimension), "MAP DIMENSION"); err != nil {
		return err
	}
	if err := enc.writeLine(fmt.Sprintf("%6d", hdr.NumberOfMaps), "# OF MAPS IN FILE"); err != nil {
		return err
	}
	if hdr.NumStations > 0 {
		if err := enc.writeLine(fmt.Sprintf("%6d", hdr.NumStations), "# OF STATIONS"); err != nil {
			return err
		}
	}
	if hdr.NumSatellites > 0 {
		if err := enc.writeLine(fmt.Sprintf("%6d", hdr.NumSatellites), "# OF SATELLITES"); err != nil {
			return err
		}
	}

	if err := enc.writeLine(formatAxis(hdr.Grid.Altitude), "HGT1 / HGT2 / DHGT"); err != nil {
		return err
	}
	if err := enc.writeLine(formatAxis(hdr.Grid.Latitude), "LAT1 / LAT2 / DLAT"); err != nil {
		return err
	}
	if err := enc.writeLine(formatAxis(hdr.Grid.Longitude), "LON1 / LON2 / DLON"); err != nil {
		return err
	}

	interval := int(math.Round(hdr.SamplingPeriod.Seconds()))
	if err := enc.writeLine(fmt.Sprintf("%6d", interval), "INTERVAL"); err != nil {
		return err
	}

	if err := enc.writeLine(formatEpoch(hdr.EpochOfFirstMap), "EPOCH OF FIRST MAP"); err != nil {
		return err
	}
	if err := enc.writeLine(formatEpoch(hdr.EpochOfLastMap), "EPOCH OF LAST MAP"); err != nil {
		return err
	}

	if err := enc.writeLine(fmt.Sprintf("%8.1f", hdr.ElevationCutoff), "ELEVATION CUTOFF"); err != nil {
		return err
	}
	if err := enc.writeLine(fmt.Sprintf("  %s", hdr.MappingFunction), "MAPPING FUNCTION"); err != nil {
		return err
	}
	if err := enc.writeLine(fmt.Sprintf("%8.1f", hdr.BaseRadiusKm), "BASE RADIUS"); err != nil {
		return err
	}
	if err := enc.writeLine(fmt.Sprintf("%6d", hdr.Exponent), "EXPONENT"); err != nil {
		return err
	}

	for _, comment := range hdr.Comments {
		if err := enc.writeLine(comment, "COMMENT"); err != nil {
			return err
		}
	}

	return enc.writeLine("", "END OF HEADER")
}

// formatAxis renders the three axis fields of a grid definition line.
func formatAxis(l Linspace) string {
	return fmt.Sprintf("  %6.1f%6.1f%6.1f", l.Start, l.End, l.Spacing)
}

// formatGridSpec renders a LAT/LON1/LON2/DLON/H row declaration.
func formatGridSpec(latDdeg float64, lon Linspace, altKm float64) string {
	return fmt.Sprintf("  %6.1f%6.1f%6.1f%6.1f%6.1f",
		latDdeg, lon.Start, lon.End, lon.Spacing, altKm)
}

// encodeRecord emits the map blocks: for each epoch a TEC block, an
// RMS block when any sample carries an RMS companion, and a height
// block when any sample carries an altitude offset.
func (enc *Encoder) encodeRecord(hdr *Header, rec *Record) error {
	hasRMS := false
	hasHeight := false
	rec.Range(func(_ Key, tec TEC) bool {
		hasRMS = hasRMS || tec.Rms != nil
		hasHeight = hasHeight || tec.Height != nil
		return !(hasRMS && hasHeight)
	})

	for index, epoch := range rec.Epochs() {
		nth := index + 1

		if err := enc.encodeBlock(hdr, rec, epoch, nth, blockTEC); err != nil {
			return err
		}
		if hasRMS {
			if err := enc.encodeBlock(hdr, rec, epoch, nth, blockRMS); err != nil {
				return err
			}
		}
		if hasHeight {
			if err := enc.encodeBlock(hdr, rec, epoch, nth, blockHeight); err != nil {
				return err
			}
		}
	}

	return enc.writeLine("", "END OF FILE")
}

// blockMarkers returns the start and end markers for a block kind.
func blockMarkers(kind blockKind) (string, string) {
	switch kind {
	case blockRMS:
		return "START OF RMS MAP", "END OF RMS MAP"
	case blockHeight:
		return "START OF HEIGHT MAP", "END OF HEIGHT MAP"
	default:
		return "START OF TEC MAP", "END OF TEC MAP"
	}
}

// encodeBlock emits one synchronous map block, scanning the header
// grid row by row and writing the omitted-value sentinel for missing
// samples.
func (enc *Encoder) encodeBlock(hdr *Header, rec *Record, epoch time.Time, nth int, kind blockKind) error {
	start, end := blockMarkers(kind)

	if err := enc.writeLine(fmt.Sprintf("%6d", nth), start); err != nil {
		return err
	}
	if err := enc.writeLine(formatEpoch(epoch), "EPOCH OF CURRENT MAP"); err != nil {
		return err
	}

	latExponent := FindExponent(hdr.Grid.Latitude.Spacing)
	lonExponent := FindExponent(hdr.Grid.Longitude.Spacing)
	altExponent := FindExponent(hdr.Grid.Altitude.Spacing)
	scale := math.Pow(10.0, float64(hdr.Exponent))

	for _, alt := range hdr.Grid.Altitude.Quantize() {
		for _, lat := range hdr.Grid.Latitude.Quantize() {
			spec := formatGridSpec(lat.Real(), hdr.Grid.Longitude, alt.Real())
			if err := enc.writeLine(spec, "LAT/LON1/LON2/DLON/H"); err != nil {
				return err
			}

			var row strings.Builder
			nthToken := 0

			for _, lon := range hdr.Grid.Longitude.Quantize() {
				key := Key{
					Epoch: epoch,
					Coordinates: coordinatesFromQuantized(
						NewQuantized(lat.Real(), latExponent),
						NewQuantized(lon.Real(), lonExponent),
						NewQuantized(alt.Real(), altExponent),
					),
				}

				token := omittedValue
				if tec, ok := rec.Get(key); ok {
					if value, ok := blockValue(tec, kind, scale); ok {
						token = fmt.Sprintf("%d", value)
					}
				}
				fmt.Fprintf(&row, "%5s", token)

				nthToken++
				if nthToken%tokensPerLine == 0 {
					if _, err := fmt.Fprintln(enc.w, row.String()); err != nil {
						return err
					}
					row.Reset()
				}
			}

			if row.Len() > 0 {
				if _, err := fmt.Fprintln(enc.w, row.String()); err != nil {
					return err
				}
			}
		}
	}

	return enc.writeLine(fmt.Sprintf("%6d", nth), end)
}

// blockValue returns the integer token for one sample in the given
// block kind, or false when the sample must render as omitted.
func blockValue(tec TEC, kind blockKind, scale float64) (int64, bool) {
	switch kind {
	case blockRMS:
		rms, ok := tec.RMS()
		if !ok {
			return 0, false
		}
		return int64(math.Round(rms / scale)), true
	case blockHeight:
		height, ok := tec.HeightKm()
		if !ok {
			return 0, false
		}
		return int64(math.Round(height / scale)), true
	default:
		return int64(math.Round(tec.TecuValue() / scale)), true
	}
}
