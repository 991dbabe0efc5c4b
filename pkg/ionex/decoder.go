package ionex

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"
)

// omittedValue is the sentinel token written where no estimate is available.
const omittedValue = "9999"

// blockKind discriminates the three map block flavors of a file body.
type blockKind int

const (
	blockTEC blockKind = iota
	blockRMS
	blockHeight
)

// Decoder reads and decodes an IONEX input stream.
// The header section is consumed on construction; Decode consumes the
// body. The header parser is strict, the body parser logs and skips
// malformed samples so partially corrupt files still load.
type Decoder struct {
	// Header is valid after NewDecoder. The header must exist:
	// ErrNoHeader is returned when no version line or END OF HEADER
	// marker is found, ErrHeaderLineTooShort for a non-blank line that
	// cannot carry a marker.
	Header Header

	sc      *bufio.Scanner
	lineNum int
	err     error
}

// NewDecoder creates a new decoder for IONEX data and implicitly
// reads the header section, which must exist.
//
// It is the caller's responsibility to close the underlying reader when done.
func NewDecoder(r io.Reader) (*Decoder, error) {
	dec := &Decoder{sc: bufio.NewScanner(r)}
	dec.Header, dec.err = dec.readHeader()
	return dec, dec.err
}

// Err returns the first non-EOF error encountered by the decoder.
func (dec *Decoder) Err() error {
	if dec.err == io.EOF {
		return nil
	}
	return dec.err
}

func (dec *Decoder) setErr(err error) {
	if dec.err == nil || dec.err == io.EOF {
		dec.err = err
	}
}

// readLine reads the next line into the buffer. It returns false if an
// error occurs or EOF was reached.
func (dec *Decoder) readLine() bool {
	if ok := dec.sc.Scan(); !ok {
		return ok
	}
	dec.lineNum++
	return true
}

// line returns the current line.
func (dec *Decoder) line() string {
	return dec.sc.Text()
}

// readHeader reads the header section up to END OF HEADER.
// Any malformed required field aborts.
func (dec *Decoder) readHeader() (hdr Header, err error) {
	hdr = *NewHeader()
	sawEnd := false
	sawVersion := false

readln:
	for dec.readLine() {
		line := dec.line()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) < 61 {
			return hdr, fmt.Errorf("%w: line %d %q", ErrHeaderLineTooShort, dec.lineNum, line)
		}

		val := line[:60] // IONEX files are ASCII
		key := strings.TrimSpace(line[60:])

		switch key {
		case "IONEX VERSION / TYPE":
			sawVersion = true
			vers, err := ParseVersion(val[:20])
			if err != nil {
				return hdr, err
			}
			hdr.Version = vers
			if sys := strings.TrimSpace(val[40:]); sys != "" {
				ref, err := ParseReferenceSystem(sys)
				if err != nil {
					return hdr, err
				}
				hdr.ReferenceSystem = ref
			}
		case "PGM / RUN BY / DATE":
			hdr.Program = strings.TrimSpace(val[:20])
			hdr.RunBy = strings.TrimSpace(val[20:40])
			hdr.Date = strings.TrimSpace(val[40:])
		case "DESCRIPTION":
			hdr = *hdr.WithDescription(strings.TrimSpace(val))
		case "COMMENT":
			hdr.Comments = append(hdr.Comments, strings.TrimRight(val, " "))
		case "LICENSE OF USE":
			hdr.License = strings.TrimSpace(val)
		case "DOI":
			hdr.DOI = strings.TrimSpace(val)
		case "EPOCH OF FIRST MAP":
			if hdr.EpochOfFirstMap, err = parseEpoch(val); err != nil {
				return hdr, err
			}
		case "EPOCH OF LAST MAP":
			if hdr.EpochOfLastMap, err = parseEpoch(val); err != nil {
				return hdr, err
			}
		case "INTERVAL":
			secs, err := parseFloat(val[:20])
			if err != nil {
				return hdr, fmt.Errorf("ionex: parse INTERVAL: %w", err)
			}
			hdr.SamplingPeriod = time.Duration(secs * float64(time.Second))
		case "# OF MAPS IN FILE":
			if hdr.NumberOfMaps, err = parseInt(val); err != nil {
				return hdr, fmt.Errorf("ionex: parse # OF MAPS IN FILE: %w", err)
			}
		case "# OF STATIONS":
			if hdr.NumStations, err = parseInt(val); err != nil {
				return hdr, fmt.Errorf("ionex: parse # OF STATIONS: %w", err)
			}
		case "# OF SATELLITES":
			if hdr.NumSatellites, err = parseInt(val); err != nil {
				return hdr, fmt.Errorf("ionex: parse # OF SATELLITES: %w", err)
			}
		case "MAP DIMENSION":
			if hdr.MapDimension, err = parseInt(val); err != nil {
				return hdr, fmt.Errorf("ionex: parse MAP DIMENSION: %w", err)
			}
		case "ELEVATION CUTOFF":
			if hdr.ElevationCutoff, err = parseFloat(val); err != nil {
				return hdr, fmt.Errorf("ionex: parse ELEVATION CUTOFF: %w", err)
			}
		case "MAPPING FUNCTION":
			if hdr.MappingFunction, err = ParseMappingFunction(val); err != nil {
				return hdr, err
			}
		case "BASE RADIUS":
			if hdr.BaseRadiusKm, err = parseFloat(val); err != nil {
				return hdr, fmt.Errorf("ionex: parse BASE RADIUS: %w", err)
			}
		case "EXPONENT":
			exp, err := parseInt(val)
			if err != nil {
				return hdr, fmt.Errorf("%w: %q", ErrExponentScaling, strings.TrimSpace(val))
			}
			hdr.Exponent = int8(exp)
		case "HGT1 / HGT2 / DHGT":
			if hdr.Grid.Altitude, err = parseHeaderAxis(val); err != nil {
				return hdr, err
			}
		case "LAT1 / LAT2 / DLAT":
			if hdr.Grid.Latitude, err = parseHeaderAxis(val); err != nil {
				return hdr, err
			}
		case "LON1 / LON2 / DLON":
			if hdr.Grid.Longitude, err = parseHeaderAxis(val); err != nil {
				return hdr, err
			}
		case "END OF HEADER":
			sawEnd = true
			break readln
		default:
			// other markers are tolerated and ignored
		}
	}

	if err := dec.sc.Err(); err != nil {
		return hdr, err
	}
	if !sawEnd || !sawVersion {
		return hdr, ErrNoHeader
	}

	return hdr, nil
}

// parseHeaderAxis parses the three axis fields of a grid definition
// line, living in six-wide columns at offsets 2, 8 and 14.
func parseHeaderAxis(content string) (Linspace, error) {
	if len(content) < 20 {
		return Linspace{}, fmt.Errorf("%w: %q", ErrInvalidGridDefinition, content)
	}
	fields := make([]float64, 3)
	for i := range fields {
		f, err := parseFloat(content[2+6*i : 8+6*i])
		if err != nil {
			return Linspace{}, fmt.Errorf("%w: %q", ErrInvalidGridDefinition, content)
		}
		fields[i] = f
	}
	return NewLinspace(fields[0], fields[1], fields[2])
}

// Decode consumes the file body, returning the record and the
// comments found in the body section.
func (dec *Decoder) Decode() (*Record, []string, error) {
	record := NewRecord()
	comments := []string{}

	epoch := dec.Header.EpochOfFirstMap
	exponent := dec.Header.Exponent
	kind := blockTEC

	var spec gridSpec
	haveSpec := false

	latExponent := FindExponent(dec.Header.Grid.Latitude.Spacing)
	altExponent := FindExponent(dec.Header.Grid.Altitude.Spacing)
	lonExponent := int8(0)

	var tokens []string

	// flush decodes the buffered tokens against the active grid spec:
	// the longitude cursor starts at the western bound and advances
	// for every token, the sentinel advancing without emitting a key.
	flush := func() {
		if !haveSpec || len(tokens) == 0 {
			tokens = tokens[:0]
			return
		}

		numPoints := spec.longitude.NumPoints()
		lat := NewQuantized(spec.latDdeg, latExponent)
		alt := NewQuantized(spec.altKm, altExponent)

		for i, token := range tokens {
			// tolerate corrupt rows carrying too many values
			if i >= numPoints {
				break
			}
			if token == omittedValue {
				continue
			}

			value, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				log.Printf("ionex: line %d: skipping unparsable value %q", dec.lineNum, token)
				continue
			}

			lon := NewQuantized(spec.longitude.Start+float64(i)*spec.longitude.Spacing, lonExponent)
			key := Key{
				Epoch:       epoch,
				Coordinates: coordinatesFromQuantized(lat, lon, alt),
			}

			switch kind {
			case blockRMS:
				tec, ok := record.Get(key)
				if !ok {
					tec = TEC{}
				}
				tec.setQuantizedRMS(value, exponent)
				record.Insert(key, tec)
			case blockHeight:
				// height maps are accepted but their samples are not stored yet
			default:
				tec := TECFromQuantized(value, exponent)
				if prev, ok := record.Get(key); ok {
					tec.Rms = prev.Rms
					tec.Height = prev.Height
				}
				record.Insert(key, tec)
			}
		}

		tokens = tokens[:0]
	}

	for dec.readLine() {
		line := dec.line()

		if len(line) <= 60 {
			tokens = append(tokens, strings.Fields(line)...)
			continue
		}

		content := line[:60]
		marker := strings.TrimSpace(line[60:])

		switch {
		case marker == "COMMENT":
			comments = append(comments, strings.TrimRight(content, " "))

		case marker == "EXPONENT":
			flush()
			exp, err := parseInt(content)
			if err != nil {
				dec.setErr(fmt.Errorf("%w: line %d %q", ErrExponentScaling, dec.lineNum, strings.TrimSpace(content)))
				return record, comments, dec.Err()
			}
			exponent = int8(exp)

		case marker == "EPOCH OF CURRENT MAP":
			flush()
			t, err := parseEpoch(content)
			if err != nil {
				dec.setErr(fmt.Errorf("ionex: line %d: %w", dec.lineNum, err))
				return record, comments, dec.Err()
			}
			epoch = t

		case marker == "START OF TEC MAP":
			flush()
			kind = blockTEC

		case marker == "START OF RMS MAP":
			flush()
			kind = blockRMS

		case marker == "START OF HEIGHT MAP":
			flush()
			kind = blockHeight

		case marker == "LAT/LON1/LON2/DLON/H":
			// a grid spec both closes the previous row and opens the next one
			flush()
			next, err := parseGridSpec(content)
			if err != nil {
				log.Printf("ionex: line %d: %v", dec.lineNum, err)
				continue
			}
			spec = next
			haveSpec = true
			lonExponent = FindExponent(spec.longitude.Spacing)

		case strings.HasPrefix(marker, "END OF"):
			flush()
			if marker == "END OF FILE" {
				return record, comments, nil
			}

		default:
			// unrecognized marker: the line contributes tokens
			tokens = append(tokens, strings.Fields(line)...)
		}
	}

	// files missing the END OF FILE marker still flush their last row
	flush()

	if err := dec.sc.Err(); err != nil {
		dec.setErr(fmt.Errorf("ionex: read body: %w", err))
	}

	return record, comments, dec.Err()
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
