package ionex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FileNamePattern is the regex for standard IONEX filenames,
// AAA[G|R]DDD0.YYI with an optional gzip suffix.
var FileNamePattern = regexp.MustCompile(`(?i)^([a-z0-9]{3})([gr])(\d{3})0\.(\d{2})i(\.gz)?$`)

// Region is the map extent code carried by standard filenames.
type Region int

// Available regions.
const (
	// RegionWorldwide denotes global maps.
	RegionWorldwide Region = iota

	// RegionRegional denotes local maps.
	RegionRegional
)

func (r Region) String() string {
	if r == RegionRegional {
		return "R"
	}
	return "G"
}

// FileAttributes are the production attributes resolved from file
// names that follow the standard naming conventions. They are used
// when generating standardized file names, or attached to data parsed
// from such files.
type FileAttributes struct {
	// Agency is the three letter production agency code.
	Agency string

	// Region is the worldwide or regional map code.
	Region Region

	// Year of production (four digits).
	Year int

	// DOY is the production day of year.
	DOY int

	// GzipCompressed is true if the file was gzip compressed.
	GzipCompressed bool
}

// ParseFilename resolves the production attributes described by a
// standard IONEX filename. Matching is case insensitive.
func ParseFilename(filename string) (*FileAttributes, error) {
	res := FileNamePattern.FindStringSubmatch(filename)
	if res == nil {
		return nil, fmt.Errorf("%w: %q", ErrNonStandardFilename, filename)
	}

	doy, err := strconv.Atoi(res[3])
	if err != nil || doy < 1 || doy > 366 {
		return nil, fmt.Errorf("%w: day of year %q", ErrNonStandardFilename, res[3])
	}

	yy, err := strconv.Atoi(res[4])
	if err != nil {
		return nil, fmt.Errorf("%w: year %q", ErrNonStandardFilename, res[4])
	}

	region := RegionWorldwide
	if strings.EqualFold(res[2], "R") {
		region = RegionRegional
	}

	return &FileAttributes{
		Agency:         strings.ToUpper(res[1]),
		Region:         region,
		Year:           yy + 2000,
		DOY:            doy,
		GzipCompressed: res[5] != "",
	}, nil
}

// Filename returns the canonical upper-case filename described by the
// attributes.
func (a *FileAttributes) Filename() string {
	ext := ""
	if a.GzipCompressed {
		ext = ".gz"
	}
	return fmt.Sprintf("%s%s%03d0.%02dI%s",
		strings.ToUpper(a.Agency), a.Region, a.DOY, a.Year%100, ext)
}
