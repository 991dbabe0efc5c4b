package ionex

import (
	"fmt"
	"strconv"
	"strings"
)

// Version describes the file format revision.
type Version struct {
	// Major revision number.
	Major int

	// Minor revision number.
	Minor int
}

// NewVersion builds a new format revision.
func NewVersion(major, minor int) Version {
	return Version{Major: major, Minor: minor}
}

// DefaultVersion is the revision assumed when a file carries none.
var DefaultVersion = NewVersion(1, 0)

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Value returns the revision as a decimal number, e.g. 1.1.
func (v Version) Value() float64 {
	return float64(v.Major) + float64(v.Minor)/10.0
}

// Cmp compares two revisions, returning -1, 0 or +1.
func (v Version) Cmp(rhs Version) int {
	if v.Major != rhs.Major {
		if v.Major < rhs.Major {
			return -1
		}
		return +1
	}
	if v.Minor != rhs.Minor {
		if v.Minor < rhs.Minor {
			return -1
		}
		return +1
	}
	return 0
}

// ParseVersion parses a revision like "1.0" or "1".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrVersionParsing
	}

	major, minor := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		major, minor = s[:i], s[i+1:]
	}

	maj, err := strconv.Atoi(major)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrVersionParsing, s)
	}

	min := 0
	if minor != "" {
		if min, err = strconv.Atoi(minor); err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrVersionParsing, s)
		}
	}

	return Version{Major: maj, Minor: min}, nil
}
