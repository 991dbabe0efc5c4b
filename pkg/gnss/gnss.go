// Package gnss contains common constants and type definitions.
package gnss

import (
	"encoding/json"
	"fmt"
	"strings"
)

// System is a satellite system.
type System int

// Available satellite systems.
const (
	SysGPS System = iota + 1
	SysGLO
	SysGAL
	SysQZSS
	SysBDS
	SysIRNSS
	SysSBAS
	SysMIXED
)

func (sys System) String() string {
	return [...]string{"", "GPS", "GLO", "GAL", "QZSS", "BDS", "IRNSS", "SBAS", "MIXED"}[sys]
}

// Abbr returns the systems' one letter abbreviation.
func (sys System) Abbr() string {
	return [...]string{"", "G", "R", "E", "J", "C", "I", "S", "M"}[sys]
}

// ParseSystem returns the system described by the given name, as found
// in IONEX or RINEX header fields. "GNSS" denotes the combination of
// several constellations and maps to SysMIXED.
func ParseSystem(name string) (System, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "GPS", "G":
		return SysGPS, nil
	case "GLO", "GLONASS", "R":
		return SysGLO, nil
	case "GAL", "GALILEO", "E":
		return SysGAL, nil
	case "QZSS", "J":
		return SysQZSS, nil
	case "BDS", "BDT", "C":
		return SysBDS, nil
	case "IRNSS", "NAVIC", "I":
		return SysIRNSS, nil
	case "SBAS", "S":
		return SysSBAS, nil
	case "MIXED", "GNSS", "M":
		return SysMIXED, nil
	}
	return 0, fmt.Errorf("unknown satellite system %q", name)
}

// MarshalJSON encodes the system as its abbreviation.
func (sys System) MarshalJSON() ([]byte, error) {
	return json.Marshal(sys.Abbr())
}

// Systems specifies a list of satellite systems.
type Systems []System

// ParseSatSystems parses a list of systems in sitelog manner GPS+GLO+...
func ParseSatSystems(s string) (Systems, error) {
	systems := make(Systems, 0, 4)
	for _, name := range strings.Split(s, "+") {
		sys, err := ParseSystem(name)
		if err != nil {
			return nil, err
		}
		systems = append(systems, sys)
	}
	return systems, nil
}

// String returns the contained systems in sitelog manner GPS+GLO+...
func (syss Systems) String() string {
	str := make([]string, 0, len(syss))
	for _, sys := range syss {
		str = append(str, sys.String())
	}
	return strings.Join(str, "+")
}
