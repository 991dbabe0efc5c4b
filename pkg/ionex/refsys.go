package ionex

import (
	"fmt"
	"strings"

	"github.com/de-bkg/goionex/pkg/gnss"
)

// MappingFunction is the function adopted for the TEC determination.
type MappingFunction int

// Available mapping functions.
const (
	// MappingNone means no mapping function was used, e.g. altimetry.
	MappingNone MappingFunction = iota

	// MappingCosZ is the 1/cos(z) model.
	MappingCosZ

	// MappingQFactor is the Q-factor model.
	MappingQFactor
)

func (m MappingFunction) String() string {
	return [...]string{"NONE", "COSZ", "QFAC"}[m]
}

// ParseMappingFunction parses a mapping function header field.
func ParseMappingFunction(s string) (MappingFunction, error) {
	switch strings.TrimSpace(s) {
	case "NONE", "":
		return MappingNone, nil
	case "COSZ", "cosine":
		return MappingCosZ, nil
	case "QFAC":
		return MappingQFactor, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMappingFunction, s)
}

// OtherSystem is an Earth observation satellite or empirical model
// that may serve the TEC map evaluation process.
type OtherSystem int

// Available systems.
const (
	// OtherBENt is the BENt empirical model.
	OtherBENt OtherSystem = iota + 1

	// OtherENVisat is the ESA ENVisat Earth observation satellite.
	OtherENVisat

	// OtherERS is the European Remote Sensing satellite (ERS-1/ERS-2),
	// now replaced by ENVisat.
	OtherERS

	// OtherIRI is the International Reference Ionosphere.
	OtherIRI
)

func (o OtherSystem) String() string {
	return [...]string{"", "BEN", "ENV", "ERS", "IRI"}[o]
}

// ParseOtherSystem parses an Earth observation system name.
func ParseOtherSystem(s string) (OtherSystem, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BEN", "BENT":
		return OtherBENt, nil
	case "ENV", "ENVISAT":
		return OtherENVisat, nil
	case "ERS":
		return OtherERS, nil
	case "IRI":
		return OtherIRI, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownReferenceSystem, s)
}

// TheoreticalModel is a map resulting of a theoretical model.
type TheoreticalModel int

// Available models.
const (
	// ModelMIX means mixed or combined models.
	ModelMIX TheoreticalModel = iota + 1

	// ModelNNS is the NNS transit.
	ModelNNS

	// ModelTOP is TOPex: electron content measured over sea surface
	// at altitudes below the satellite orbits (1336 km).
	ModelTOP
)

func (m TheoreticalModel) String() string {
	return [...]string{"", "MIX", "NNS", "TOP"}[m]
}

// ParseTheoreticalModel parses a theoretical model tag.
func ParseTheoreticalModel(s string) (TheoreticalModel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MIX":
		return ModelMIX, nil
	case "NNS":
		return ModelNNS, nil
	case "TOP":
		return ModelTOP, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownReferenceSystem, s)
}

// RefSystemKind discriminates the reference system variants.
type RefSystemKind int

// Reference system variants.
const (
	// RefConstellation: a GNSS constellation served the evaluation.
	// TEC maps then include electron content through the ionosphere
	// and plasmasphere, up to altitude 20000 km.
	RefConstellation RefSystemKind = iota + 1

	// RefOtherSystem: an Earth observation satellite or empirical model.
	RefOtherSystem

	// RefTheoreticalModel: a theoretical model whose parameters are
	// given in the header section.
	RefTheoreticalModel
)

// ReferenceSystem describes either the reference constellation or the
// theoretical model used in the TEC map evaluation.
type ReferenceSystem struct {
	// Kind selects the valid variant field.
	Kind RefSystemKind

	// Constellation is valid when Kind is RefConstellation.
	Constellation gnss.System

	// Other is valid when Kind is RefOtherSystem.
	Other OtherSystem

	// Model is valid when Kind is RefTheoreticalModel.
	Model TheoreticalModel
}

// DefaultReferenceSystem is a GPS constellation reference.
var DefaultReferenceSystem = ReferenceSystem{Kind: RefConstellation, Constellation: gnss.SysGPS}

func (r ReferenceSystem) String() string {
	switch r.Kind {
	case RefConstellation:
		if r.Constellation == gnss.SysMIXED {
			return "GNSS"
		}
		return r.Constellation.String()
	case RefOtherSystem:
		return r.Other.String()
	case RefTheoreticalModel:
		return r.Model.String()
	}
	return ""
}

// ParseReferenceSystem parses a reference system field, trying the
// constellation, Earth observation and theoretical model variants in
// that order.
func ParseReferenceSystem(s string) (ReferenceSystem, error) {
	if sys, err := gnss.ParseSystem(s); err == nil {
		return ReferenceSystem{Kind: RefConstellation, Constellation: sys}, nil
	}
	if other, err := ParseOtherSystem(s); err == nil {
		return ReferenceSystem{Kind: RefOtherSystem, Other: other}, nil
	}
	if model, err := ParseTheoreticalModel(s); err == nil {
		return ReferenceSystem{Kind: RefTheoreticalModel, Model: model}, nil
	}
	return ReferenceSystem{}, fmt.Errorf("%w: %q", ErrUnknownReferenceSystem, s)
}
