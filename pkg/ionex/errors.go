package ionex

import "errors"

// Parsing errors. The header parser is strict and aborts on any of
// these; the body parser logs and skips malformed samples instead.
var (
	// ErrNoHeader is returned when reading IONEX data that does not begin with a header section.
	ErrNoHeader = errors.New("ionex: no header")

	// ErrHeaderLineTooShort is returned for header lines that cannot carry a marker.
	ErrHeaderLineTooShort = errors.New("ionex: header line too short")

	// ErrInvalidGridDefinition is returned when an axis definition is not a valid linear space.
	ErrInvalidGridDefinition = errors.New("ionex: invalid grid definition")

	// ErrEpochParsing is returned for malformed datetime fields.
	ErrEpochParsing = errors.New("ionex: datetime parsing")

	// ErrVersionParsing is returned for malformed revision numbers.
	ErrVersionParsing = errors.New("ionex: revision number parsing")

	// ErrUnknownMappingFunction is returned for unrecognized mapping functions.
	ErrUnknownMappingFunction = errors.New("ionex: unknown mapping function")

	// ErrUnknownReferenceSystem is returned for unrecognized reference systems.
	ErrUnknownReferenceSystem = errors.New("ionex: unknown reference system")

	// ErrExponentScaling is returned when a scaling exponent cannot be parsed.
	ErrExponentScaling = errors.New("ionex: exponent scaling parsing")

	// ErrNonStandardFilename is returned for filenames that do not follow the naming conventions.
	ErrNonStandardFilename = errors.New("ionex: filename does not follow naming conventions")
)

// Formatting errors.
var (
	// ErrNoGridDefinition is returned when formatting a file whose header carries no grid.
	ErrNoGridDefinition = errors.New("ionex: missing grid definition")
)

// Semantic errors surfaced by the cell engine and the file facade.
var (
	// ErrOutsideSpatialBoundaries is returned when a point lies outside the queried cell.
	ErrOutsideSpatialBoundaries = errors.New("ionex: outside spatial boundaries")

	// ErrOutsideTemporalBoundaries is returned when an instant lies outside the sampled interval.
	ErrOutsideTemporalBoundaries = errors.New("ionex: outside temporal boundaries")

	// ErrTemporalMismatch is returned when two cells are not synchronous.
	ErrTemporalMismatch = errors.New("ionex: temporal mismatch")

	// ErrSpatialMismatch is returned when two cells do not describe the same region.
	ErrSpatialMismatch = errors.New("ionex: spatial mismatch")

	// ErrUndefinedBoundaries is returned for geometries without a bounding rectangle.
	ErrUndefinedBoundaries = errors.New("ionex: undefined boundaries")

	// ErrInvalidStretchFactor is returned for stretch factors that are zero or not finite.
	ErrInvalidStretchFactor = errors.New("ionex: stretch factor must be a non-zero finite number")

	// ErrNegativeStretchFactor is returned for axis stretch factors that are not positive.
	ErrNegativeStretchFactor = errors.New("ionex: stretch factor must be positive")

	// ErrMergeMismatch is returned when two files cannot be merged because
	// their reference system, map dimension or mapping function differ.
	ErrMergeMismatch = errors.New("ionex: merge invariants differ")

	// ErrIncompleteNeighborhood is returned when nine cells cannot be arranged into a 3x3 region.
	ErrIncompleteNeighborhood = errors.New("ionex: cells do not form a 3x3 neighborhood")
)
