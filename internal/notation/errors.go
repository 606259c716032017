package notation

import "errors"

// Parse failures. Every error aborts the parse of that sheet; no partial
// Sheet is ever returned alongside an error.
var (
	// ErrCloseWithoutOpen is returned for a ']' with no preceding '['.
	ErrCloseWithoutOpen = errors.New("notation: key group closed without being opened")

	// ErrCloseMissingPayload is returned if a close is reached with group
	// state set but no pending key slice. Unreachable with well-formed
	// state tracking; kept as an internal consistency check.
	ErrCloseMissingPayload = errors.New("notation: key group closed with no pending keys")

	// ErrMalformedDefine is returned for a '#' line without a space
	// separating the name from the value.
	ErrMalformedDefine = errors.New("notation: define line must be a name and value pair")

	// ErrMissingLength is returned when no '#length' define is present.
	ErrMissingLength = errors.New("notation: sheet length must be defined")

	// ErrBadLengthFormat is returned when the '#length' value is not of
	// the form minutes:seconds, or either field is not numeric.
	ErrBadLengthFormat = errors.New("notation: invalid sheet length")
)
