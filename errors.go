package morph

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure modes of the core.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrMalformedData indicates a canonical value that does not have
	// the required shape. It is always surfaced to the caller: a
	// malformed serialized value cannot be repaired.
	ErrMalformedData = errors.New("malformed canonical data")

	// ErrBadData indicates a canonical value that is well-formed but
	// does not decode under a particular strategy. Strategy Decode
	// implementations wrap it. During materialization it is an
	// expected, recoverable condition and never escapes.
	ErrBadData = errors.New("data does not decode under this strategy")
)

// Error kinds categorize errors by their type.
const (
	// KindMalformedData marks structurally invalid canonical data.
	KindMalformedData = "malformed_data"

	// KindBadData marks data that fails to decode for one strategy.
	KindBadData = "bad_data"

	// KindConfiguration marks invalid settings or options.
	KindConfiguration = "configuration"

	// KindDatabase marks example-database failures.
	KindDatabase = "database"
)

// Error is a structured error that wraps an underlying error with the
// operation that failed and the category of failure.
//
// Error supports unwrapping, making it compatible with errors.Is()
// and errors.As().
type Error struct {
	// Op is the operation that failed (e.g., "morpher.Decode").
	Op string

	// Kind categorizes the error (e.g., KindMalformedData).
	Kind string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("morph: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("morph: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches either another *Error with the same Kind (and Op, when
// the target sets one) or anything the underlying error matches.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// NewMalformedDataError creates an Error with KindMalformedData. If
// err does not already wrap ErrMalformedData it is chained onto it so
// errors.Is(result, ErrMalformedData) always holds.
func NewMalformedDataError(op string, err error) *Error {
	if err == nil {
		err = ErrMalformedData
	} else if !errors.Is(err, ErrMalformedData) {
		err = fmt.Errorf("%v: %w", err, ErrMalformedData)
	}
	return &Error{Op: op, Kind: KindMalformedData, Err: err}
}

// NewBadDataError creates an Error with KindBadData wrapping
// ErrBadData, carrying err as detail when non-nil.
func NewBadDataError(op string, err error) *Error {
	if err == nil {
		err = ErrBadData
	} else if !errors.Is(err, ErrBadData) {
		err = fmt.Errorf("%v: %w", err, ErrBadData)
	}
	return &Error{Op: op, Kind: KindBadData, Err: err}
}
