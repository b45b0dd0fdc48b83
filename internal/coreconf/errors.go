package coreconf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AbdelazizMoustafa10m/autocore/internal/arch"
)

// Sentinel errors for every way a configuration can be rejected. Callers
// match them with errors.Is; the structured error types below carry the
// detail and unwrap to one of these.
var (
	// ErrConflictingMode is returned when flags from different modes are
	// combined, e.g. --build with a construction flag.
	ErrConflictingMode = errors.New("conflicting mode")

	// ErrMissingRequiredField is returned when a required field was not
	// supplied.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidValue is returned when a value lies outside its key's domain.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnrecognizedKey is returned when a persisted line names an unknown key.
	ErrUnrecognizedKey = errors.New("unrecognized key")

	// ErrMalformedLine is returned when a persisted line is not a single
	// key/value pair.
	ErrMalformedLine = errors.New("malformed line")
)

// Architecture errors are defined by the parser and re-exported so callers
// can match the whole taxonomy through this package.
var (
	ErrInvalidArchitecture       = arch.ErrInvalidArchitecture
	ErrMissingMandatoryExtension = arch.ErrMissingMandatoryExtension
	ErrUnsatisfiedDependency     = arch.ErrUnsatisfiedDependency
)

// FieldError reports a required field that was not supplied.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, ErrMissingRequiredField)
}

func (e *FieldError) Unwrap() error { return ErrMissingRequiredField }

// ValueError reports a value outside the domain of its key.
type ValueError struct {
	Key     string
	Value   string
	Allowed []string // empty when the domain is not a closed set
	Reason  string
}

func (e *ValueError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q for key %q", ErrInvalidValue, e.Value, e.Key)
	if len(e.Allowed) > 0 {
		fmt.Fprintf(&b, ": must be one of %s", strings.Join(e.Allowed, ", "))
	} else if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

func (e *ValueError) Unwrap() error { return ErrInvalidValue }

// KeyError reports a persisted key that has no translation.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnrecognizedKey, e.Key)
}

func (e *KeyError) Unwrap() error { return ErrUnrecognizedKey }

// LineError reports a persisted line that could not be split into exactly
// one key and one value.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s %d %q: %s", ErrMalformedLine, e.Line, e.Text, e.Reason)
}

func (e *LineError) Unwrap() error { return ErrMalformedLine }
