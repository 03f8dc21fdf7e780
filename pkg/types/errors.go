package types

import (
	"errors"
	"fmt"
)

// Validation errors. A *ValidationError wraps exactly one of these.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrFieldMissing    = errors.New("required field is missing")
	ErrFieldNotText    = errors.New("field is not text")
	ErrFieldEmpty      = errors.New("field is empty")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidStatus   = errors.New("invalid milestone status")
)

// ErrMalformedStore reports a backing file whose content is not a JSON
// array of objects.
var ErrMalformedStore = errors.New("malformed store content")

// ValidationError reports input that was rejected before any write was
// attempted.
type ValidationError struct {
	Category Category
	Field    string // empty when the error concerns the category itself
	Err      error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %q", e.Err, string(e.Category))
	}
	return fmt.Sprintf("invalid %s entry: %s: %s", e.Category, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ReadError reports a backing file that was missing, unreadable, or
// structurally invalid. Readers recover from it by treating the store as
// empty.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %s", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed serialization or atomic replace. The
// canonical file keeps its previous content.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %s: %s", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRead reports whether err is, or wraps, a *ReadError.
func IsRead(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

// IsWrite reports whether err is, or wraps, a *WriteError.
func IsWrite(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
