package ratesparser

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField         = errors.New("missing required field")
	ErrInvalidVersion       = errors.New("version is not an ISO 8601 date")
	ErrInvalidCountryCode   = errors.New("country code is not two ASCII letters")
	ErrDuplicateCountryCode = errors.New("country code appears more than once")
	ErrTrailingData         = errors.New("unexpected data after JSON document")
	ErrNegativeRate         = errors.New("rate is negative")
)

// FileAccessError is returned when the rates resource cannot be opened or read.
// Err is the underlying fs error, so errors.Is(err, fs.ErrNotExist) works.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("eu-vat-rates: cannot read data file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError is returned when the resource is not a well-formed rates document.
// Field names the offending JSON path when it is known (e.g. "rates.FI.standard").
type ParseError struct {
	Path  string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("eu-vat-rates: cannot parse data file %s: %s: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("eu-vat-rates: cannot parse data file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
