package apisheet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrMalformedInput indicates the input is not a usable API description.
var ErrMalformedInput = errors.New("malformed input")

// ErrSinkFailure indicates the workbook could not be composed or written.
var ErrSinkFailure = errors.New("workbook output failed")

// ErrInvalidOptions indicates a rejected Options value.
var ErrInvalidOptions = errors.New("invalid options")

// InputError reports the diagnostics of a rejected input document.
type InputError struct {
	Source      string
	Diagnostics []string
}

func (e *InputError) Error() string {
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("malformed input %s", e.Source)
	}
	return fmt.Sprintf("malformed input %s: %s", e.Source, strings.Join(e.Diagnostics, "; "))
}

// Is reports whether target is ErrMalformedInput.
func (e *InputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// OutputError represents a failure while composing or writing the workbook.
type OutputError struct {
	SheetName string
	Component string // "compose", "finish", "save"
	Err       error
}

func (e *OutputError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("output error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("output error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSinkFailure.
func (e *OutputError) Is(target error) bool {
	return target == ErrSinkFailure
}

// NewOutputError creates a new OutputError.
func NewOutputError(sheetName, component string, err error) *OutputError {
	return &OutputError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
