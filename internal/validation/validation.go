// Package validation checks candidate entities against their schemas before
// they reach the state store. Validators are pure and synchronous: they
// return the candidate's errors as data and never panic for data-shape
// problems. Panics are reserved for programmer errors such as a nil schema.
package validation

import (
	"fmt"
	"strings"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is a structured, recoverable validation failure. Callers re-prompt
// with the field errors; it never crashes the application.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Path + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add appends a field error built from a format string.
func (e *Error) add(path, format string, args ...interface{}) {
	e.Fields = append(e.Fields, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

// orNil returns the error if it collected any field failures, nil otherwise.
func (e *Error) orNil() *Error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
