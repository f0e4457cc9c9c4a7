package prov

import (
	"errors"
	"fmt"
)

// ParseError reports input that is not well-formed JSON or that violates
// the PROV-JSON record shape. Parse errors are fatal: conversion of a
// document that cannot be decoded never starts.
type ParseError struct {
	// Path locates the offending value, e.g. "bundle.ex:b1.entity.ex:e2".
	Path string

	// Message describes the violation.
	Message string

	// Offset is the byte offset in the input stream, when known.
	Offset int64

	// Err is the underlying decode error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
