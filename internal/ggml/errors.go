package ggml

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated means a read needed more bytes than the source had left.
	ErrTruncated = errors.New("truncated")
	// ErrOutOfRange means the ftype index has no known name.
	ErrOutOfRange = errors.New("out of range")
)

// FieldError records which header field failed to decode.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("header field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
