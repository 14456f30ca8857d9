package minireduce

import "errors"

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidArgument reports malformed call parameters: an empty path,
	// a non-positive count, a nil worker or an empty output name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyInput reports a zero-byte input file.
	ErrEmptyInput = errors.New("input file is empty")
)
