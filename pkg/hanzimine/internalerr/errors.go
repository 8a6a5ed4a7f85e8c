package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrNotTrained     = errors.New("extractor not trained")
	ErrNotCounted     = errors.New("co-occurrence not counted")
	ErrMalformedDict  = errors.New("malformed dictionary line")
	ErrMissingContext = errors.New("missing branch context")
	ErrUnknownScore   = errors.New("unknown score field")
)
