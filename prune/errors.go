package prune

import "errors"

var (
	// ErrNilTextSource is returned when Prune is called without a text source.
	ErrNilTextSource = errors.New("text source is nil")

	// ErrInvalidMinMatches is returned for a minimum match count below 1.
	ErrInvalidMinMatches = errors.New("min matches must be at least 1")

	// ErrNilLogger is returned when a nil logger is supplied.
	ErrNilLogger = errors.New("logger is nil")
)
