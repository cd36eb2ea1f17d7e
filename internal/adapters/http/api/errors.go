package api

import "errors"

var (
	// ErrInvalidID indicates a path parameter could not be parsed as an identifier.
	ErrInvalidID = errors.New("invalid identifier in path")
	// ErrInvalidYear indicates the year parameter is not a number.
	ErrInvalidYear = errors.New("year must be a number")
	// ErrInvalidBody indicates the request body could not be decoded.
	ErrInvalidBody = errors.New("invalid request body")
)
