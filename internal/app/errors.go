package service

import "errors"

// Sentinel kinds for scenario validation. The HTTP layer maps these to 400s.
var (
	ErrNoDrivers      = errors.New("at least one driver must be provided")
	ErrTooManyDrivers = errors.New("too many drivers for a custom scenario")
	ErrGridRange      = errors.New("grid positions must be between 1 and 20")
	ErrDuplicateGrid  = errors.New("grid positions must be unique for each driver")
	ErrMissingDriver  = errors.New("every driver needs a driverRef and a team")
)
