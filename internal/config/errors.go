package config

import (
	"errors"
)

// Error kinds the loader wraps its failures in. ErrLoadConfig covers file and
// env reads, ErrInvalidConfig covers validation of the merged result; callers
// distinguish them with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
