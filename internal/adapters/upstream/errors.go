package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for upstream client errors. Callers branch with errors.Is.
var (
	// ErrUnreachable covers transport-level failures: connection refused,
	// DNS, timeout. The UI shows these as a retryable banner.
	ErrUnreachable = errors.New("prediction service unreachable")

	// ErrStatus covers non-2xx responses from the service.
	ErrStatus = errors.New("prediction service error")

	// ErrDecode covers responses whose body is not the expected JSON shape.
	// The UI treats this as "no data available", not a failure.
	ErrDecode = errors.New("prediction service returned unexpected payload")
)

// StatusError carries the HTTP status and the service's detail message, when
// the error body had one, for a non-2xx response.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = http.StatusText(e.Code)
	}
	return fmt.Sprintf("%v: %s (status %d)", ErrStatus, detail, e.Code)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// IsBadRequest reports whether err is a 400 from the service.
func IsBadRequest(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusBadRequest
}
