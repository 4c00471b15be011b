package f1api

import (
	"errors"
	"fmt"
)

// ErrShape matches every payload validation failure via errors.Is.
var ErrShape = errors.New("invalid data format")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("api %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("api %s returned status %d %s", e.Endpoint, e.StatusCode, e.Status)
}

// ShapeError reports a 2xx response whose JSON is missing or does not have
// the documented form.
type ShapeError struct {
	Endpoint string
	Want     string
	Reason   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s from %s: want %s: %s", ErrShape, e.Endpoint, e.Want, e.Reason)
}

// Is lets errors.Is(err, ErrShape) match.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a
// StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
