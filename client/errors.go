package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized ...
	ErrUnauthorized = errors.New("error: authorization failed")

	// ErrNotFound ...
	ErrNotFound = errors.New("error: not found")

	// ErrServerError ...
	ErrServerError = errors.New("error: server error")
)

// LookupError is returned by every Client lookup that fails, whether in
// transport, on a bad status or while decoding the response
type LookupError struct {
	Op         string
	Login      string
	StatusCode int
	Err        error
}

func (e *LookupError) Is(target error) bool {
	if _, ok := target.(*LookupError); ok {
		return true
	}
	return false
}

func (e *LookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("error: %s %s failed (%d): %s", e.Op, e.Login, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("error: %s %s failed: %s", e.Op, e.Login, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
