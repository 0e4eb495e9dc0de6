package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLogin is returned when aggregating without a login
	ErrEmptyLogin = errors.New("error: empty login")
)

// OrchestrationError is returned when the branches of an aggregation could
// not be scheduled or joined. Failures of the lookups themselves are never
// reported this way.
type OrchestrationError struct {
	Login string
	Err   error
}

func (e *OrchestrationError) Is(target error) bool {
	if _, ok := target.(*OrchestrationError); ok {
		return true
	}
	return false
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("error: aggregating %s failed: %s", e.Login, e.Err)
}

func (e *OrchestrationError) Unwrap() error {
	return e.Err
}
