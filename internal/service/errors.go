package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a request fails validation. The wrapped
// message says which field was rejected.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
