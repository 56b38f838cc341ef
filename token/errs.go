package token

import (
	"errors"
	"fmt"
)

var (
	ErrNumber      = errors.New("invalid number")
	ErrLeadingZero = errors.New("leading zero")
)

// NumberError reports text that does not match the number grammar.
type NumberError struct {
	Text string
	Err  error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Text)
}

func (e *NumberError) Unwrap() error {
	return e.Err
}
