package column

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned by render hooks when an extra property value
// or a cell value cannot be interpreted.
var ErrInvalidArgument = errors.New("invalid argument")

// PropertyError describes which extra property rejected which value.
type PropertyError struct {
	Property string
	Value    any
	Reason   string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("column: %s: %s (got %#v)", e.Property, e.Reason, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *PropertyError) Unwrap() error {
	return ErrInvalidArgument
}
