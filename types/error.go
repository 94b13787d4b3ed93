// error.go defines the error types of the value-type system.

package types

import (
	"fmt"
)

type ErrInvalidValue struct {
	Type   string
	Value  any
	Reason string
}

func (e ErrInvalidValue) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s value: %v", e.Type, e.Value)
	}
	return fmt.Sprintf("invalid %s value %v: %s", e.Type, e.Value, e.Reason)
}
