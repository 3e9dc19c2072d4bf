package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("server unavailable")
)

// WireError is a failure reported by the server in a BAD response frame.
// Code carries the machine-readable error code when the server supplied one.
type WireError struct {
	Code    string
	Message string
}

func (e *WireError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}
