package common

import "errors"

var (
	// ErrClosed is returned on operations against a closed subscription
	ErrClosed = errors.New(`closed`)
	// ErrTimeout is returned when an event could not be delivered in time
	ErrTimeout = errors.New(`timeout`)
)
