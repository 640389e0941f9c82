package common

import "time"

const (
	// DefaultPort is the TCP port the OpenRGB server listens on by default.
	DefaultPort uint16 = 6742

	// DefaultClientName is announced to the server when no name is given.
	DefaultClientName = `goopenrgb`

	// DefaultTimeout bounds receive operations after connecting, until
	// overridden via SetTimeout.
	DefaultTimeout = 500 * time.Millisecond
)
