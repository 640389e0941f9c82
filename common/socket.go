package common

import "time"

// SockStatus is the result of an operation on a Socket.
type SockStatus int

const (
	SockSuccess SockStatus = iota
	SockNotConnected
	SockAlreadyConnected
	SockHostNotResolved
	SockConnectFailed
	SockConnectionClosed
	SockTimeout
	SockWouldBlock
	SockOtherError
)

func (s SockStatus) String() string {
	switch s {
	case SockSuccess:
		return `Success`
	case SockNotConnected:
		return `NotConnected`
	case SockAlreadyConnected:
		return `AlreadyConnected`
	case SockHostNotResolved:
		return `HostNotResolved`
	case SockConnectFailed:
		return `ConnectFailed`
	case SockConnectionClosed:
		return `ConnectionClosed`
	case SockTimeout:
		return `Timeout`
	case SockWouldBlock:
		return `WouldBlock`
	case SockOtherError:
		return `OtherError`
	default:
		return `<invalid status>`
	}
}

// Socket defines the interface between the Client and the stream transport it
// speaks over.  The production implementation is tcpsocket.Socket.
type Socket interface {
	// Connect establishes a connection to host:port.
	Connect(host string, port uint16) SockStatus
	// Disconnect closes the connection.  Returns SockNotConnected if there
	// was no live connection to tear down.
	Disconnect() SockStatus
	// IsConnected reports whether the socket currently holds a live
	// connection.
	IsConnected() bool
	// Send writes the whole buffer to the connection.
	Send(data []byte) SockStatus
	// ReceiveExact reads exactly n bytes.  In non-blocking mode it returns
	// SockWouldBlock when no data is pending.
	ReceiveExact(n int) ([]byte, SockStatus)
	// SetTimeout sets the receive timeout.  Only valid while connected,
	// returns false otherwise.
	SetTimeout(timeout time.Duration) bool
	// SetBlocking toggles between blocking receives (bounded by the
	// configured timeout) and non-blocking receives.  Toggling is idempotent.
	// Returns false if the socket state could not be changed.
	SetBlocking(blocking bool) bool
	// LastSystemError returns the error behind the most recent failed
	// operation, for diagnostics.
	LastSystemError() error
}
