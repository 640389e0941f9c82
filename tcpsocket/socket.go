// Package tcpsocket provides the TCP stream transport the client speaks
// over: blocking receives bounded by a configurable timeout, and a
// non-blocking mode for peeking at the socket without waiting.
package tcpsocket

import (
	"io"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/pdf/goopenrgb/common"
)

// nonBlockingProbe is the deadline used for receives in non-blocking mode.
// It must lie in the future so that bytes already buffered by the kernel are
// still delivered, while an empty socket trips the deadline almost
// immediately.
const nonBlockingProbe = time.Millisecond

// Socket is the production implementation of common.Socket on top of a TCP
// connection.  It is not safe for concurrent use, matching the Client that
// owns it.
type Socket struct {
	conn     net.Conn
	timeout  time.Duration
	blocking bool
	lastErr  error
}

// New returns a disconnected socket with the default receive timeout.
func New() *Socket {
	return &Socket{
		timeout:  common.DefaultTimeout,
		blocking: true,
	}
}

// Connect resolves host and establishes a TCP connection to host:port.
func (s *Socket) Connect(host string, port uint16) common.SockStatus {
	if s.conn != nil {
		return common.SockAlreadyConnected
	}

	addrs, err := net.LookupHost(host)
	if err != nil || len(addrs) == 0 {
		s.lastErr = errors.Wrapf(err, `resolving %s`, host)
		return common.SockHostNotResolved
	}

	conn, err := net.Dial(`tcp`, net.JoinHostPort(addrs[0], strconv.Itoa(int(port))))
	if err != nil {
		s.lastErr = errors.Wrapf(err, `connecting to %s:%d`, host, port)
		return common.SockConnectFailed
	}

	s.conn = conn
	s.blocking = true
	return common.SockSuccess
}

// Disconnect closes the connection.  Closing an already closed socket
// reports SockNotConnected, any other close failure is swallowed because the
// caller wanted the socket gone and gone it is.
func (s *Socket) Disconnect() common.SockStatus {
	if s.conn == nil {
		return common.SockNotConnected
	}
	if err := s.conn.Close(); err != nil {
		s.lastErr = errors.Wrap(err, `closing connection`)
	}
	s.conn = nil
	return common.SockSuccess
}

// IsConnected reports whether the socket holds a live connection.
func (s *Socket) IsConnected() bool {
	return s.conn != nil
}

// Send writes the whole buffer to the connection.
func (s *Socket) Send(data []byte) common.SockStatus {
	if s.conn == nil {
		return common.SockNotConnected
	}
	if _, err := s.conn.Write(data); err != nil {
		s.lastErr = errors.Wrap(err, `send`)
		if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
			return common.SockConnectionClosed
		}
		return common.SockOtherError
	}
	return common.SockSuccess
}

// ReceiveExact reads exactly n bytes from the connection.  In blocking mode
// the read is bounded by the configured timeout, in non-blocking mode an
// empty socket reports SockWouldBlock.
func (s *Socket) ReceiveExact(n int) ([]byte, common.SockStatus) {
	if s.conn == nil {
		return nil, common.SockNotConnected
	}

	var deadline time.Time
	if s.blocking {
		if s.timeout > 0 {
			deadline = time.Now().Add(s.timeout)
		}
	} else {
		deadline = time.Now().Add(nonBlockingProbe)
	}
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		s.lastErr = errors.Wrap(err, `setting read deadline`)
		return nil, common.SockOtherError
	}

	buf := make([]byte, n)
	read, err := io.ReadFull(s.conn, buf)
	if err == nil {
		return buf, common.SockSuccess
	}

	s.lastErr = errors.Wrap(err, `receive`)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, syscall.ECONNRESET) {
		return nil, common.SockConnectionClosed
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		if !s.blocking && read == 0 {
			return nil, common.SockWouldBlock
		}
		return nil, common.SockTimeout
	}
	return nil, common.SockOtherError
}

// SetTimeout sets the receive timeout for blocking mode.  The timeout lives
// on the underlying connection's deadline, so it can only be set while
// connected.
func (s *Socket) SetTimeout(timeout time.Duration) bool {
	if s.conn == nil {
		return false
	}
	s.timeout = timeout
	return true
}

// SetBlocking toggles between blocking and non-blocking receives.  The
// toggle is idempotent.  The connection's deadline is exercised immediately
// so that a broken socket surfaces here rather than on the next receive.
func (s *Socket) SetBlocking(blocking bool) bool {
	if s.conn == nil {
		return false
	}
	if err := s.conn.SetReadDeadline(time.Time{}); err != nil {
		s.lastErr = errors.Wrap(err, `setting blocking mode`)
		return false
	}
	s.blocking = blocking
	return true
}

// LastSystemError returns the error behind the most recent failed operation.
func (s *Socket) LastSystemError() error {
	return s.lastErr
}
