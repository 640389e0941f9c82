package common

// ConnectStatus enumerates all the possible ways a connect operation can end.
type ConnectStatus int

const (
	// ConnectSuccess means the operation was successful.
	ConnectSuccess ConnectStatus = iota
	// ConnectNetworkingInitFailed means the underlying networking system
	// could not be initialized.
	ConnectNetworkingInitFailed
	// ConnectAlreadyConnected means the client is already connected, call
	// Disconnect first.
	ConnectAlreadyConnected
	// ConnectHostNotResolved means the hostname could not be resolved to an
	// IP address.
	ConnectHostNotResolved
	// ConnectFailed means the target server could not be reached, either
	// it's down or the port is closed.
	ConnectFailed
	// ConnectRequestVersionFailed means the protocol version exchange with
	// the server failed.
	ConnectRequestVersionFailed
	// ConnectVersionNotSupported means the protocol version of the server is
	// not supported.
	ConnectVersionNotSupported
	// ConnectSendNameFailed means the client name could not be sent to the
	// server.
	ConnectSendNameFailed
	// ConnectOtherSystemError means some other system error, call
	// LastSystemError for more info.
	ConnectOtherSystemError
	// ConnectUnexpectedError means an internal error of this library.
	ConnectUnexpectedError
)

func (s ConnectStatus) String() string {
	switch s {
	case ConnectSuccess:
		return `The operation was successful.`
	case ConnectNetworkingInitFailed:
		return `Operation failed because the underlying networking system could not be initialized.`
	case ConnectAlreadyConnected:
		return `Connect operation failed because the socket is already connected.`
	case ConnectHostNotResolved:
		return `The hostname you entered could not be resolved to an IP address.`
	case ConnectFailed:
		return `Could not connect to the target server, either it's down or the port is closed.`
	case ConnectRequestVersionFailed:
		return `Failed to send the client's protocol version or receive the server's protocol version.`
	case ConnectVersionNotSupported:
		return `The protocol version of the server is not supported.`
	case ConnectSendNameFailed:
		return `Failed to send the client name to the server.`
	case ConnectOtherSystemError:
		return `Other system error.`
	case ConnectUnexpectedError:
		return `Internal error of this library.`
	default:
		return `<invalid status>`
	}
}

// RequestStatus enumerates all the possible ways a request can end.
type RequestStatus int

const (
	// RequestSuccess means the request was successful.
	RequestSuccess RequestStatus = iota
	// RequestNotConnected means the client is not connected, call Connect
	// first.
	RequestNotConnected
	// RequestSendFailed means the request message could not be sent.
	RequestSendFailed
	// RequestConnectionClosed means the server has closed the connection.
	RequestConnectionClosed
	// RequestNoReply means no reply arrived from the server within the
	// configured timeout.  The connection is closed when this happens,
	// because the position of the inbound stream is no longer known.
	RequestNoReply
	// RequestReceiveError means some other error occurred while receiving a
	// reply, call LastSystemError for more info.
	RequestReceiveError
	// RequestInvalidReply means the reply from the server is invalid.
	RequestInvalidReply
	// RequestUnexpectedError means an internal error of this library.
	RequestUnexpectedError
)

func (s RequestStatus) String() string {
	switch s {
	case RequestSuccess:
		return `The request was successful.`
	case RequestNotConnected:
		return `Request failed because the client is not connected.`
	case RequestSendFailed:
		return `Failed to send the request message.`
	case RequestConnectionClosed:
		return `Server has closed the connection.`
	case RequestNoReply:
		return `No reply has arrived from the server in the given timeout.`
	case RequestReceiveError:
		return `There has been some other error while trying to receive a reply.`
	case RequestInvalidReply:
		return `The reply from the server is invalid.`
	case RequestUnexpectedError:
		return `Internal error of this library.`
	default:
		return `<invalid status>`
	}
}

// UpdateStatus enumerates all the possible results of a check whether the
// locally stored device list is out of date.
type UpdateStatus int

const (
	// UpdateUpToDate means the current device list seems up to date.
	UpdateUpToDate UpdateStatus = iota
	// UpdateOutOfDate means the server has announced a device list change,
	// call RequestDeviceList again.
	UpdateOutOfDate
	// UpdateConnectionClosed means the server has closed the connection.
	UpdateConnectionClosed
	// UpdateUnexpectedMessage means the server has sent some other kind of
	// message that we didn't expect.  The header bytes have already been
	// consumed and the stream cannot be resynchronized, treat the session as
	// broken.
	UpdateUnexpectedMessage
	// UpdateCantRestoreSocket means the socket could not be restored to its
	// original state and has been closed.
	UpdateCantRestoreSocket
	// UpdateOtherError means some other system error, call LastSystemError
	// for more info.
	UpdateOtherError
	// UpdateUnexpectedError means an internal error of this library.
	UpdateUnexpectedError
)

func (s UpdateStatus) String() string {
	switch s {
	case UpdateUpToDate:
		return `The current device list seems up to date.`
	case UpdateOutOfDate:
		return `Server has sent a notification message indicating that the device list has changed.`
	case UpdateConnectionClosed:
		return `Server has closed the connection.`
	case UpdateUnexpectedMessage:
		return `Server has sent some other kind of message that we didn't expect.`
	case UpdateCantRestoreSocket:
		return `Error has occurred while trying to restore the socket to its original state and the socket has been closed.`
	case UpdateOtherError:
		return `Other system error.`
	case UpdateUnexpectedError:
		return `Internal error of this library.`
	default:
		return `<invalid status>`
	}
}
