package goopenrgb

import (
	"time"

	"github.com/pdf/goopenrgb/common"
	"github.com/pdf/goopenrgb/protocol"
)

// Client speaks the OpenRGB network protocol to a single server.  Client can
// not be instantiated manually or it will not function - always use
// NewClient() to obtain a Client instance.
//
// A Client is a single-threaded, synchronous object: operations block the
// caller until complete or timed out, at most one request is ever
// outstanding, and a Client instance must not be used from more than one
// goroutine concurrently.
type Client struct {
	name          string
	sock          common.Socket
	negotiated    uint32
	listOutOfDate bool
	subscriptions map[string]*common.Subscription
}

// IsConnected reports whether the client currently holds a live connection.
func (c *Client) IsConnected() bool {
	return c.sock.IsConnected()
}

// NegotiatedProtocolVersion returns the protocol version agreed with the
// server during the last successful Connect, zero while disconnected.
func (c *Client) NegotiatedProtocolVersion() uint32 {
	return c.negotiated
}

// Connect establishes a TCP connection to the server, negotiates the
// protocol version and announces the client name.  On any failure along the
// way the socket is torn down again, leaving the client disconnected.
func (c *Client) Connect(host string, port uint16) (status common.ConnectStatus) {
	defer func() {
		if r := recover(); r != nil {
			common.Log.Errorf(`panic during connect: %v`, r)
			status = common.ConnectUnexpectedError
		}
	}()

	switch st := c.sock.Connect(host, port); st {
	case common.SockSuccess:
	case common.SockAlreadyConnected:
		return common.ConnectAlreadyConnected
	case common.SockHostNotResolved:
		return common.ConnectHostNotResolved
	case common.SockConnectFailed:
		return common.ConnectFailed
	default:
		return common.ConnectOtherSystemError
	}

	// rather set some default timeout for receive operations, user can
	// always override this later
	c.sock.SetTimeout(common.DefaultTimeout)

	if c.sock.Send(protocol.EncodeRequestProtocolVersion(protocol.ImplementedVersion)) != common.SockSuccess {
		c.sock.Disconnect()
		return common.ConnectRequestVersionFailed
	}

	_, body, st := c.awaitReply(protocol.RequestProtocolVersion)
	if st != common.RequestSuccess {
		c.sock.Disconnect()
		return common.ConnectRequestVersionFailed
	}

	serverVersion, ok := protocol.DecodeProtocolVersion(body)
	if !ok {
		c.sock.Disconnect()
		return common.ConnectRequestVersionFailed
	}
	if serverVersion == 0 {
		// support for the very first version-less protocol is not maintained
		c.sock.Disconnect()
		return common.ConnectVersionNotSupported
	}
	c.negotiated = min(protocol.ImplementedVersion, serverVersion)

	if c.sock.Send(protocol.EncodeSetClientName(c.name)) != common.SockSuccess {
		c.sock.Disconnect()
		c.negotiated = 0
		return common.ConnectSendNameFailed
	}

	// There is no device list yet, but marking it out of date right away
	// lets an application drive its whole loop off IsDeviceListOutOfDate
	// without special-casing the first iteration.
	c.listOutOfDate = true

	common.Log.Infof(`connected to %s:%d, protocol version %d`, host, port, c.negotiated)
	c.publish(common.EventConnected{Host: host, Port: port})
	return common.ConnectSuccess
}

// Disconnect closes the connection to the server.  It is idempotent, the
// return value reports whether a live connection was actually torn down.
func (c *Client) Disconnect() bool {
	if c.sock.Disconnect() == common.SockNotConnected {
		return false
	}
	c.negotiated = 0
	c.publish(common.EventDisconnected{})
	return true
}

// SetTimeout sets the timeout for receiving request replies.  Only valid
// while connected, because the timeout lives on the underlying socket.
func (c *Client) SetTimeout(timeout time.Duration) bool {
	return c.sock.SetTimeout(timeout)
}

// IsDeviceListOutOfDate reports the cached freshness bit without touching
// the socket.  Use CheckForDeviceUpdates to actively probe the server.
func (c *Client) IsDeviceListOutOfDate() bool {
	return c.listOutOfDate
}

// RequestDeviceList downloads the records of all devices from the server.
//
// If the server announces a device list change while the download is in
// progress, records downloaded so far may describe pre-update state, so the
// accumulated list is discarded and the download starts over.  The list
// returned always reflects one consistent pass.
func (c *Client) RequestDeviceList() (status common.RequestStatus, devices common.DeviceList) {
	defer func() {
		if r := recover(); r != nil {
			common.Log.Errorf(`panic during device list request: %v`, r)
			status, devices = common.RequestUnexpectedError, nil
		}
	}()

	if !c.sock.IsConnected() {
		return common.RequestNotConnected, nil
	}

	for {
		devices = nil
		c.listOutOfDate = false

		if c.sock.Send(protocol.EncodeRequestControllerCount()) != common.SockSuccess {
			return common.RequestSendFailed, nil
		}
		_, body, st := c.awaitReply(protocol.RequestControllerCount)
		if st != common.RequestSuccess {
			return st, nil
		}
		count, ok := protocol.DecodeControllerCount(body)
		if !ok {
			return common.RequestInvalidReply, nil
		}

		for deviceIdx := uint32(0); deviceIdx < count; deviceIdx++ {
			st, dev := c.requestControllerData(deviceIdx)
			if st != common.RequestSuccess {
				return st, nil
			}
			devices = append(devices, *dev)
		}

		// A DEVICE_LIST_UPDATED notification observed mid-download means we
		// have to start over.
		if !c.listOutOfDate {
			return common.RequestSuccess, devices
		}
		common.Log.Debugf(`device list changed during download, restarting`)
	}
}

// RequestDeviceCount asks the server how many devices it exposes.
func (c *Client) RequestDeviceCount() (status common.RequestStatus, count uint32) {
	defer func() {
		if r := recover(); r != nil {
			common.Log.Errorf(`panic during device count request: %v`, r)
			status, count = common.RequestUnexpectedError, 0
		}
	}()

	if !c.sock.IsConnected() {
		return common.RequestNotConnected, 0
	}

	if c.sock.Send(protocol.EncodeRequestControllerCount()) != common.SockSuccess {
		return common.RequestSendFailed, 0
	}
	_, body, st := c.awaitReply(protocol.RequestControllerCount)
	if st != common.RequestSuccess {
		return st, 0
	}
	count, ok := protocol.DecodeControllerCount(body)
	if !ok {
		return common.RequestInvalidReply, 0
	}
	return common.RequestSuccess, count
}

// RequestDeviceInfo downloads the record of a single device.  The indices
// stored on the returned device are only valid until the server's device
// list changes.
func (c *Client) RequestDeviceInfo(deviceIdx uint32) (status common.RequestStatus, device *common.Device) {
	defer func() {
		if r := recover(); r != nil {
			common.Log.Errorf(`panic during device info request: %v`, r)
			status, device = common.RequestUnexpectedError, nil
		}
	}()

	if !c.sock.IsConnected() {
		return common.RequestNotConnected, nil
	}
	return c.requestControllerData(deviceIdx)
}

func (c *Client) requestControllerData(deviceIdx uint32) (common.RequestStatus, *common.Device) {
	if c.sock.Send(protocol.EncodeRequestControllerData(deviceIdx, c.negotiated)) != common.SockSuccess {
		return common.RequestSendFailed, nil
	}
	hdr, body, st := c.awaitReply(protocol.RequestControllerData)
	if st != common.RequestSuccess {
		return st, nil
	}
	if hdr.DeviceIdx != deviceIdx {
		return common.RequestInvalidReply, nil
	}
	dev, ok := protocol.DecodeControllerData(body, deviceIdx, c.negotiated)
	if !ok {
		return common.RequestInvalidReply, nil
	}
	return common.RequestSuccess, &dev
}

// CheckForDeviceUpdates peeks at the socket without blocking to find out
// whether the server has announced a device list change since the last
// download.  Outside this method the socket is always in blocking mode.
func (c *Client) CheckForDeviceUpdates() (status common.UpdateStatus) {
	defer func() {
		if r := recover(); r != nil {
			common.Log.Errorf(`panic during update check: %v`, r)
			status = common.UpdateUnexpectedError
		}
	}()

	if c.listOutOfDate {
		// A notification was already seen and the user hasn't downloaded the
		// new list yet, no need to touch the socket.
		return common.UpdateOutOfDate
	}

	if !c.sock.SetBlocking(false) {
		return common.UpdateOtherError
	}

	// Whatever the probe found, the socket has to go back to blocking mode.
	// If that fails the socket is in an undefined state, so burn it to the
	// ground rather than let the next operation misbehave.
	restore := func(st common.UpdateStatus) common.UpdateStatus {
		if !c.sock.SetBlocking(true) {
			c.dropConnection()
			return common.UpdateCantRestoreSocket
		}
		return st
	}

	buf, st := c.sock.ReceiveExact(protocol.HeaderSize)
	switch st {
	case common.SockWouldBlock:
		return restore(common.UpdateUpToDate)
	case common.SockConnectionClosed:
		return restore(common.UpdateConnectionClosed)
	case common.SockSuccess:
	default:
		return restore(common.UpdateOtherError)
	}

	hdr, ok := protocol.ParseHeader(buf)
	if !ok || hdr.Type != protocol.DeviceListUpdated {
		// Sixteen bytes of something else have been consumed and there is no
		// way to resynchronize the stream, the session is compromised.
		return restore(common.UpdateUnexpectedMessage)
	}

	c.markListOutOfDate()
	return restore(common.UpdateOutOfDate)
}

// SwitchToCustomMode switches a device to its direct-control mode.  This
// needs to be called before pushing colors, with at least a few
// milliseconds' delay.
func (c *Client) SwitchToCustomMode(device *common.Device) common.RequestStatus {
	return c.sendRequest(protocol.EncodeSetCustomMode(device.Idx))
}

// ChangeMode changes the active mode of a device, including any parameters
// modified on the mode value.
func (c *Client) ChangeMode(device *common.Device, mode *common.Mode) common.RequestStatus {
	return c.sendRequest(protocol.EncodeUpdateMode(device.Idx, mode.Idx, mode, c.negotiated))
}

// SaveMode saves a mode with its parameters into the device's non-volatile
// storage, where supported.
func (c *Client) SaveMode(device *common.Device, mode *common.Mode) common.RequestStatus {
	return c.sendRequest(protocol.EncodeSaveMode(device.Idx, mode.Idx, mode, c.negotiated))
}

// SetDeviceColor sets one unified color for every LED of a device.
func (c *Client) SetDeviceColor(device *common.Device, color common.Color) common.RequestStatus {
	colors := make([]common.Color, len(device.LEDs))
	for i := range colors {
		colors[i] = color
	}
	return c.sendRequest(protocol.EncodeUpdateLEDs(device.Idx, colors))
}

// SetZoneColor sets one unified color for every LED of a zone.
func (c *Client) SetZoneColor(zone *common.Zone, color common.Color) common.RequestStatus {
	colors := make([]common.Color, zone.LEDsCount)
	for i := range colors {
		colors[i] = color
	}
	return c.sendRequest(protocol.EncodeUpdateZoneLEDs(zone.DeviceIdx, zone.Idx, colors))
}

// SetZoneSize resizes a zone of LEDs, if the device supports it.
func (c *Client) SetZoneSize(zone *common.Zone, newSize uint32) common.RequestStatus {
	return c.sendRequest(protocol.EncodeResizeZone(zone.DeviceIdx, zone.Idx, newSize))
}

// SetLEDColor sets the color of one selected LED.
func (c *Client) SetLEDColor(led *common.LED, color common.Color) common.RequestStatus {
	return c.sendRequest(protocol.EncodeUpdateSingleLED(led.DeviceIdx, led.Idx, color))
}

// RequestProfileList asks the server for the names of all saved profiles.
func (c *Client) RequestProfileList() (status common.RequestStatus, profiles []string) {
	defer func() {
		if r := recover(); r != nil {
			common.Log.Errorf(`panic during profile list request: %v`, r)
			status, profiles = common.RequestUnexpectedError, nil
		}
	}()

	if !c.sock.IsConnected() {
		return common.RequestNotConnected, nil
	}

	if c.sock.Send(protocol.EncodeRequestProfileList()) != common.SockSuccess {
		return common.RequestSendFailed, nil
	}
	_, body, st := c.awaitReply(protocol.RequestProfileList)
	if st != common.RequestSuccess {
		return st, nil
	}
	profiles, ok := protocol.DecodeProfileList(body)
	if !ok {
		return common.RequestInvalidReply, nil
	}
	return common.RequestSuccess, profiles
}

// SaveProfile saves the current state of all devices under a server-side
// profile name.
func (c *Client) SaveProfile(name string) common.RequestStatus {
	return c.sendRequest(protocol.EncodeSaveProfile(name))
}

// LoadProfile applies a previously saved profile.
func (c *Client) LoadProfile(name string) common.RequestStatus {
	return c.sendRequest(protocol.EncodeLoadProfile(name))
}

// DeleteProfile removes a previously saved profile.
func (c *Client) DeleteProfile(name string) common.RequestStatus {
	return c.sendRequest(protocol.EncodeDeleteProfile(name))
}

// LastSystemError returns the error behind the most recent failed socket
// operation, for diagnostics.
func (c *Client) LastSystemError() error {
	return c.sock.LastSystemError()
}

// LastSystemErrorString returns the message of LastSystemError, or an empty
// string when no failure has been recorded.
func (c *Client) LastSystemErrorString() string {
	if err := c.sock.LastSystemError(); err != nil {
		return err.Error()
	}
	return ``
}

// NewSubscription returns a new *common.Subscription for receiving events
// from this client.
func (c *Client) NewSubscription() (*common.Subscription, error) {
	sub := common.NewSubscription(c)
	c.subscriptions[sub.ID()] = sub
	return sub, nil
}

// CloseSubscription is a callback for handling the closing of subscriptions.
func (c *Client) CloseSubscription(sub *common.Subscription) error {
	delete(c.subscriptions, sub.ID())
	return nil
}

// sendRequest transmits a fire-and-forget request: the operation succeeds as
// soon as the frame has been handed to the socket, the server sends no
// confirmation.
func (c *Client) sendRequest(msg []byte) (status common.RequestStatus) {
	defer func() {
		if r := recover(); r != nil {
			common.Log.Errorf(`panic during request: %v`, r)
			status = common.RequestUnexpectedError
		}
	}()

	if !c.sock.IsConnected() {
		return common.RequestNotConnected
	}
	if c.sock.Send(msg) != common.SockSuccess {
		return common.RequestSendFailed
	}
	return common.RequestSuccess
}

// awaitReply reads inbound frames until one of the expected type arrives.
// DEVICE_LIST_UPDATED notifications may be interleaved anywhere in the
// stream (the server may even emit one before it has processed our request),
// they are consumed here and recorded in the freshness bit.  Any other
// unexpected type fails the request.
func (c *Client) awaitReply(expected protocol.MessageType) (protocol.Header, []byte, common.RequestStatus) {
	for {
		hdrBytes, st := c.sock.ReceiveExact(protocol.HeaderSize)
		if st != common.SockSuccess {
			return protocol.Header{}, nil, c.receiveFailure(st)
		}
		hdr, ok := protocol.ParseHeader(hdrBytes)
		if !ok {
			return protocol.Header{}, nil, common.RequestInvalidReply
		}

		if hdr.Type == protocol.DeviceListUpdated {
			// the notification has no body, nothing to skip
			c.markListOutOfDate()
			continue
		}
		if hdr.Type != expected {
			return protocol.Header{}, nil, common.RequestInvalidReply
		}

		if hdr.BodySize == 0 {
			return hdr, nil, common.RequestSuccess
		}
		body, st := c.sock.ReceiveExact(int(hdr.BodySize))
		if st != common.SockSuccess {
			return protocol.Header{}, nil, c.receiveFailure(st)
		}
		return hdr, body, common.RequestSuccess
	}
}

// receiveFailure maps a failed receive to a request status.  A timeout
// leaves the inbound stream at an unknown position, so the connection is
// force-closed rather than left to desync the next reply.
func (c *Client) receiveFailure(st common.SockStatus) common.RequestStatus {
	switch st {
	case common.SockConnectionClosed:
		c.dropConnection()
		return common.RequestConnectionClosed
	case common.SockTimeout:
		c.dropConnection()
		return common.RequestNoReply
	case common.SockNotConnected:
		return common.RequestNotConnected
	default:
		return common.RequestReceiveError
	}
}

// dropConnection tears down the socket after a fatal I/O result.
func (c *Client) dropConnection() {
	if c.sock.Disconnect() == common.SockNotConnected {
		return
	}
	c.negotiated = 0
	c.publish(common.EventDisconnected{})
}

// markListOutOfDate records an observed DEVICE_LIST_UPDATED notification.
func (c *Client) markListOutOfDate() {
	c.listOutOfDate = true
	c.publish(common.EventDeviceListUpdated{})
}

func (c *Client) publish(event interface{}) {
	for _, sub := range c.subscriptions {
		if err := sub.Write(event); err != nil {
			common.Log.Debugf(`dropping event %T for subscription %s: %v`, event, sub.ID(), err)
		}
	}
}
