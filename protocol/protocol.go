// Package protocol implements the OpenRGB network wire codec: the fixed
// message header, the little-endian binary streams, and the encoding and
// decoding of every message exchanged with the server.
//
// This package is not designed to be accessed by end users, all interaction
// should occur via the Client in the goopenrgb package.
package protocol

// ImplementedVersion is the highest OpenRGB protocol version this library
// implements.  The version spoken on the wire is negotiated during connect as
// min(ImplementedVersion, serverVersion).
const ImplementedVersion uint32 = 3

// MessageType identifies an OpenRGB protocol message.  Requests and their
// replies share a code, the direction of travel disambiguates them.
type MessageType uint32

const (
	RequestControllerCount MessageType = 0
	RequestControllerData  MessageType = 1
	RequestProtocolVersion MessageType = 40
	SetClientName          MessageType = 50
	DeviceListUpdated      MessageType = 100
	RequestProfileList     MessageType = 150
	RequestSaveProfile     MessageType = 151
	RequestLoadProfile     MessageType = 152
	RequestDeleteProfile   MessageType = 153
	ResizeZone             MessageType = 1000
	UpdateLEDs             MessageType = 1050
	UpdateZoneLEDs         MessageType = 1051
	UpdateSingleLED        MessageType = 1052
	SetCustomMode          MessageType = 1100
	UpdateMode             MessageType = 1101
	SaveMode               MessageType = 1102
)

func (t MessageType) String() string {
	switch t {
	case RequestControllerCount:
		return `REQUEST_CONTROLLER_COUNT`
	case RequestControllerData:
		return `REQUEST_CONTROLLER_DATA`
	case RequestProtocolVersion:
		return `REQUEST_PROTOCOL_VERSION`
	case SetClientName:
		return `SET_CLIENT_NAME`
	case DeviceListUpdated:
		return `DEVICE_LIST_UPDATED`
	case RequestProfileList:
		return `REQUEST_PROFILE_LIST`
	case RequestSaveProfile:
		return `REQUEST_SAVE_PROFILE`
	case RequestLoadProfile:
		return `REQUEST_LOAD_PROFILE`
	case RequestDeleteProfile:
		return `REQUEST_DELETE_PROFILE`
	case ResizeZone:
		return `RESIZE_ZONE`
	case UpdateLEDs:
		return `UPDATE_LEDS`
	case UpdateZoneLEDs:
		return `UPDATE_ZONE_LEDS`
	case UpdateSingleLED:
		return `UPDATE_SINGLE_LED`
	case SetCustomMode:
		return `SET_CUSTOM_MODE`
	case UpdateMode:
		return `UPDATE_MODE`
	case SaveMode:
		return `SAVE_MODE`
	default:
		return `<unknown>`
	}
}
