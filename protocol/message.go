package protocol

import (
	"github.com/pdf/goopenrgb/common"
)

// Client-side request encoders.  Each returns a complete frame, header
// included, ready to be written to the socket.

// EncodeRequestProtocolVersion advertises the client's protocol version.
func EncodeRequestProtocolVersion(version uint32) []byte {
	w := &Writer{}
	w.WriteUint32(version)
	return frame(0, RequestProtocolVersion, w.Bytes())
}

// EncodeSetClientName announces the client's display name.
func EncodeSetClientName(name string) []byte {
	w := &Writer{}
	w.WriteString(name)
	return frame(0, SetClientName, w.Bytes())
}

// EncodeRequestControllerCount asks for the number of devices.
func EncodeRequestControllerCount() []byte {
	return frame(0, RequestControllerCount, nil)
}

// EncodeRequestControllerData asks for the record of one device.  The body
// carries the negotiated version so the server can shape its reply.
func EncodeRequestControllerData(deviceIdx, version uint32) []byte {
	w := &Writer{}
	w.WriteUint32(version)
	return frame(deviceIdx, RequestControllerData, w.Bytes())
}

// EncodeSetCustomMode switches a device to its direct-control mode.
func EncodeSetCustomMode(deviceIdx uint32) []byte {
	return frame(deviceIdx, SetCustomMode, nil)
}

func encodeModeBody(modeIdx uint32, mode *common.Mode, version uint32) []byte {
	fields := &Writer{}
	serializeMode(fields, mode, version)
	w := &Writer{}
	w.WriteUint32(uint32(8 + fields.Len()))
	w.WriteUint32(modeIdx)
	w.WriteBytes(fields.Bytes())
	return w.Bytes()
}

// EncodeUpdateMode changes the active mode of a device.
func EncodeUpdateMode(deviceIdx, modeIdx uint32, mode *common.Mode, version uint32) []byte {
	return frame(deviceIdx, UpdateMode, encodeModeBody(modeIdx, mode, version))
}

// EncodeSaveMode persists a mode into the device's non-volatile storage.
func EncodeSaveMode(deviceIdx, modeIdx uint32, mode *common.Mode, version uint32) []byte {
	return frame(deviceIdx, SaveMode, encodeModeBody(modeIdx, mode, version))
}

// EncodeUpdateLEDs sets the color of every LED on a device.
func EncodeUpdateLEDs(deviceIdx uint32, colors []common.Color) []byte {
	w := &Writer{}
	w.WriteUint32(uint32(4 + 2 + 4*len(colors)))
	w.WriteUint16(uint16(len(colors)))
	for _, c := range colors {
		w.WriteColor(c)
	}
	return frame(deviceIdx, UpdateLEDs, w.Bytes())
}

// EncodeUpdateZoneLEDs sets the color of every LED in one zone.
func EncodeUpdateZoneLEDs(deviceIdx, zoneIdx uint32, colors []common.Color) []byte {
	w := &Writer{}
	w.WriteUint32(uint32(4 + 4 + 2 + 4*len(colors)))
	w.WriteUint32(zoneIdx)
	w.WriteUint16(uint16(len(colors)))
	for _, c := range colors {
		w.WriteColor(c)
	}
	return frame(deviceIdx, UpdateZoneLEDs, w.Bytes())
}

// EncodeUpdateSingleLED sets the color of one LED.
func EncodeUpdateSingleLED(deviceIdx, ledIdx uint32, color common.Color) []byte {
	w := &Writer{}
	w.WriteUint32(ledIdx)
	w.WriteColor(color)
	return frame(deviceIdx, UpdateSingleLED, w.Bytes())
}

// EncodeResizeZone changes the LED count of a resizable zone.
func EncodeResizeZone(deviceIdx, zoneIdx, newSize uint32) []byte {
	w := &Writer{}
	w.WriteUint32(zoneIdx)
	w.WriteUint32(newSize)
	return frame(deviceIdx, ResizeZone, w.Bytes())
}

// EncodeRequestProfileList asks for the names of all saved profiles.
func EncodeRequestProfileList() []byte {
	return frame(0, RequestProfileList, nil)
}

// EncodeSaveProfile persists the current state of all devices under name.
func EncodeSaveProfile(name string) []byte {
	w := &Writer{}
	w.WriteString(name)
	return frame(0, RequestSaveProfile, w.Bytes())
}

// EncodeLoadProfile applies a previously saved profile.
func EncodeLoadProfile(name string) []byte {
	w := &Writer{}
	w.WriteString(name)
	return frame(0, RequestLoadProfile, w.Bytes())
}

// EncodeDeleteProfile removes a previously saved profile.
func EncodeDeleteProfile(name string) []byte {
	w := &Writer{}
	w.WriteString(name)
	return frame(0, RequestDeleteProfile, w.Bytes())
}

// Reply body decoders.  The header has already been read and validated by the
// session, these consume the body bytes.

// DecodeProtocolVersion decodes a REPLY_PROTOCOL_VERSION body.
func DecodeProtocolVersion(body []byte) (uint32, bool) {
	r := NewReader(body)
	v := r.Uint32()
	return v, r.AtEnd()
}

// DecodeControllerCount decodes a REPLY_CONTROLLER_COUNT body.
func DecodeControllerCount(body []byte) (uint32, bool) {
	r := NewReader(body)
	count := r.Uint32()
	return count, r.AtEnd()
}

// DecodeControllerData decodes a REPLY_CONTROLLER_DATA body into a device,
// stamping deviceIdx onto the device and everything it contains.
func DecodeControllerData(body []byte, deviceIdx, version uint32) (common.Device, bool) {
	r := NewReader(body)
	d := DeserializeDevice(r, deviceIdx, version)
	return d, r.AtEnd()
}

// DecodeProfileList decodes a REPLY_PROFILE_LIST body.
func DecodeProfileList(body []byte) ([]string, bool) {
	r := NewReader(body)
	start := r.Offset()
	dataSize := int(r.Uint32())
	if !r.Ok() || dataSize < 4 || dataSize > 4+r.Remaining() {
		return nil, false
	}
	count := int(r.Uint16())
	profiles := make([]string, 0, count)
	for i := 0; i < count && r.Ok(); i++ {
		profiles = append(profiles, r.String())
	}
	r.SkipTo(start + dataSize)
	if !r.AtEnd() {
		return nil, false
	}
	return profiles, true
}

// Server-side encoders, used by tests and by anything that needs to imitate a
// server (the reference server itself shapes replies this way).

// EncodeReplyProtocolVersion builds a REPLY_PROTOCOL_VERSION frame.
func EncodeReplyProtocolVersion(version uint32) []byte {
	w := &Writer{}
	w.WriteUint32(version)
	return frame(0, RequestProtocolVersion, w.Bytes())
}

// EncodeReplyControllerCount builds a REPLY_CONTROLLER_COUNT frame.
func EncodeReplyControllerCount(count uint32) []byte {
	w := &Writer{}
	w.WriteUint32(count)
	return frame(0, RequestControllerCount, w.Bytes())
}

// EncodeReplyControllerData builds a REPLY_CONTROLLER_DATA frame.
func EncodeReplyControllerData(dev *common.Device, version uint32) []byte {
	w := &Writer{}
	SerializeDevice(w, dev, version)
	return frame(dev.Idx, RequestControllerData, w.Bytes())
}

// EncodeReplyProfileList builds a REPLY_PROFILE_LIST frame.
func EncodeReplyProfileList(profiles []string) []byte {
	body := &Writer{}
	body.WriteUint16(uint16(len(profiles)))
	for _, p := range profiles {
		body.WriteString(p)
	}
	w := &Writer{}
	w.WriteUint32(uint32(4 + body.Len()))
	w.WriteBytes(body.Bytes())
	return frame(0, RequestProfileList, w.Bytes())
}

// EncodeDeviceListUpdated builds the unsolicited notification frame.  It has
// no body and its device index carries no meaning.
func EncodeDeviceListUpdated() []byte {
	return frame(0, DeviceListUpdated, nil)
}
