package protocol

import (
	"github.com/pdf/goopenrgb/common"
)

// Record codecs for the nested structures carried by REPLY_CONTROLLER_DATA
// and the mode update messages.  Layouts are version-gated: fields guarded by
// a minimum protocol version are on the wire iff the negotiated version is at
// least that minimum.

func serializeMode(w *Writer, m *common.Mode, version uint32) {
	w.WriteString(m.Name)
	w.WriteInt32(m.Value)
	w.WriteUint32(uint32(m.Flags))
	w.WriteUint32(m.SpeedMin)
	w.WriteUint32(m.SpeedMax)
	if version >= 3 {
		w.WriteUint32(m.BrightnessMin)
		w.WriteUint32(m.BrightnessMax)
	}
	w.WriteUint32(m.ColorsMin)
	w.WriteUint32(m.ColorsMax)
	w.WriteUint32(m.Speed)
	if version >= 3 {
		w.WriteUint32(m.Brightness)
	}
	w.WriteUint32(uint32(m.Direction))
	w.WriteUint32(uint32(m.ColorMode))
	w.WriteUint16(uint16(len(m.Colors)))
	for _, c := range m.Colors {
		w.WriteColor(c)
	}
}

func deserializeMode(r *Reader, version uint32) common.Mode {
	var m common.Mode
	m.Name = r.String()
	m.Value = r.Int32()
	m.Flags = common.ModeFlags(r.Uint32())
	m.SpeedMin = r.Uint32()
	m.SpeedMax = r.Uint32()
	if version >= 3 {
		m.BrightnessMin = r.Uint32()
		m.BrightnessMax = r.Uint32()
	}
	m.ColorsMin = r.Uint32()
	m.ColorsMax = r.Uint32()
	m.Speed = r.Uint32()
	if version >= 3 {
		m.Brightness = r.Uint32()
	}
	// unknown directions and color modes are not load-bearing, keep the raw
	// value rather than failing the decode
	m.Direction = common.Direction(r.Uint32())
	m.ColorMode = common.ColorMode(r.Uint32())
	numColors := int(r.Uint16())
	if !r.Ok() || r.Remaining() < numColors*4 {
		r.fail()
		return m
	}
	if numColors > 0 {
		m.Colors = make([]common.Color, numColors)
		for i := range m.Colors {
			m.Colors[i] = r.Color()
		}
	}
	return m
}

func serializeZone(w *Writer, z *common.Zone) {
	w.WriteString(z.Name)
	w.WriteInt32(int32(z.Type))
	w.WriteUint32(z.LEDsMin)
	w.WriteUint32(z.LEDsMax)
	w.WriteUint32(z.LEDsCount)
	if len(z.MatrixMap) == 0 {
		w.WriteUint16(0)
		return
	}
	w.WriteUint16(uint16(8 + 4*len(z.MatrixMap)))
	w.WriteUint32(z.MatrixHeight)
	w.WriteUint32(z.MatrixWidth)
	for _, v := range z.MatrixMap {
		w.WriteUint32(v)
	}
}

func deserializeZone(r *Reader) common.Zone {
	var z common.Zone
	z.Name = r.String()
	z.Type = common.ZoneType(r.Int32())
	if r.Ok() && (z.Type < common.ZoneSingle || z.Type > common.ZoneMatrix) {
		// the zone type decides the layout semantics, an unknown value
		// cannot be interpreted
		r.fail()
		return z
	}
	z.LEDsMin = r.Uint32()
	z.LEDsMax = r.Uint32()
	z.LEDsCount = r.Uint32()
	matrixBytes := int(r.Uint16())
	if matrixBytes == 0 {
		return z
	}
	z.MatrixHeight = r.Uint32()
	z.MatrixWidth = r.Uint32()
	cells := z.MatrixHeight * z.MatrixWidth
	if !r.Ok() || matrixBytes != int(8+4*cells) || r.Remaining() < int(cells)*4 {
		r.fail()
		return z
	}
	z.MatrixMap = make([]uint32, cells)
	for i := range z.MatrixMap {
		z.MatrixMap[i] = r.Uint32()
	}
	return z
}

func serializeLED(w *Writer, l *common.LED) {
	w.WriteString(l.Name)
	w.WriteUint32(l.Value)
}

func deserializeLED(r *Reader) common.LED {
	var l common.LED
	l.Name = r.String()
	l.Value = r.Uint32()
	return l
}

// SerializeDevice appends the size-prefixed device record.  The size prefix
// counts itself, matching the reference server.
func SerializeDevice(w *Writer, d *common.Device, version uint32) {
	body := &Writer{}
	body.WriteInt32(int32(d.Type))
	body.WriteString(d.Name)
	if version >= 1 {
		body.WriteString(d.Vendor)
	}
	body.WriteString(d.Description)
	body.WriteString(d.Version)
	body.WriteString(d.Serial)
	body.WriteString(d.Location)
	body.WriteUint16(uint16(len(d.Modes)))
	body.WriteInt32(int32(d.ActiveMode))
	for i := range d.Modes {
		serializeMode(body, &d.Modes[i], version)
	}
	body.WriteUint16(uint16(len(d.Zones)))
	for i := range d.Zones {
		serializeZone(body, &d.Zones[i])
	}
	body.WriteUint16(uint16(len(d.LEDs)))
	for i := range d.LEDs {
		serializeLED(body, &d.LEDs[i])
	}
	body.WriteUint16(uint16(len(d.Colors)))
	for _, c := range d.Colors {
		body.WriteColor(c)
	}
	w.WriteUint32(uint32(4 + body.Len()))
	w.WriteBytes(body.Bytes())
}

// DeserializeDevice reads the size-prefixed device record, assigning
// deviceIdx and the per-element indices to everything it contains.  Unknown
// trailing bytes inside the declared size are skipped, a size overrunning the
// buffer fails the decode.
func DeserializeDevice(r *Reader, deviceIdx uint32, version uint32) common.Device {
	var d common.Device
	d.Idx = deviceIdx

	start := r.Offset()
	dataSize := int(r.Uint32())
	if !r.Ok() || dataSize < 4 || dataSize > 4+r.Remaining() {
		r.fail()
		return d
	}
	end := start + dataSize

	d.Type = common.DeviceType(r.Int32())
	if r.Ok() && (d.Type < common.DeviceMotherboard || d.Type > common.DeviceUnknown) {
		d.Type = common.DeviceUnknown
	}
	d.Name = r.String()
	if version >= 1 {
		d.Vendor = r.String()
	}
	d.Description = r.String()
	d.Version = r.String()
	d.Serial = r.String()
	d.Location = r.String()

	numModes := int(r.Uint16())
	d.ActiveMode = uint32(r.Int32())
	if !r.Ok() {
		return d
	}
	if numModes > 0 {
		d.Modes = make([]common.Mode, 0, numModes)
	}
	for i := 0; i < numModes && r.Ok(); i++ {
		m := deserializeMode(r, version)
		m.DeviceIdx = deviceIdx
		m.Idx = uint32(i)
		d.Modes = append(d.Modes, m)
	}

	numZones := int(r.Uint16())
	if !r.Ok() {
		return d
	}
	if numZones > 0 {
		d.Zones = make([]common.Zone, 0, numZones)
	}
	for i := 0; i < numZones && r.Ok(); i++ {
		z := deserializeZone(r)
		z.DeviceIdx = deviceIdx
		z.Idx = uint32(i)
		d.Zones = append(d.Zones, z)
	}

	numLEDs := int(r.Uint16())
	if !r.Ok() {
		return d
	}
	if numLEDs > 0 {
		d.LEDs = make([]common.LED, 0, numLEDs)
	}
	for i := 0; i < numLEDs && r.Ok(); i++ {
		l := deserializeLED(r)
		l.DeviceIdx = deviceIdx
		l.Idx = uint32(i)
		d.LEDs = append(d.LEDs, l)
	}

	numColors := int(r.Uint16())
	if !r.Ok() || r.Remaining() < numColors*4 {
		r.fail()
		return d
	}
	if numColors > 0 {
		d.Colors = make([]common.Color, numColors)
		for i := range d.Colors {
			d.Colors[i] = r.Color()
		}
	}

	// forward compatibility: newer servers may append fields we don't know
	r.SkipTo(end)
	return d
}
