package protocol

// HeaderSize is the fixed size of every message header on the wire.
const HeaderSize = 16

// magic opens every OpenRGB frame.
var magic = [4]byte{'O', 'R', 'G', 'B'}

// Header is the fixed preamble of every OpenRGB message: the "ORGB" magic
// followed by three little-endian uint32s.
type Header struct {
	DeviceIdx uint32
	Type      MessageType
	BodySize  uint32
}

// Serialize appends the 16 header bytes to w.
func (h *Header) Serialize(w *Writer) {
	w.WriteBytes(magic[:])
	w.WriteUint32(h.DeviceIdx)
	w.WriteUint32(uint32(h.Type))
	w.WriteUint32(h.BodySize)
}

// Deserialize reads and validates the 16 header bytes.  Returns false on a
// magic mismatch or a short buffer.
func (h *Header) Deserialize(r *Reader) bool {
	m := r.Bytes(4)
	if !r.Ok() || m[0] != magic[0] || m[1] != magic[1] || m[2] != magic[2] || m[3] != magic[3] {
		return false
	}
	h.DeviceIdx = r.Uint32()
	h.Type = MessageType(r.Uint32())
	h.BodySize = r.Uint32()
	return r.Ok()
}

// ParseHeader decodes a header from exactly HeaderSize bytes.
func ParseHeader(buf []byte) (Header, bool) {
	var h Header
	if len(buf) != HeaderSize {
		return h, false
	}
	r := NewReader(buf)
	ok := h.Deserialize(r)
	return h, ok
}

// frame assembles a complete message from a device index, a type and an
// already serialized body.
func frame(deviceIdx uint32, msgType MessageType, body []byte) []byte {
	h := Header{DeviceIdx: deviceIdx, Type: msgType, BodySize: uint32(len(body))}
	w := &Writer{}
	h.Serialize(w)
	w.WriteBytes(body)
	return w.Bytes()
}
