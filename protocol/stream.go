package protocol

import (
	"encoding/binary"

	"github.com/pdf/goopenrgb/common"
)

// Writer accumulates the little-endian binary form of a message.  Writes
// cannot fail, the buffer grows as needed.
type Writer struct {
	buf []byte
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteString writes a string as a uint16 length including the terminating
// NUL, followed by the bytes and the NUL itself.
func (w *Writer) WriteString(s string) {
	w.WriteUint16(uint16(len(s) + 1))
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0x00)
}

// WriteColor writes a color as its four wire bytes: R, G, B, padding.
func (w *Writer) WriteColor(c common.Color) {
	w.buf = append(w.buf, c.R, c.G, c.B, 0x00)
}

// Reader consumes the little-endian binary form of a message.  The first
// failed read marks the reader failed, subsequent reads return zero values.
type Reader struct {
	buf    []byte
	off    int
	failed bool
}

// NewReader returns a Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Ok reports whether every read so far succeeded.
func (r *Reader) Ok() bool {
	return !r.failed
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// AtEnd reports whether the reader succeeded and consumed the whole buffer.
func (r *Reader) AtEnd() bool {
	return !r.failed && r.off == len(r.buf)
}

func (r *Reader) fail() {
	r.failed = true
}

func (r *Reader) take(n int) []byte {
	if r.failed || n < 0 || r.Remaining() < n {
		r.fail()
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// SkipTo advances the reader to the absolute offset off, used to skip unknown
// trailing bytes of size-prefixed records.  Rewinding is not allowed.
func (r *Reader) SkipTo(off int) {
	if r.failed || off < r.off || off > len(r.buf) {
		r.fail()
		return
	}
	r.off = off
}

func (r *Reader) Uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// String reads a uint16-length-prefixed string and validates the terminating
// NUL.  A missing terminator or a length past the end of the buffer fails the
// reader.
func (r *Reader) String() string {
	n := int(r.Uint16())
	b := r.take(n)
	if b == nil {
		return ``
	}
	if n < 1 || b[n-1] != 0x00 {
		r.fail()
		return ``
	}
	return string(b[:n-1])
}

// Color reads the four wire bytes of a color, ignoring the padding byte.
func (r *Reader) Color() common.Color {
	b := r.take(4)
	if b == nil {
		return common.Color{}
	}
	return common.Color{R: b[0], G: b[1], B: b[2]}
}
