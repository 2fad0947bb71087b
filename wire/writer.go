package wire

import (
	"encoding/binary"
	"math"
)

// Writer appends tagged values to a growable buffer. Integers and length
// prefixes are little-endian; integers are fixed-width two's complement
// matching their declared width, with no implicit coercion.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

// Bytes returns the encoded buffer. The slice aliases the writer's
// internal storage and is invalidated by further writes or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of encoded bytes.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset discards all written data, retaining capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

func (w *Writer) WriteNil() {
	w.buf = append(w.buf, TagNil)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, TagTrue)
	} else {
		w.buf = append(w.buf, TagFalse)
	}
}

func (w *Writer) WriteU8(v uint8) {
	w.buf = append(w.buf, TagU8, v)
}

func (w *Writer) WriteS8(v int8) {
	w.buf = append(w.buf, TagS8, byte(v))
}

func (w *Writer) WriteU16(v uint16) {
	w.buf = append(w.buf, TagU16)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) WriteS16(v int16) {
	w.buf = append(w.buf, TagS16)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(v))
}

func (w *Writer) WriteU32(v uint32) {
	w.buf = append(w.buf, TagU32)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteS32(v int32) {
	w.buf = append(w.buf, TagS32)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

func (w *Writer) WriteU64(v uint64) {
	w.buf = append(w.buf, TagU64)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) WriteS64(v int64) {
	w.buf = append(w.buf, TagS64)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v))
}

func (w *Writer) WriteF32(v float32) {
	w.buf = append(w.buf, TagF32)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}

func (w *Writer) WriteF64(v float64) {
	w.buf = append(w.buf, TagF64)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteString writes a length-prefixed UTF-8 string.
func (w *Writer) WriteString(v string) {
	w.buf = append(w.buf, TagStr)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(len(v)))
	w.buf = append(w.buf, v...)
}

// WriteBytes writes a length-prefixed raw binary blob.
func (w *Writer) WriteBytes(v []byte) {
	w.buf = append(w.buf, TagBin)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(len(v)))
	w.buf = append(w.buf, v...)
}

// WriteSeqHeader starts a sequence of n values. The caller writes exactly
// n values afterwards.
func (w *Writer) WriteSeqHeader(n int) {
	w.buf = append(w.buf, TagSeq)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(n))
}

// WriteMapHeader starts a mapping of n key/value pairs. The caller writes
// exactly 2*n values afterwards, alternating key, value.
func (w *Writer) WriteMapHeader(n int) {
	w.buf = append(w.buf, TagMap)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(n))
}
