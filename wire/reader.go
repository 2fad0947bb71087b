package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/sagudev/fp-bindgen/errors"
)

// Reader consumes tagged values from a buffer. Reads never retain the
// input slice beyond strings and blobs, which are copied out, so the
// caller may release the underlying buffer once decoding completes.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Done reports whether the whole buffer has been consumed.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}

// Peek returns the next tag byte without consuming it.
func (r *Reader) Peek() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, errors.Truncated(errors.PhaseDecode, nil, 1, 0)
	}
	return r.buf[r.pos], nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, errors.Truncated(errors.PhaseDecode, nil, n, r.Remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) expect(tag byte) error {
	got, err := r.Peek()
	if err != nil {
		return err
	}
	if got != tag {
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("expected %s tag, found %s (0x%02x)", tagName(tag), tagName(got), got).
			Build()
	}
	r.pos++
	return nil
}

// ReadNil consumes a nil value.
func (r *Reader) ReadNil() error {
	return r.expect(TagNil)
}

// IsNil reports whether the next value is nil without consuming it.
func (r *Reader) IsNil() bool {
	tag, err := r.Peek()
	return err == nil && tag == TagNil
}

func (r *Reader) ReadBool() (bool, error) {
	tag, err := r.Peek()
	if err != nil {
		return false, err
	}
	switch tag {
	case TagTrue:
		r.pos++
		return true, nil
	case TagFalse:
		r.pos++
		return false, nil
	}
	return false, errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Detail("expected bool tag, found %s (0x%02x)", tagName(tag), tag).
		Build()
}

func (r *Reader) ReadU8() (uint8, error) {
	if err := r.expect(TagU8); err != nil {
		return 0, err
	}
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadS8() (int8, error) {
	if err := r.expect(TagS8); err != nil {
		return 0, err
	}
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (r *Reader) ReadU16() (uint16, error) {
	if err := r.expect(TagU16); err != nil {
		return 0, err
	}
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadS16() (int16, error) {
	if err := r.expect(TagS16); err != nil {
		return 0, err
	}
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

func (r *Reader) ReadU32() (uint32, error) {
	if err := r.expect(TagU32); err != nil {
		return 0, err
	}
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadS32() (int32, error) {
	if err := r.expect(TagS32); err != nil {
		return 0, err
	}
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	if err := r.expect(TagU64); err != nil {
		return 0, err
	}
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadS64() (int64, error) {
	if err := r.expect(TagS64); err != nil {
		return 0, err
	}
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (r *Reader) ReadF32() (float32, error) {
	if err := r.expect(TagF32); err != nil {
		return 0, err
	}
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

func (r *Reader) ReadF64() (float64, error) {
	if err := r.expect(TagF64); err != nil {
		return 0, err
	}
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// ReadString reads a length-prefixed UTF-8 string. The bytes are copied
// out of the buffer and validated.
func (r *Reader) ReadString() (string, error) {
	if err := r.expect(TagStr); err != nil {
		return "", err
	}
	lenBytes, err := r.take(4)
	if err != nil {
		return "", err
	}
	n := int(binary.LittleEndian.Uint32(lenBytes))
	data, err := r.take(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, nil, data)
	}
	return string(data), nil
}

// ReadBytes reads a length-prefixed binary blob. The returned slice is a
// copy and stays valid after the buffer is released.
func (r *Reader) ReadBytes() ([]byte, error) {
	if err := r.expect(TagBin); err != nil {
		return nil, err
	}
	lenBytes, err := r.take(4)
	if err != nil {
		return nil, err
	}
	n := int(binary.LittleEndian.Uint32(lenBytes))
	data, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, data)
	return out, nil
}

// ReadSeqHeader reads a sequence header and returns the element count.
func (r *Reader) ReadSeqHeader() (int, error) {
	if err := r.expect(TagSeq); err != nil {
		return 0, err
	}
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	n := int(binary.LittleEndian.Uint32(b))
	if n > r.Remaining() {
		// Every element needs at least a tag byte; reject early instead of
		// letting a corrupt count drive huge allocations downstream.
		return 0, errors.InvalidData(errors.PhaseDecode, nil, "sequence count exceeds remaining buffer")
	}
	return n, nil
}

// ReadMapHeader reads a mapping header and returns the pair count.
func (r *Reader) ReadMapHeader() (int, error) {
	if err := r.expect(TagMap); err != nil {
		return 0, err
	}
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	n := int(binary.LittleEndian.Uint32(b))
	if n > r.Remaining() {
		return 0, errors.InvalidData(errors.PhaseDecode, nil, "mapping count exceeds remaining buffer")
	}
	return n, nil
}

// Skip consumes the next value of any shape, recursively.
func (r *Reader) Skip() error {
	tag, err := r.Peek()
	if err != nil {
		return err
	}
	switch tag {
	case TagNil, TagFalse, TagTrue:
		r.pos++
		return nil
	case TagU8, TagS8:
		r.pos++
		_, err = r.take(1)
		return err
	case TagU16, TagS16:
		r.pos++
		_, err = r.take(2)
		return err
	case TagU32, TagS32, TagF32:
		r.pos++
		_, err = r.take(4)
		return err
	case TagU64, TagS64, TagF64:
		r.pos++
		_, err = r.take(8)
		return err
	case TagStr, TagBin:
		r.pos++
		b, err := r.take(4)
		if err != nil {
			return err
		}
		_, err = r.take(int(binary.LittleEndian.Uint32(b)))
		return err
	case TagSeq:
		n, err := r.ReadSeqHeader()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := r.Skip(); err != nil {
				return err
			}
		}
		return nil
	case TagMap:
		n, err := r.ReadMapHeader()
		if err != nil {
			return err
		}
		for i := 0; i < 2*n; i++ {
			if err := r.Skip(); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.InvalidData(errors.PhaseDecode, nil, "unknown tag byte")
}
