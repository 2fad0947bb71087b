package wire

import (
	"sort"
	"time"

	"github.com/sagudev/fp-bindgen/errors"
)

// Value holds a dynamic self-describing value: nil, bool, one of the
// fixed-width integers, float32/float64, string, []byte, []Value, or
// map[string]Value. It backs the opaque-value compatibility entry.
type Value = any

// WriteValue encodes a dynamic value. Values outside the supported set
// fail with an encode error rather than being coerced.
func WriteValue(w *Writer, v Value) error {
	switch x := v.(type) {
	case nil:
		w.WriteNil()
	case bool:
		w.WriteBool(x)
	case uint8:
		w.WriteU8(x)
	case int8:
		w.WriteS8(x)
	case uint16:
		w.WriteU16(x)
	case int16:
		w.WriteS16(x)
	case uint32:
		w.WriteU32(x)
	case int32:
		w.WriteS32(x)
	case uint64:
		w.WriteU64(x)
	case int64:
		w.WriteS64(x)
	case int:
		w.WriteS64(int64(x))
	case float32:
		w.WriteF32(x)
	case float64:
		w.WriteF64(x)
	case string:
		w.WriteString(x)
	case []byte:
		w.WriteBytes(x)
	case []Value:
		w.WriteSeqHeader(len(x))
		for _, elem := range x {
			if err := WriteValue(w, elem); err != nil {
				return err
			}
		}
	case map[string]Value:
		w.WriteMapHeader(len(x))
		for _, key := range sortedKeys(x) {
			w.WriteString(key)
			if err := WriteValue(w, x[key]); err != nil {
				return err
			}
		}
	default:
		return errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Detail("dynamic value of unsupported type %T", v).
			Value(v).
			Build()
	}
	return nil
}

// ReadValue decodes the next value of any shape into its dynamic form.
// Sequences become []Value; mappings become map[string]Value and require
// string keys.
func ReadValue(r *Reader) (Value, error) {
	tag, err := r.Peek()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagNil:
		return nil, r.ReadNil()
	case TagFalse, TagTrue:
		return r.ReadBool()
	case TagU8:
		return r.ReadU8()
	case TagS8:
		return r.ReadS8()
	case TagU16:
		return r.ReadU16()
	case TagS16:
		return r.ReadS16()
	case TagU32:
		return r.ReadU32()
	case TagS32:
		return r.ReadS32()
	case TagU64:
		return r.ReadU64()
	case TagS64:
		return r.ReadS64()
	case TagF32:
		return r.ReadF32()
	case TagF64:
		return r.ReadF64()
	case TagStr:
		return r.ReadString()
	case TagBin:
		return r.ReadBytes()
	case TagSeq:
		n, err := r.ReadSeqHeader()
		if err != nil {
			return nil, err
		}
		out := make([]Value, 0, n)
		for i := 0; i < n; i++ {
			elem, err := ReadValue(r)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	case TagMap:
		n, err := r.ReadMapHeader()
		if err != nil {
			return nil, err
		}
		out := make(map[string]Value, n)
		for i := 0; i < n; i++ {
			key, err := r.ReadString()
			if err != nil {
				return nil, err
			}
			val, err := ReadValue(r)
			if err != nil {
				return nil, err
			}
			out[key] = val
		}
		return out, nil
	}
	return nil, errors.InvalidData(errors.PhaseDecode, nil, "unknown tag byte")
}

// WriteTimestamp encodes a point in time as an RFC 3339 string with
// nanosecond precision, always in UTC.
func WriteTimestamp(w *Writer, t time.Time) error {
	w.WriteString(t.UTC().Format(time.RFC3339Nano))
	return nil
}

// WriteByteBuf encodes a raw byte buffer.
func WriteByteBuf(w *Writer, b []byte) error {
	w.WriteBytes(b)
	return nil
}

// ReadByteBuf decodes a raw byte buffer.
func ReadByteBuf(r *Reader) ([]byte, error) {
	return r.ReadBytes()
}

// ReadTimestamp decodes an RFC 3339 timestamp.
func ReadTimestamp(r *Reader) (time.Time, error) {
	s, err := r.ReadString()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "malformed timestamp")
	}
	return t, nil
}

// Map iteration order is randomized in Go; keys are sorted so two encodes
// of the same value produce identical bytes.
func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
