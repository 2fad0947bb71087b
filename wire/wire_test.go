package wire

import (
	"errors"
	"math"
	"testing"

	fperrors "github.com/sagudev/fp-bindgen/errors"
)

func TestScalarRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteU8(0xff)
	w.WriteS8(-128)
	w.WriteU16(0xffff)
	w.WriteS16(-32768)
	w.WriteU32(0xffffffff)
	w.WriteS32(-2147483648)
	w.WriteU64(math.MaxUint64)
	w.WriteS64(math.MinInt64)
	w.WriteF32(3.5)
	w.WriteF64(-2.25)

	r := NewReader(w.Bytes())
	if v, err := r.ReadBool(); err != nil || v != true {
		t.Errorf("bool = %v, %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || v != false {
		t.Errorf("bool = %v, %v", v, err)
	}
	if v, err := r.ReadU8(); err != nil || v != 0xff {
		t.Errorf("u8 = %v, %v", v, err)
	}
	if v, err := r.ReadS8(); err != nil || v != -128 {
		t.Errorf("s8 = %v, %v", v, err)
	}
	if v, err := r.ReadU16(); err != nil || v != 0xffff {
		t.Errorf("u16 = %v, %v", v, err)
	}
	if v, err := r.ReadS16(); err != nil || v != -32768 {
		t.Errorf("s16 = %v, %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 0xffffffff {
		t.Errorf("u32 = %v, %v", v, err)
	}
	if v, err := r.ReadS32(); err != nil || v != -2147483648 {
		t.Errorf("s32 = %v, %v", v, err)
	}
	if v, err := r.ReadU64(); err != nil || v != uint64(math.MaxUint64) {
		t.Errorf("u64 = %v, %v", v, err)
	}
	if v, err := r.ReadS64(); err != nil || v != math.MinInt64 {
		t.Errorf("s64 = %v, %v", v, err)
	}
	if v, err := r.ReadF32(); err != nil || v != 3.5 {
		t.Errorf("f32 = %v, %v", v, err)
	}
	if v, err := r.ReadF64(); err != nil || v != -2.25 {
		t.Errorf("f64 = %v, %v", v, err)
	}
	if !r.Done() {
		t.Errorf("reader should be exhausted, %d bytes left", r.Remaining())
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []string{"", "hello", "héllo wörld", "日本語", "a\x00b"}
	for _, s := range tests {
		w := NewWriter()
		w.WriteString(s)
		r := NewReader(w.Bytes())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q) failed: %v", s, err)
		}
		if got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}

func TestBytesRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte{0x00, 0xff, 0x10})
	w.WriteBytes(nil)

	r := NewReader(w.Bytes())
	got, err := r.ReadBytes()
	if err != nil || len(got) != 3 || got[1] != 0xff {
		t.Errorf("bytes = %v, %v", got, err)
	}
	empty, err := r.ReadBytes()
	if err != nil || len(empty) != 0 {
		t.Errorf("empty bytes = %v, %v", empty, err)
	}
}

func TestOptionalEncoding(t *testing.T) {
	// Absent optional encodes as nil; present encodes the value directly.
	w := NewWriter()
	w.WriteNil()
	w.WriteString("present")

	r := NewReader(w.Bytes())
	if !r.IsNil() {
		t.Fatal("first value should be nil")
	}
	if err := r.ReadNil(); err != nil {
		t.Fatalf("ReadNil failed: %v", err)
	}
	if r.IsNil() {
		t.Fatal("second value should not be nil")
	}
	s, err := r.ReadString()
	if err != nil || s != "present" {
		t.Errorf("optional payload = %q, %v", s, err)
	}
}

func TestSeqAndMap(t *testing.T) {
	w := NewWriter()
	w.WriteSeqHeader(2)
	w.WriteU32(1)
	w.WriteU32(2)
	w.WriteMapHeader(1)
	w.WriteString("k")
	w.WriteBool(true)

	r := NewReader(w.Bytes())
	n, err := r.ReadSeqHeader()
	if err != nil || n != 2 {
		t.Fatalf("seq header = %d, %v", n, err)
	}
	for i := 0; i < n; i++ {
		if _, err := r.ReadU32(); err != nil {
			t.Fatalf("seq elem %d: %v", i, err)
		}
	}
	pairs, err := r.ReadMapHeader()
	if err != nil || pairs != 1 {
		t.Fatalf("map header = %d, %v", pairs, err)
	}
}

func TestTagMismatch(t *testing.T) {
	w := NewWriter()
	w.WriteU32(7)

	r := NewReader(w.Bytes())
	_, err := r.ReadString()
	if err == nil {
		t.Fatal("reading u32 as string should fail")
	}
	var fpErr *fperrors.Error
	if !errors.As(err, &fpErr) || fpErr.Kind != fperrors.KindInvalidData {
		t.Errorf("expected invalid_data, got %v", err)
	}
}

func TestTruncatedBuffer(t *testing.T) {
	w := NewWriter()
	w.WriteString("hello world")
	full := w.Bytes()

	for cut := 1; cut < len(full); cut++ {
		r := NewReader(full[:cut])
		if _, err := r.ReadString(); err == nil {
			t.Errorf("truncation at %d bytes should fail", cut)
		}
	}
}

func TestCorruptCountRejected(t *testing.T) {
	// A sequence claiming more elements than the buffer could hold.
	w := NewWriter()
	w.WriteSeqHeader(1 << 30)

	r := NewReader(w.Bytes())
	if _, err := r.ReadSeqHeader(); err == nil {
		t.Fatal("oversized count should be rejected")
	}
}

func TestInvalidUTF8Rejected(t *testing.T) {
	buf := []byte{TagStr, 2, 0, 0, 0, 0xff, 0xfe}
	r := NewReader(buf)
	if _, err := r.ReadString(); err == nil {
		t.Fatal("invalid UTF-8 should fail decode")
	}
}

func TestSkip(t *testing.T) {
	w := NewWriter()
	w.WriteMapHeader(2)
	w.WriteString("a")
	w.WriteSeqHeader(2)
	w.WriteU8(1)
	w.WriteNil()
	w.WriteString("b")
	w.WriteF64(1.5)
	w.WriteBool(true) // sentinel after the mapping

	r := NewReader(w.Bytes())
	if err := r.Skip(); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	v, err := r.ReadBool()
	if err != nil || !v {
		t.Errorf("sentinel after skip = %v, %v", v, err)
	}
}

func TestReadBytes_CopiesOut(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte{1, 2, 3})
	buf := append([]byte(nil), w.Bytes()...)

	r := NewReader(buf)
	got, err := r.ReadBytes()
	if err != nil {
		t.Fatal(err)
	}
	buf[len(buf)-1] = 0xEE
	if got[2] != 3 {
		t.Error("decoded bytes must not alias the input buffer")
	}
}
