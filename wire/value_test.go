package wire

import (
	"reflect"
	"testing"
	"time"
)

func TestValueRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		val  Value
	}{
		{"nil", nil},
		{"bool", true},
		{"u8", uint8(7)},
		{"s64", int64(-9000)},
		{"f64", 2.75},
		{"string", "dynamic"},
		{"bytes", []byte{1, 2, 3}},
		{"seq", []Value{uint8(1), "two", nil}},
		{"map", map[string]Value{"a": uint32(1), "b": "x"}},
		{"nested", map[string]Value{"list": []Value{map[string]Value{"deep": true}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			if err := WriteValue(w, tt.val); err != nil {
				t.Fatalf("WriteValue failed: %v", err)
			}
			r := NewReader(w.Bytes())
			got, err := ReadValue(r)
			if err != nil {
				t.Fatalf("ReadValue failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.val) {
				t.Errorf("round trip %#v -> %#v", tt.val, got)
			}
		})
	}
}

func TestValue_IntWidened(t *testing.T) {
	w := NewWriter()
	if err := WriteValue(w, 42); err != nil {
		t.Fatal(err)
	}
	got, err := ReadValue(NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	// Plain int encodes as s64 and comes back as int64.
	if got != int64(42) {
		t.Errorf("got %#v, want int64(42)", got)
	}
}

func TestValue_UnsupportedType(t *testing.T) {
	w := NewWriter()
	if err := WriteValue(w, struct{ X int }{1}); err == nil {
		t.Fatal("struct should not encode as dynamic value")
	}
}

func TestValue_Deterministic(t *testing.T) {
	val := map[string]Value{"z": uint8(1), "a": uint8(2), "m": uint8(3)}

	w1 := NewWriter()
	w2 := NewWriter()
	if err := WriteValue(w1, val); err != nil {
		t.Fatal(err)
	}
	if err := WriteValue(w2, val); err != nil {
		t.Fatal(err)
	}
	if string(w1.Bytes()) != string(w2.Bytes()) {
		t.Error("two encodes of one map should be byte-identical")
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2024, 5, 17, 10, 30, 0, 123456789, time.UTC)

	w := NewWriter()
	WriteTimestamp(w, ts)
	got, err := ReadTimestamp(NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("ReadTimestamp failed: %v", err)
	}
	if !got.Equal(ts) {
		t.Errorf("round trip %v -> %v", ts, got)
	}
}

func TestTimestamp_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("plus2", 2*3600)
	ts := time.Date(2024, 5, 17, 12, 30, 0, 0, loc)

	w := NewWriter()
	WriteTimestamp(w, ts)
	got, err := ReadTimestamp(NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(ts) {
		t.Errorf("instants differ: %v vs %v", ts, got)
	}
	if got.Location() != time.UTC {
		t.Errorf("decoded location = %v, want UTC", got.Location())
	}
}

func TestTimestamp_Malformed(t *testing.T) {
	w := NewWriter()
	w.WriteString("not a timestamp")
	if _, err := ReadTimestamp(NewReader(w.Bytes())); err == nil {
		t.Fatal("malformed timestamp should fail")
	}
}

func TestHTTPRequestRoundTrip(t *testing.T) {
	req := HTTPRequest{
		Method:  "POST",
		URL:     "https://example.com/api",
		Headers: map[string]string{"Content-Type": "application/json", "X-Trace": "abc"},
		Body:    []byte(`{"q":1}`),
	}

	w := NewWriter()
	WriteHTTPRequest(w, req)
	got, err := ReadHTTPRequest(NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("ReadHTTPRequest failed: %v", err)
	}
	if !reflect.DeepEqual(got, req) {
		t.Errorf("round trip %+v -> %+v", req, got)
	}
}

func TestHTTPResponseRoundTrip(t *testing.T) {
	resp := HTTPResponse{
		Status:  404,
		Headers: map[string]string{"Content-Length": "0"},
		Body:    []byte{},
	}

	w := NewWriter()
	WriteHTTPResponse(w, resp)
	got, err := ReadHTTPResponse(NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("ReadHTTPResponse failed: %v", err)
	}
	if got.Status != 404 || got.Headers["Content-Length"] != "0" {
		t.Errorf("round trip gave %+v", got)
	}
}

func TestHTTPRequest_MissingMethod(t *testing.T) {
	w := NewWriter()
	w.WriteMapHeader(1)
	w.WriteString("url")
	w.WriteString("https://example.com")

	if _, err := ReadHTTPRequest(NewReader(w.Bytes())); err == nil {
		t.Fatal("request without method should fail")
	}
}
