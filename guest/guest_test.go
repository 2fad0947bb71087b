package guest

import (
	"bytes"
	"testing"

	"github.com/sagudev/fp-bindgen/layout"
)

func TestShareTake_RoundTrip(t *testing.T) {
	data := []byte("payload bytes")
	ref := Share(data)
	if ref.IsZero() {
		t.Fatal("share returned a zero ref for non-empty data")
	}
	if ref.Length() != uint32(len(data)) {
		t.Errorf("ref length = %d, want %d", ref.Length(), len(data))
	}

	got := Take(ref)
	if !bytes.Equal(got, data) {
		t.Errorf("take returned %q, want %q", got, data)
	}
	// the allocation is released; a second take finds nothing
	if again := Take(ref); again != nil {
		t.Errorf("second take returned %q, want nil", again)
	}
}

func TestShareTake_Empty(t *testing.T) {
	if ref := Share(nil); !ref.IsZero() {
		t.Errorf("empty share = %v, want zero ref", ref)
	}
	if got := Take(0); got != nil {
		t.Errorf("zero-ref take = %q, want nil", got)
	}
}

func TestShare_DistinctRefs(t *testing.T) {
	a := Share([]byte("aa"))
	b := Share([]byte("bb"))
	if a.Offset() == b.Offset() {
		t.Error("two live allocations share an offset")
	}
	Take(a)
	Take(b)
}

func TestResolveHost_DeliversThroughTransport(t *testing.T) {
	var gotHandle uint32
	var gotPayload []byte
	SetTransport(func(handle uint32, ref uint64) {
		gotHandle = handle
		gotPayload = Take(layout.PackedRef(ref))
	}, nil)
	defer SetTransport(nil, nil)

	ResolveHost(7, []byte("done"))
	if gotHandle != 7 || string(gotPayload) != "done" {
		t.Errorf("transport saw handle=%d payload=%q", gotHandle, gotPayload)
	}
}

func TestCancelHost_NotifiesAndSilences(t *testing.T) {
	var cancelled []uint32
	SetTransport(nil, func(handle uint32) {
		cancelled = append(cancelled, handle)
	})
	defer SetTransport(nil, nil)

	ran := false
	h := Bridge().Mint(func([]byte) { ran = true })
	CancelHost(h)

	if len(cancelled) != 1 || cancelled[0] != uint32(h) {
		t.Errorf("host not notified, got %v", cancelled)
	}
	// a racing host completion is discarded silently
	Resolve(uint32(h), []byte("late"))
	if ran {
		t.Error("continuation ran after cancellation")
	}
}

func TestResolve_RoundTripThroughBridge(t *testing.T) {
	var got []byte
	h := Bridge().Mint(func(p []byte) { got = p })
	Resolve(uint32(h), []byte("value"))
	if string(got) != "value" {
		t.Errorf("continuation saw %q", got)
	}
}
