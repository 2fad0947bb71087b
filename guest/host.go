//go:build !tinygo && !wasm

package guest

import (
	"sync"

	"github.com/sagudev/fp-bindgen/layout"
)

// Outside a wasm build a synthetic arena stands in for linear memory and
// the host transport is a pair of swappable hooks, so the portable logic
// runs under ordinary tests.

var (
	arenaMu sync.Mutex
	arena   = make(map[uint32][]byte)
	next    uint32 = 16

	resolveHostHook func(handle uint32, ref uint64)
	cancelHostHook  func(handle uint32)
)

// SetTransport installs test doubles for the two host-bound entry
// points. Passing nil restores the default, which drops the call.
func SetTransport(resolve func(handle uint32, ref uint64), cancel func(handle uint32)) {
	resolveHostHook = resolve
	cancelHostHook = cancel
}

func resolveHost(handle uint32, ref uint64) {
	if resolveHostHook != nil {
		resolveHostHook(handle, ref)
	}
}

func cancelHost(handle uint32) {
	if cancelHostHook != nil {
		cancelHostHook(handle)
	}
}

func share(data []byte) layout.PackedRef {
	if len(data) == 0 {
		return 0
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	arenaMu.Lock()
	defer arenaMu.Unlock()
	offset := next
	next += uint32(len(buf))
	arena[offset] = buf
	return layout.Pack(offset, uint32(len(buf)))
}

func take(ref layout.PackedRef) []byte {
	if ref.IsZero() {
		return nil
	}
	arenaMu.Lock()
	defer arenaMu.Unlock()
	buf := arena[ref.Offset()]
	delete(arena, ref.Offset())
	return buf
}
