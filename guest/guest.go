package guest

import (
	"sync"

	"github.com/sagudev/fp-bindgen/bridge"
	"github.com/sagudev/fp-bindgen/layout"
)

var (
	bridgeMu sync.Mutex
	calls    = bridge.NewRegistry()
)

// Bridge returns the registry tracking plugin-initiated async calls.
func Bridge() *bridge.Registry {
	bridgeMu.Lock()
	defer bridgeMu.Unlock()
	return calls
}

// UseStrictCancellation swaps the bridge into strict mode, where a
// resolution arriving for a cancelled handle is surfaced instead of
// discarded. Generated plugin code calls this from init when the
// protocol was configured that way.
func UseStrictCancellation() {
	bridgeMu.Lock()
	defer bridgeMu.Unlock()
	calls = bridge.NewStrictRegistry()
}

// Resolve delivers a host resolution to the matching pending call. It is
// invoked by the resolution export; a handle violation means the two
// sides disagree about call state and aborts the plugin.
func Resolve(handle uint32, payload []byte) {
	if err := Bridge().Resolve(bridge.Handle(handle), payload); err != nil {
		Abort(err)
	}
}

// CancelHost abandons a plugin-initiated async call. The continuation
// will not run; the host is notified but may still race a completion,
// which is then discarded.
func CancelHost(h bridge.Handle) {
	Bridge().Cancel(h)
	cancelHost(uint32(h))
}

// ResolveHost delivers an async export's result to the host.
func ResolveHost(handle uint32, payload []byte) {
	resolveHost(handle, uint64(Share(payload)))
}

// Abort traps the plugin. Generated code calls it on errors that have no
// recovery path inside a single boundary call.
func Abort(err error) {
	panic(err)
}

// Share copies data into an allocation the host (or the boundary call
// mechanism) can reference, and returns its packed reference. Ownership
// passes to the consumer.
func Share(data []byte) layout.PackedRef {
	return share(data)
}

// Take claims the referenced allocation, releases it, and returns its
// contents.
func Take(ref layout.PackedRef) []byte {
	return take(ref)
}
