//go:build tinygo || wasm

package guest

import (
	"unsafe"

	"github.com/sagudev/fp-bindgen/layout"
)

//go:wasmimport fp __fp_host_resolve_async
func hostResolveAsync(handle uint32, ref uint64)

//go:wasmimport fp __fp_cancel_async
func hostCancelAsync(handle uint32)

func resolveHost(handle uint32, ref uint64) {
	hostResolveAsync(handle, ref)
}

func cancelHost(handle uint32) {
	hostCancelAsync(handle)
}

// pinned keeps shared allocations reachable until the consumer frees
// them; the key is the allocation's linear-memory address.
var pinned = make(map[uint32][]byte)

func share(data []byte) layout.PackedRef {
	if len(data) == 0 {
		return 0
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	pinned[ptr] = buf
	return layout.Pack(ptr, uint32(len(buf)))
}

func take(ref layout.PackedRef) []byte {
	if ref.IsZero() {
		return nil
	}
	view := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ref.Offset()))), ref.Length())
	out := make([]byte, len(view))
	copy(out, view)
	delete(pinned, ref.Offset())
	return out
}

//go:wasmexport __fp_abi_version
func fpABIVersion() uint32 {
	return layout.ABIVersion
}

//go:wasmexport __fp_malloc
func fpMalloc(size uint32) uint32 {
	if size == 0 {
		return 0
	}
	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	pinned[ptr] = buf
	return ptr
}

//go:wasmexport __fp_free
func fpFree(offset uint32, size uint32) {
	delete(pinned, offset)
}

//go:wasmexport __fp_guest_resolve_async
func fpGuestResolveAsync(handle uint32, ref uint64) {
	Resolve(handle, Take(layout.PackedRef(ref)))
}
