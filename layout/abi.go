package layout

// ABIVersion is the compatibility marker embedded in generated code on
// both sides. The plugin presents it through the VersionExport entry
// point; the host rejects the module at load time on any mismatch.
// Bump on every incompatible change to the wire format or the calling
// convention.
const ABIVersion uint32 = 1

// Entry point names shared by every generated module. The plugin exports
// the __fp-prefixed allocator pair plus one __fp_gen_ symbol per exported
// function; the host provides the mirror imports under HostModule.
const (
	// HostModule is the wasm import module name for host-provided
	// functions.
	HostModule = "fp"

	// AllocExport and FreeExport are the allocate/release pair each side
	// exposes to its counterpart.
	AllocExport = "__fp_malloc"
	FreeExport  = "__fp_free"

	// VersionExport returns ABIVersion; checked during the load handshake.
	VersionExport = "__fp_abi_version"

	// GenPrefix prefixes every generated function export.
	GenPrefix = "__fp_gen_"

	// HostResolveImport is the host entry point a plugin calls to deliver
	// an async result; GuestResolveExport is the plugin-side mirror.
	HostResolveImport  = "__fp_host_resolve_async"
	GuestResolveExport = "__fp_guest_resolve_async"

	// CancelImport advises the callee that a pending handle's result will
	// not be consumed. Cooperative and advisory only.
	CancelImport = "__fp_cancel_async"
)

// PackedRef combines a buffer's start offset and byte length in one
// uint64: offset in the high 32 bits, length in the low 32. It is the
// only value handed across the boundary for serialized data; the receiver
// copies the referenced bytes out and then owes exactly one release call.
type PackedRef uint64

// Pack builds a PackedRef from an offset and length in sandbox memory.
func Pack(offset, length uint32) PackedRef {
	return PackedRef(uint64(offset)<<32 | uint64(length))
}

// Offset returns the start offset of the referenced buffer.
func (r PackedRef) Offset() uint32 {
	return uint32(r >> 32)
}

// Length returns the byte length of the referenced buffer.
func (r PackedRef) Length() uint32 {
	return uint32(r)
}

// IsZero reports whether the reference is empty; generated code uses the
// zero reference for unit returns.
func (r PackedRef) IsZero() bool {
	return r == 0
}
