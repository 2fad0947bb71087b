// Package runtime hosts generated plugin modules over wazero.
//
// A Runtime owns one wazero instance and one plugin module. Generated
// host bindings define their import glue with DefineImport before Load;
// Load instantiates the shared "fp" host module (imports plus the async
// resolution and cancellation entry points), instantiates the plugin and
// performs the ABI-version handshake, failing fast on a mismatch.
//
// # Memory transfer
//
// All cross-boundary data moves by copy through packed references.
// ExportToGuest allocates guest memory with the plugin's exported
// allocator and writes into it; ownership of that allocation passes to
// the callee. ImportFromGuest copies data out and releases the guest
// allocation, which is the host's one release obligation.
//
// # Concurrency
//
// The produced protocol is single-threaded and cooperative: every entry
// into the plugin, including its allocator, is serialized on an internal
// lock. Asynchronous results may be delivered from any goroutine through
// ResolveGuest, which holds the lock across allocation and delivery.
// Host-import handlers run inside a guest call on the goroutine already
// holding the lock and therefore use the unlocked TakeArg and
// ShareResult accessors.
package runtime
