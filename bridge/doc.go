// Package bridge implements the handle/continuation protocol for calls
// that cannot resolve synchronously.
//
// The sandboxed side of the boundary cannot suspend a call mid-flight, so
// an async invocation returns a freshly minted handle immediately and the
// final value travels later through a fixed resolution entry point. The
// Registry tracks every Pending handle and delivers each payload to its
// continuation exactly once, strictly after the initiating call returned.
//
// Cancellation is cooperative and advisory: the callee may still complete
// and deliver a result for a cancelled handle. By default such late
// resolutions are discarded; a strict registry surfaces them until the
// caller acknowledges the cancellation. Resolving a handle neither side
// knows about is treated as a fatal ABI-consistency violation, since both
// sides are generated from the same model.
package bridge
