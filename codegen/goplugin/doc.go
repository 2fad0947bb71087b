// Package goplugin generates the plugin side of a protocol for TinyGo:
// the shared type declarations and codecs, typed wrappers with
// go:wasmimport stubs for every host import, and go:wasmexport entry
// points that dispatch to handler hooks the plugin author assigns.
//
// The generated file carries a `tinygo || wasm` build constraint; the
// portable pieces it relies on live in the guest shim package.
package goplugin
