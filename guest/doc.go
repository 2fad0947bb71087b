// Package guest is the plugin-side runtime shim generated plugin code
// builds on: memory sharing across the boundary, the async call bridge,
// and the plugin's allocator and resolution entry points.
//
// The package has two faces. Under `tinygo || wasm` it exports the real
// boundary symbols (__fp_malloc, __fp_free, __fp_abi_version and the
// async resolution export) and moves data through linear memory. On
// every other platform a synthetic arena stands in, so the portable
// logic is testable on the host.
package guest
