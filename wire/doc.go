// Package wire implements the self-describing binary encoding shared by
// generated host and plugin code.
//
// # Format
//
// Every encoded value begins with a tag byte:
//
//	Tag         Payload
//	─────────────────────────────────────────────
//	nil         none
//	false/true  none
//	u8..s64     fixed-width little-endian integer
//	f32/f64     IEEE 754 binary32/binary64
//	string      u32 length + UTF-8 bytes
//	binary      u32 length + raw bytes
//	sequence    u32 count + count encoded values
//	mapping     u32 pair count + alternating key/value
//
// Structs encode as mappings keyed by field name. Enums encode as a
// one-entry mapping keyed by variant name, with unit variants carrying a
// nil payload. Optionals encode the payload directly when present and nil
// when absent.
//
// The format carries no version marker of its own; both sides are
// generated from the same model and agree on layout.ABIVersion before any
// value is exchanged.
//
// # Ownership
//
// Decoding copies strings and blobs out of the input buffer, so a caller
// that received a packed reference may discharge its release obligation
// as soon as ReadX returns.
package wire
