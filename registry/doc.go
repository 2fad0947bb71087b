// Package registry maps declared type names to well-known external types
// with fixed encoding recipes: binary blobs, timestamps, HTTP-like
// request/response shapes, and dynamic values.
//
// Each entry is gated by a feature Flag. When a declared type matches an
// entry whose flag is disabled, resolution fails with a configuration
// error instead of falling back to structural expansion. An external type
// is either handled by its codec in full or not at all.
//
// The registry is pluggable: providers may Register additional entries,
// each contributing per-target type identifiers and codec routine names.
package registry
