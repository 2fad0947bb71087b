// Package gosrc renders the Go source the host and plugin targets share:
// type declarations for graph nodes and the per-node codec functions that
// read and write the packed byte format.
//
// Both targets emit the same declarations and codecs; they differ only in
// the call glue around them. Everything here visits nodes in sorted order
// so output is deterministic.
//
// This package is internal to the code generators.
package gosrc
