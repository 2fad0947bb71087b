// Package gohost generates the host side of a protocol: Go type
// declarations, the shared codecs, a typed wrapper over the wazero-based
// runtime shim for every plugin export, and host-function glue for every
// plugin import.
//
// The generated file is self-contained apart from the runtime shim and
// wire packages it imports; the embedding application implements the
// Imports interface and binds it before loading a plugin.
package gohost
