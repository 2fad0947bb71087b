// Package fpbindgen generates call bindings between a host application
// and its sandboxed WASM plugins.
//
// A protocol is declared once, as types and function signatures, and the
// generator emits matched source files for both sides of the boundary:
// the host bindings talk to the embedded runtime, the plugin bindings
// compile to WASM. Neither side is written by hand, so they cannot drift.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	fp-bindgen/          Root package with the one-call generation entry point
//	├── types/           Type idents, kinds and type graph nodes
//	├── protocol/        Protocol builder: declared types, functions, config
//	├── registry/        Compatibility registry for external passthrough types
//	├── graph/           Reachability closure, dedup, monomorphization
//	├── layout/          Encoding plans and the shared ABI constants
//	├── wire/            The self-describing binary value format
//	├── codegen/         Target registry, emitter and the output targets
//	├── bridge/          Async call handle registry (mint/resolve/cancel)
//	├── runtime/         wazero-backed host runtime the gohost output drives
//	├── guest/           Plugin-side shims the goplugin output drives
//	├── project/         On-disk protocol documents (YAML/JSON)
//	├── errors/          Structured error types for every pipeline phase
//	└── cmd/bindgen/     Command line: generate, inspect, schema
//
// # Quick Start
//
// Declare a protocol and generate both sides:
//
//	proto := protocol.New("example")
//	proto.MustRegister(types.StructOf(types.Ident("Point"),
//	    types.Field{Name: "x", Type: types.Ident("f64")},
//	    types.Field{Name: "y", Type: types.Ident("f64")},
//	))
//	proto.MustDeclare(protocol.Function{
//	    Name:      "translate",
//	    Params:    []protocol.Param{{Name: "p", Type: types.Ident("Point")}},
//	    Ret:       types.Ident("Point"),
//	    Direction: protocol.Export,
//	})
//
//	files, err := fpbindgen.Generate(proto, protocol.Config{
//	    Targets: []string{"gohost", "goplugin"},
//	})
//
// Or keep the protocol in a document and use the command line:
//
//	bindgen generate protocol.yaml -o ./bindings
//
// # Determinism
//
// Generation is a pure function of the declarations and configuration.
// The same input yields byte-identical output files, so generated sources
// can be committed and reviewed like any other code.
//
// # Boundary Model
//
// All data crosses the host/plugin boundary by copy, encoded in a
// self-describing binary format. Calls are matched by symbol name and
// guarded by an ABI version handshake at load time. Async calls travel
// with a caller-minted handle and resolve through a dedicated callback,
// at most once per handle.
package fpbindgen
