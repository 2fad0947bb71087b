// Package errors provides structured error types for the bindings generator
// and the runtime shims its generated output depends on.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the offending declaration,
// a field path, the output target, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseGraph, errors.KindUnresolved).
//		Decl("Payload").
//		Path("items", "inner").
//		Detail("no declaration named %q", "Inner").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unresolved("Payload", path, "Inner")
//	err := errors.Truncated(errors.PhaseDecode, path, 4, 1)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
