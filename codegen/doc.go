// Package codegen turns a resolved type graph into target-language source
// files.
//
// A Model is assembled once from a protocol and its configuration: the
// reachable type graph, the encoding plan for every node, and the declared
// functions. Targets are read-only consumers of the model; they never
// mutate it, so one model can feed several targets.
//
// # Responsibilities
//
//   - Assemble the generation model (graph, plans, functions, config)
//   - Dispatch to registered targets and collect their output files
//   - Provide the shared emitter and identifier-casing helpers targets use
//
// Generation is deterministic: targets visit nodes and functions in sorted
// order, and two runs over the same model produce byte-identical files.
// A model that cannot be generated for a requested target fails before any
// file is produced.
package codegen
