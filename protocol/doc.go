// Package protocol holds the registration API for one generation run: a
// builder that accumulates type declarations and function signatures, plus
// the generation Config.
//
// Function signatures are tagged with a Direction (import or export,
// relative to the plugin) and a synchrony flag. Only types transitively
// reachable from declared signatures enter the generated output; dead
// declarations are silently dropped by the graph builder.
package protocol
