// Package graph turns declared types and function signatures into the
// closed, deduplicated type graph that drives layout assignment and code
// generation.
//
// Construction is a work-list closure: every ident referenced by a
// signature is resolved, and each resolved struct or enum enqueues its
// field and variant payload types in turn. Only nodes reachable from a
// signature enter the graph; unreferenced declarations are dropped.
//
// Aliases resolve to their referent while keeping their own name for
// generated accessor code. Each concrete instantiation of a user-declared
// generic template becomes its own monomorphized node, distinct from the
// template. Self-reference is valid only through Box indirection edges;
// a physical embedding cycle fails the build.
//
// Build fails fast on any shape it cannot classify (unresolved forward
// references, wrong generic arity, or a declaration kind that cannot be
// referenced) with an error naming the offending declaration.
package graph
