// Package types defines the type node model shared by every stage of the
// bindings generator.
//
// A Type is one node of the eventual type graph: a primitive, a container
// (list, map, option, result), a named struct or enum, an alias, a generic
// template or its monomorphized instantiation, an indirection (Box) node,
// or a compatibility-registry passthrough.
//
// Kind is a closed enum; every component that walks nodes switches over it
// exhaustively. Nodes are immutable values identified by the canonical
// rendering of their TypeIdent ("Map<String, List<Point>>"), which is the
// deduplication key used by the graph builder.
//
// Recursive types never embed themselves physically. A struct referring to
// itself must do so through an Indirect node, so any traversal of the model
// terminates without cycle tracking.
package types
