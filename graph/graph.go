package graph

import (
	"sort"

	"github.com/sagudev/fp-bindgen/protocol"
	"github.com/sagudev/fp-bindgen/registry"
	"github.com/sagudev/fp-bindgen/types"
)

// Graph is the closed, deduplicated set of type nodes reachable from the
// declared function signatures, plus those signatures. It is built once
// per generation invocation and never mutated afterwards.
type Graph struct {
	nodes     map[string]types.Type
	externals map[string]registry.Entry
	funcs     []protocol.Function
}

// Lookup returns the node registered under the rendered ident name.
func (g *Graph) Lookup(name string) (types.Type, bool) {
	t, ok := g.nodes[name]
	return t, ok
}

// Nodes returns every reachable node sorted by name. The order is the
// iteration order every generator uses, which keeps output deterministic.
func (g *Graph) Nodes() []types.Type {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]types.Type, 0, len(names))
	for _, name := range names {
		out = append(out, g.nodes[name])
	}
	return out
}

// Len returns the number of reachable nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// External returns the compatibility-registry entry backing an External
// node.
func (g *Graph) External(name string) (registry.Entry, bool) {
	e, ok := g.externals[name]
	return e, ok
}

// Functions returns all signatures sorted by direction then name.
func (g *Graph) Functions() []protocol.Function {
	out := make([]protocol.Function, len(g.funcs))
	copy(out, g.funcs)
	return out
}

// Imports returns the plugin-imports-from-host signatures, sorted by name.
func (g *Graph) Imports() []protocol.Function {
	return g.byDirection(protocol.Import)
}

// Exports returns the plugin-exports-to-host signatures, sorted by name.
func (g *Graph) Exports() []protocol.Function {
	return g.byDirection(protocol.Export)
}

func (g *Graph) byDirection(d protocol.Direction) []protocol.Function {
	var out []protocol.Function
	for _, fn := range g.funcs {
		if fn.Direction == d {
			out = append(out, fn)
		}
	}
	return out
}
