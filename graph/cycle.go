package graph

import (
	"github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/types"
)

// checkEmbeddingCycles verifies the graph is acyclic once indirection
// edges are excluded. A struct physically embedding itself (directly or
// through aliases and containers) has no finite encoding; such shapes are
// legal only behind a Box edge.
func checkEmbeddingCycles(g *Graph) error {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(g.nodes))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case inStack:
			return errors.UnsupportedShape(errors.PhaseGraph, name,
				"type embeds itself without indirection; wrap the self-reference in Box")
		case done:
			return nil
		}
		state[name] = inStack
		node, ok := g.nodes[name]
		if ok && node.Kind != types.KindIndirect {
			for _, ref := range node.Refs() {
				if err := visit(ref.String()); err != nil {
					return err
				}
			}
		}
		state[name] = done
		return nil
	}

	for _, node := range g.Nodes() {
		if err := visit(node.Name()); err != nil {
			return err
		}
	}
	return nil
}
