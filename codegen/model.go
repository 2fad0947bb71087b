package codegen

import (
	"go.uber.org/zap"

	"github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/graph"
	"github.com/sagudev/fp-bindgen/layout"
	"github.com/sagudev/fp-bindgen/protocol"
	"github.com/sagudev/fp-bindgen/registry"
)

// Model is everything a target needs to generate output: the reachable
// type graph, the encoding plan per node, the declared functions and the
// invocation configuration. It is assembled once and read-only afterward.
type Model struct {
	Proto    *protocol.Protocol
	Config   protocol.Config
	Graph    *graph.Graph
	Plans    *layout.Plans
	Registry *registry.Registry
}

// NewModel resolves the protocol into a generation model. Resolution runs
// the whole front half of the pipeline: feature registry, graph closure
// and plan assignment. Any failure there aborts before generation starts.
func NewModel(proto *protocol.Protocol, cfg protocol.Config) (*Model, error) {
	reg, err := registry.FromFeatures(cfg.Features)
	if err != nil {
		return nil, err
	}
	g, err := graph.Build(proto, reg)
	if err != nil {
		return nil, err
	}
	plans, err := layout.Assign(g)
	if err != nil {
		return nil, err
	}
	if cfg.ModuleName == "" {
		cfg.ModuleName = proto.Name()
	}
	if cfg.HostImportPath == "" {
		cfg.HostImportPath = "github.com/sagudev/fp-bindgen"
	}

	Logger().Debug("model assembled",
		zap.String("module", cfg.ModuleName),
		zap.Int("nodes", g.Len()),
		zap.Int("functions", len(g.Functions())))

	return &Model{
		Proto:    proto,
		Config:   cfg,
		Graph:    g,
		Plans:    plans,
		Registry: reg,
	}, nil
}

// Mapping returns the encoding recipe of an external node for one target.
// A reachable external with no recipe for a requested target is fatal.
func (m *Model) Mapping(typeName, target string) (registry.TargetMapping, error) {
	entry, ok := m.Graph.External(typeName)
	if !ok {
		return registry.TargetMapping{}, errors.InvalidInput(errors.PhaseGenerate,
			"no external entry for type "+typeName)
	}
	mapping, ok := entry.Targets[target]
	if !ok {
		return registry.TargetMapping{}, errors.NoTargetMapping(typeName, target)
	}
	return mapping, nil
}
