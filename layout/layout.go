package layout

import (
	"sort"

	"github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/graph"
	"github.com/sagudev/fp-bindgen/types"
)

// Plan is the generator-assigned encoding strategy for one type node.
type Plan uint8

const (
	// PlanInline: the value is encoded directly into the shared buffer.
	PlanInline Plan = iota
	// PlanIndirect: the node is an indirection; its codec calls the
	// referent's codec by reference instead of inlining its expansion,
	// so generation terminates for recursive shapes.
	PlanIndirect
	// PlanPassthrough: encoding is delegated to the compatibility
	// registry's codec for this type.
	PlanPassthrough
)

func (p Plan) String() string {
	switch p {
	case PlanInline:
		return "inline"
	case PlanIndirect:
		return "indirect"
	case PlanPassthrough:
		return "passthrough"
	}
	return "unknown"
}

// Plans maps every reachable node name to its encoding plan. Plans are
// derived from the graph and recomputed deterministically; they carry no
// independent state.
type Plans struct {
	plans map[string]Plan
}

// Assign computes the encoding plan for every node in the graph.
func Assign(g *graph.Graph) (*Plans, error) {
	p := &Plans{plans: make(map[string]Plan, g.Len())}
	for _, node := range g.Nodes() {
		switch node.Kind {
		case types.KindExternal:
			p.plans[node.Name()] = PlanPassthrough
		case types.KindIndirect:
			p.plans[node.Name()] = PlanIndirect
		case types.KindGenericParam:
			// Placeholders must have been substituted away by the builder.
			return nil, errors.UnsupportedShape(errors.PhaseLayout, node.Name(),
				"unbound generic parameter survived graph construction")
		default:
			p.plans[node.Name()] = PlanInline
		}
	}
	return p, nil
}

// For returns the plan assigned to the named node.
func (p *Plans) For(name string) (Plan, bool) {
	plan, ok := p.plans[name]
	return plan, ok
}

// Names returns every planned node name in sorted order.
func (p *Plans) Names() []string {
	names := make([]string, 0, len(p.plans))
	for name := range p.plans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
