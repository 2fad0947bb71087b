package graph

import (
	"sort"

	"github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/protocol"
	"github.com/sagudev/fp-bindgen/registry"
	"github.com/sagudev/fp-bindgen/types"
)

// primitiveKinds resolves the canonical primitive names.
var primitiveKinds = map[string]types.Kind{
	"bool":   types.KindBool,
	"u8":     types.KindU8,
	"s8":     types.KindS8,
	"u16":    types.KindU16,
	"s16":    types.KindS16,
	"u32":    types.KindU32,
	"s32":    types.KindS32,
	"u64":    types.KindU64,
	"s64":    types.KindS64,
	"f32":    types.KindF32,
	"f64":    types.KindF64,
	"string": types.KindString,
	"bytes":  types.KindBytes,
	"unit":   types.KindUnit,
}

// workItem is one ident awaiting resolution; owner names the declaration
// that referenced it, for error messages.
type workItem struct {
	ident types.TypeIdent
	owner string
}

type builder struct {
	proto *protocol.Protocol
	reg   *registry.Registry
	out   *Graph
	queue []workItem
}

// Build computes the reachable-type closure for every declared signature
// and returns the finished, immutable graph. Any shape the generator
// cannot classify fails the build with an error naming the offending
// declaration.
func Build(proto *protocol.Protocol, reg *registry.Registry) (*Graph, error) {
	b := &builder{
		proto: proto,
		reg:   reg,
		out: &Graph{
			nodes:     make(map[string]types.Type),
			externals: make(map[string]registry.Entry),
		},
	}

	funcs := proto.Functions()
	sort.SliceStable(funcs, func(i, j int) bool {
		if funcs[i].Direction != funcs[j].Direction {
			return funcs[i].Direction < funcs[j].Direction
		}
		return funcs[i].Name < funcs[j].Name
	})
	b.out.funcs = funcs

	// Seed the work-list with every ident a signature touches.
	for _, fn := range funcs {
		for _, param := range fn.Params {
			b.push(param.Type, fn.Name)
		}
		b.push(fn.Ret, fn.Name)
	}

	for len(b.queue) > 0 {
		item := b.queue[0]
		b.queue = b.queue[1:]
		if err := b.resolve(item); err != nil {
			return nil, err
		}
	}

	if err := checkEmbeddingCycles(b.out); err != nil {
		return nil, err
	}
	if err := checkMangledCollisions(b.out); err != nil {
		return nil, err
	}
	return b.out, nil
}

func (b *builder) push(ident types.TypeIdent, owner string) {
	b.queue = append(b.queue, workItem{ident: ident, owner: owner})
}

func (b *builder) add(node types.Type) {
	name := node.Name()
	if _, seen := b.out.nodes[name]; seen {
		return
	}
	b.out.nodes[name] = node
	for _, ref := range node.Refs() {
		b.push(ref, name)
	}
}

func (b *builder) resolve(item workItem) error {
	name := item.ident.String()
	if _, seen := b.out.nodes[name]; seen {
		return nil
	}

	// Built-in containers and generic instantiations.
	if item.ident.IsGeneric() {
		return b.resolveGeneric(item)
	}

	if kind, ok := primitiveKinds[item.ident.Name]; ok {
		b.add(types.Primitive(kind))
		return nil
	}

	// Well-known external types, gated by configuration flags.
	entry, ok, err := b.reg.Resolve(item.ident.Name)
	if err != nil {
		return err
	}
	if ok {
		node := types.External(entry.Ident)
		b.out.externals[node.Name()] = entry
		b.add(node)
		return nil
	}

	decl, ok := b.proto.LookupType(item.ident.Name)
	if !ok {
		return errors.Unresolved(item.owner, nil, item.ident.Name)
	}
	if len(decl.Params) > 0 {
		return errors.UnsupportedShape(errors.PhaseGraph, item.owner,
			"generic template "+item.ident.Name+" referenced without type arguments")
	}
	return b.addDecl(decl, item)
}

func (b *builder) addDecl(decl types.Type, item workItem) error {
	switch decl.Kind {
	case types.KindStruct, types.KindEnum, types.KindAlias:
		b.add(decl)
		return nil
	default:
		return errors.UnsupportedShape(errors.PhaseGraph, item.ident.Name,
			"declaration of kind "+decl.Kind.String()+" cannot be referenced directly")
	}
}

func (b *builder) resolveGeneric(item workItem) error {
	ident := item.ident
	arity := len(ident.Args)

	switch ident.Name {
	case "List":
		if arity != 1 {
			return b.arityErr(item, 1)
		}
		b.add(types.List(ident.Args[0]))
		return nil
	case "Map":
		if arity != 2 {
			return b.arityErr(item, 2)
		}
		b.add(types.MapOf(ident.Args[0], ident.Args[1]))
		return nil
	case "Option":
		if arity != 1 {
			return b.arityErr(item, 1)
		}
		b.add(types.Option(ident.Args[0]))
		return nil
	case "Result":
		if arity != 2 {
			return b.arityErr(item, 2)
		}
		b.add(types.ResultOf(ident.Args[0], ident.Args[1]))
		return nil
	case "Box":
		if arity != 1 {
			return b.arityErr(item, 1)
		}
		b.add(types.Indirect(ident.Args[0]))
		return nil
	}

	// A user-declared generic template: monomorphize this instantiation.
	template, ok := b.proto.LookupType(ident.Name)
	if !ok {
		return errors.Unresolved(item.owner, nil, ident.Name)
	}
	if len(template.Params) == 0 {
		return errors.UnsupportedShape(errors.PhaseGraph, item.owner,
			ident.Name+" is not generic but was given type arguments")
	}
	if len(template.Params) != arity {
		return errors.New(errors.PhaseGraph, errors.KindUnsupported).
			Decl(item.owner).
			Detail("%s expects %d type parameters, got %d", ident.Name, len(template.Params), arity).
			Build()
	}

	bindings := make(map[string]types.TypeIdent, arity)
	for i, param := range template.Params {
		bindings[param] = ident.Args[i]
	}

	mono := monomorphize(template, ident, bindings)
	b.add(mono)
	return nil
}

func (b *builder) arityErr(item workItem, want int) error {
	return errors.New(errors.PhaseGraph, errors.KindUnsupported).
		Decl(item.owner).
		Detail("%s expects %d type parameters, got %d", item.ident.Name, want, len(item.ident.Args)).
		Build()
}

// monomorphize substitutes bound parameters through a generic template,
// producing a concrete node distinct from the template itself.
func monomorphize(template types.Type, ident types.TypeIdent, bindings map[string]types.TypeIdent) types.Type {
	mono := types.Type{
		Kind:     types.KindMono,
		Ident:    ident,
		Elem:     &types.TypeIdent{Name: template.Ident.Name},
		Bindings: append([]types.TypeIdent(nil), ident.Args...),
		Doc:      template.Doc,
	}

	mono.Fields = substituteFields(template.Fields, bindings)
	for _, v := range template.Variants {
		sub := types.Variant{Name: v.Name, Kind: v.Kind, Doc: v.Doc}
		for _, p := range v.Tuple {
			sub.Tuple = append(sub.Tuple, substituteIdent(p, bindings))
		}
		sub.Fields = substituteFields(v.Fields, bindings)
		mono.Variants = append(mono.Variants, sub)
	}
	return mono
}

func substituteFields(fields []types.Field, bindings map[string]types.TypeIdent) []types.Field {
	if fields == nil {
		return nil
	}
	out := make([]types.Field, len(fields))
	for i, f := range fields {
		out[i] = f
		out[i].Type = substituteIdent(f.Type, bindings)
	}
	return out
}

func substituteIdent(ident types.TypeIdent, bindings map[string]types.TypeIdent) types.TypeIdent {
	if bound, ok := bindings[ident.Name]; ok && len(ident.Args) == 0 {
		return bound
	}
	if len(ident.Args) == 0 {
		return ident
	}
	out := types.TypeIdent{Name: ident.Name, Args: make([]types.TypeIdent, len(ident.Args))}
	for i, arg := range ident.Args {
		out.Args[i] = substituteIdent(arg, bindings)
	}
	return out
}

// checkMangledCollisions rejects two distinct nodes whose names collapse
// to the same flat identifier in generated output.
func checkMangledCollisions(g *Graph) error {
	seen := make(map[string]string, len(g.nodes))
	for _, node := range g.Nodes() {
		mangled := node.Ident.MangledName()
		if prev, ok := seen[mangled]; ok {
			return errors.New(errors.PhaseGraph, errors.KindNameCollision).
				Decl(node.Name()).
				Detail("generated name %q already used by %s", mangled, prev).
				Build()
		}
		seen[mangled] = node.Name()
	}
	return nil
}
