package types

import (
	"fmt"
	"strings"
)

// Type is one node in the type graph. Kind selects which of the
// kind-specific fields are meaningful; everything else is zero.
// Nodes are values and are never mutated after construction.
type Type struct {
	Kind  Kind
	Ident TypeIdent

	// Elem is the element for List/Option/Indirect, the referent for
	// Alias, and the template ident for Mono.
	Elem *TypeIdent
	// Key and Value describe Map nodes.
	Key   *TypeIdent
	Value *TypeIdent
	// Ok and Err describe Result nodes.
	Ok  *TypeIdent
	Err *TypeIdent

	Fields   []Field
	Variants []Variant

	// Params are the unbound parameter names of a generic template.
	Params []string
	// Bindings map template parameters to concrete idents on Mono nodes,
	// in template parameter order.
	Bindings []TypeIdent

	Doc []string
}

// Field is a named struct or named-payload-variant member.
type Field struct {
	Name    string
	Type    TypeIdent
	Default string // optional literal, rendered verbatim by generators
	Doc     []string
}

// VariantKind distinguishes the three enum payload shapes.
type VariantKind uint8

const (
	VariantUnit VariantKind = iota
	VariantTuple
	VariantNamed
)

func (vk VariantKind) String() string {
	switch vk {
	case VariantUnit:
		return "unit"
	case VariantTuple:
		return "tuple"
	case VariantNamed:
		return "named"
	}
	return "unknown"
}

// Variant is one enum case.
type Variant struct {
	Name   string
	Kind   VariantKind
	Tuple  []TypeIdent // VariantTuple payload, in order
	Fields []Field     // VariantNamed payload
	Doc    []string
}

// Primitive constructs a leaf node for a scalar, string, bytes or unit kind.
func Primitive(kind Kind) Type {
	return Type{Kind: kind, Ident: Ident(kind.String())}
}

// List constructs a sequence node.
func List(elem TypeIdent) Type {
	return Type{
		Kind:  KindList,
		Ident: IdentOf("List", elem),
		Elem:  &elem,
	}
}

// MapOf constructs a mapping node with unique keys and irrelevant order.
func MapOf(key, value TypeIdent) Type {
	return Type{
		Kind:  KindMap,
		Ident: IdentOf("Map", key, value),
		Key:   &key,
		Value: &value,
	}
}

// Option constructs an optional node.
func Option(elem TypeIdent) Type {
	return Type{
		Kind:  KindOption,
		Ident: IdentOf("Option", elem),
		Elem:  &elem,
	}
}

// ResultOf constructs a success/failure node.
func ResultOf(ok, errIdent TypeIdent) Type {
	return Type{
		Kind:  KindResult,
		Ident: IdentOf("Result", ok, errIdent),
		Ok:    &ok,
		Err:   &errIdent,
	}
}

// StructOf constructs a struct node with named fields.
func StructOf(ident TypeIdent, fields ...Field) Type {
	return Type{Kind: KindStruct, Ident: ident, Fields: fields}
}

// EnumOf constructs an enum node with ordered variants.
func EnumOf(ident TypeIdent, variants ...Variant) Type {
	return Type{Kind: KindEnum, Ident: ident, Variants: variants}
}

// AliasOf constructs a transparent rename of another node. The alias
// keeps its own name for generated accessor code.
func AliasOf(name string, referent TypeIdent) Type {
	return Type{Kind: KindAlias, Ident: Ident(name), Elem: &referent}
}

// Indirect constructs an indirection node. Self-referential structs must
// point at themselves through one of these, never by physical embedding.
func Indirect(referent TypeIdent) Type {
	return Type{
		Kind:  KindIndirect,
		Ident: IdentOf("Box", referent),
		Elem:  &referent,
	}
}

// GenericParam constructs a placeholder node for an unbound parameter.
func GenericParam(name string) Type {
	return Type{Kind: KindGenericParam, Ident: Ident(name)}
}

// External constructs a compatibility-registry passthrough node.
func External(ident TypeIdent) Type {
	return Type{Kind: KindExternal, Ident: ident}
}

// Name returns the stable rendered name of the node.
func (t Type) Name() string {
	return t.Ident.String()
}

// WithDoc returns a copy of the node with documentation attached.
func (t Type) WithDoc(lines ...string) Type {
	t.Doc = lines
	return t
}

// WithParams returns a copy of the node marked as a generic template.
func (t Type) WithParams(params ...string) Type {
	t.Params = params
	return t
}

// Fingerprint renders a structural summary of the node, used to detect
// two structurally different declarations colliding on one name.
// Nodes with equal fingerprints collapse to a single graph entry.
func (t Type) Fingerprint() string {
	var b strings.Builder
	t.fingerprint(&b)
	return b.String()
}

func (t Type) fingerprint(b *strings.Builder) {
	b.WriteString(t.Kind.String())
	switch t.Kind {
	case KindList, KindOption, KindAlias, KindIndirect:
		fmt.Fprintf(b, "(%s)", t.Elem)
	case KindMap:
		fmt.Fprintf(b, "(%s,%s)", t.Key, t.Value)
	case KindResult:
		fmt.Fprintf(b, "(%s,%s)", t.Ok, t.Err)
	case KindStruct:
		b.WriteByte('{')
		for _, f := range t.Fields {
			fmt.Fprintf(b, "%s:%s;", f.Name, f.Type)
		}
		b.WriteByte('}')
	case KindEnum:
		b.WriteByte('{')
		for _, v := range t.Variants {
			fmt.Fprintf(b, "%s/%s", v.Name, v.Kind)
			for _, p := range v.Tuple {
				fmt.Fprintf(b, ":%s", p)
			}
			for _, f := range v.Fields {
				fmt.Fprintf(b, ":%s=%s", f.Name, f.Type)
			}
			b.WriteByte(';')
		}
		b.WriteByte('}')
	case KindMono:
		fmt.Fprintf(b, "(%s", t.Elem)
		for _, arg := range t.Bindings {
			fmt.Fprintf(b, ",%s", arg)
		}
		b.WriteByte(')')
	case KindExternal, KindGenericParam:
		fmt.Fprintf(b, "(%s)", t.Ident.String())
	}
	if len(t.Params) > 0 {
		fmt.Fprintf(b, "<%s>", strings.Join(t.Params, ","))
	}
}

// Refs returns every ident the node references directly, in declaration
// order. Exhaustive over all kinds; primitives and placeholders return nil.
func (t Type) Refs() []TypeIdent {
	switch t.Kind {
	case KindList, KindOption, KindAlias, KindIndirect:
		return []TypeIdent{*t.Elem}
	case KindMap:
		return []TypeIdent{*t.Key, *t.Value}
	case KindResult:
		return []TypeIdent{*t.Ok, *t.Err}
	case KindStruct:
		refs := make([]TypeIdent, 0, len(t.Fields))
		for _, f := range t.Fields {
			refs = append(refs, f.Type)
		}
		return refs
	case KindEnum:
		var refs []TypeIdent
		for _, v := range t.Variants {
			refs = append(refs, v.Tuple...)
			for _, f := range v.Fields {
				refs = append(refs, f.Type)
			}
		}
		return refs
	case KindMono:
		refs := make([]TypeIdent, 0, len(t.Bindings)+1)
		refs = append(refs, *t.Elem)
		refs = append(refs, t.Bindings...)
		return refs
	default:
		return nil
	}
}
