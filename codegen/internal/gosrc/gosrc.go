package gosrc

import (
	"sort"
	"strings"

	"github.com/sagudev/fp-bindgen/codegen"
	"github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/types"
)

// ImportSet accumulates the import paths a generated file needs.
type ImportSet struct {
	paths map[string]struct{}
}

// NewImportSet returns an empty import set.
func NewImportSet() *ImportSet {
	return &ImportSet{paths: make(map[string]struct{})}
}

// Add records one import path.
func (s *ImportSet) Add(path string) {
	s.paths[path] = struct{}{}
}

// AddAll records several import paths.
func (s *ImportSet) AddAll(paths []string) {
	for _, p := range paths {
		s.Add(p)
	}
}

// Sorted returns the recorded paths with the standard library first, each
// group sorted.
func (s *ImportSet) Sorted() []string {
	var std, rest []string
	for p := range s.paths {
		if strings.Contains(strings.SplitN(p, "/", 2)[0], ".") {
			rest = append(rest, p)
		} else {
			std = append(std, p)
		}
	}
	sort.Strings(std)
	sort.Strings(rest)
	return append(std, rest...)
}

// stdGroupLen reports how many of the sorted paths are standard library.
func (s *ImportSet) stdGroupLen() int {
	n := 0
	for p := range s.paths {
		if !strings.Contains(strings.SplitN(p, "/", 2)[0], ".") {
			n++
		}
	}
	return n
}

// RenderFile assembles a complete generated source file: marker comment,
// package clause, import block and body.
func RenderFile(pkg string, imports *ImportSet, body []byte) []byte {
	return renderFile(pkg, "", imports, body)
}

// RenderFileWithConstraint is RenderFile with a build constraint line
// ahead of the package clause.
func RenderFileWithConstraint(pkg, constraint string, imports *ImportSet, body []byte) []byte {
	return renderFile(pkg, constraint, imports, body)
}

func renderFile(pkg, constraint string, imports *ImportSet, body []byte) []byte {
	e := codegen.NewEmitter()
	e.Line("// Code generated by fp-bindgen. DO NOT EDIT.")
	e.Blank()
	if constraint != "" {
		e.Linef("//go:build %s", constraint)
		e.Blank()
	}
	e.Linef("package %s", pkg)
	e.Blank()

	paths := imports.Sorted()
	if len(paths) == 1 {
		e.Linef("import %q", paths[0])
		e.Blank()
	} else if len(paths) > 1 {
		e.Line("import (")
		e.In()
		stdLen := imports.stdGroupLen()
		for i, p := range paths {
			if i == stdLen && stdLen > 0 {
				e.Blank()
			}
			e.Linef("%q", p)
		}
		e.Out()
		e.Line(")")
		e.Blank()
	}

	out := append([]byte(nil), e.Bytes()...)
	return append(out, body...)
}

// TypeName returns the exported Go identifier declared for a named node.
func TypeName(id types.TypeIdent) string {
	return codegen.PascalCase(id.MangledName())
}

// EncodeFunc and DecodeFunc name the codec functions generated for a node.
func EncodeFunc(id types.TypeIdent) string {
	return "encode" + TypeName(id)
}

func DecodeFunc(id types.TypeIdent) string {
	return "decode" + TypeName(id)
}

var primitiveGoNames = map[types.Kind]string{
	types.KindBool:   "bool",
	types.KindU8:     "uint8",
	types.KindS8:     "int8",
	types.KindU16:    "uint16",
	types.KindS16:    "int16",
	types.KindU32:    "uint32",
	types.KindS32:    "int32",
	types.KindU64:    "uint64",
	types.KindS64:    "int64",
	types.KindF32:    "float32",
	types.KindF64:    "float64",
	types.KindString: "string",
	types.KindBytes:  "[]byte",
	types.KindUnit:   "struct{}",
}

// GoType renders the Go type used for a graph ident in the given target,
// recording any imports an external mapping requires.
func GoType(m *codegen.Model, target string, imports *ImportSet, id types.TypeIdent) (string, error) {
	node, ok := m.Graph.Lookup(id.String())
	if !ok {
		return "", errors.InvalidInput(errors.PhaseGenerate, "ident not in graph: "+id.String())
	}
	switch node.Kind {
	case types.KindList:
		elem, err := GoType(m, target, imports, *node.Elem)
		if err != nil {
			return "", err
		}
		return "[]" + elem, nil
	case types.KindMap:
		key, err := GoType(m, target, imports, *node.Key)
		if err != nil {
			return "", err
		}
		val, err := GoType(m, target, imports, *node.Value)
		if err != nil {
			return "", err
		}
		return "map[" + key + "]" + val, nil
	case types.KindOption, types.KindIndirect:
		elem, err := GoType(m, target, imports, *node.Elem)
		if err != nil {
			return "", err
		}
		// Boxing is transparent: when the element is itself boxed the
		// pointer is already there, so Option<Box<T>> stays *T.
		if ElemBoxed(m, *node.Elem) {
			return elem, nil
		}
		return "*" + elem, nil
	case types.KindStruct, types.KindEnum, types.KindMono, types.KindResult, types.KindAlias:
		return TypeName(node.Ident), nil
	case types.KindExternal:
		mapping, err := m.Mapping(node.Ident.Name, target)
		if err != nil {
			return "", err
		}
		imports.AddAll(mapping.Imports)
		return mapping.TypeName, nil
	default:
		if name, ok := primitiveGoNames[node.Kind]; ok {
			return name, nil
		}
		return "", errors.UnsupportedShape(errors.PhaseGenerate, id.String(),
			"kind "+node.Kind.String()+" has no Go rendering")
	}
}

// ElemBoxed reports whether an ident resolves to a boxed node, whose Go
// rendering already carries the pointer.
func ElemBoxed(m *codegen.Model, id types.TypeIdent) bool {
	node, ok := m.Graph.Lookup(id.String())
	return ok && node.Kind == types.KindIndirect
}

// EncodeRef and DecodeRef resolve the codec call target for an ident:
// the generated per-node function, or the registry-supplied routine for
// external types.
func EncodeRef(m *codegen.Model, target string, imports *ImportSet, id types.TypeIdent) (string, error) {
	return codecRef(m, target, imports, id, true)
}

func DecodeRef(m *codegen.Model, target string, imports *ImportSet, id types.TypeIdent) (string, error) {
	return codecRef(m, target, imports, id, false)
}

func codecRef(m *codegen.Model, target string, imports *ImportSet, id types.TypeIdent, encode bool) (string, error) {
	node, ok := m.Graph.Lookup(id.String())
	if !ok {
		return "", errors.InvalidInput(errors.PhaseGenerate, "ident not in graph: "+id.String())
	}
	if node.Kind == types.KindExternal {
		mapping, err := m.Mapping(node.Ident.Name, target)
		if err != nil {
			return "", err
		}
		imports.AddAll(mapping.Imports)
		if encode {
			return mapping.EncodeFn, nil
		}
		return mapping.DecodeFn, nil
	}
	if encode {
		return EncodeFunc(node.Ident), nil
	}
	return DecodeFunc(node.Ident), nil
}
