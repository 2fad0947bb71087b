package gosrc

import (
	"fmt"

	"github.com/sagudev/fp-bindgen/codegen"
	"github.com/sagudev/fp-bindgen/types"
)

// EmitTypeDecls writes the Go declaration for every named node in the
// graph, in sorted node order. Structural nodes (lists, maps, options,
// boxes, primitives) and externals have no declaration of their own.
func EmitTypeDecls(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet) error {
	for _, node := range m.Graph.Nodes() {
		switch node.Kind {
		case types.KindStruct:
			if err := emitStructDecl(e, m, target, imports, TypeName(node.Ident), node.Doc, node.Fields); err != nil {
				return err
			}
		case types.KindEnum:
			if err := emitEnumDecl(e, m, target, imports, node); err != nil {
				return err
			}
		case types.KindMono:
			if len(node.Variants) > 0 {
				if err := emitEnumDecl(e, m, target, imports, node); err != nil {
					return err
				}
			} else {
				if err := emitStructDecl(e, m, target, imports, TypeName(node.Ident), node.Doc, node.Fields); err != nil {
					return err
				}
			}
		case types.KindResult:
			if err := emitResultDecl(e, m, target, imports, node); err != nil {
				return err
			}
		case types.KindAlias:
			referent, err := GoType(m, target, imports, *node.Elem)
			if err != nil {
				return err
			}
			e.Doc(node.Doc)
			e.Linef("type %s = %s", TypeName(node.Ident), referent)
			e.Blank()
		}
	}
	return nil
}

func emitStructDecl(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, name string, doc []string, fields []types.Field) error {
	e.Doc(doc)
	e.Linef("type %s struct {", name)
	e.In()
	for _, f := range fields {
		goType, err := GoType(m, target, imports, f.Type)
		if err != nil {
			return err
		}
		e.Doc(f.Doc)
		e.Linef("%s %s", codegen.PascalCase(f.Name), goType)
	}
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

// emitEnumDecl renders an enum as a struct carrying one pointer per
// variant, exactly one of which is set, plus one payload struct per
// variant.
func emitEnumDecl(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, node types.Type) error {
	name := TypeName(node.Ident)
	e.Doc(node.Doc)
	e.Linef("type %s struct {", name)
	e.In()
	for _, v := range node.Variants {
		e.Doc(v.Doc)
		e.Linef("%s *%s", codegen.PascalCase(v.Name), VariantTypeName(node.Ident, v.Name))
	}
	e.Out()
	e.Line("}")
	e.Blank()

	for _, v := range node.Variants {
		payload := VariantTypeName(node.Ident, v.Name)
		switch v.Kind {
		case types.VariantUnit:
			e.Linef("type %s struct{}", payload)
			e.Blank()
		case types.VariantTuple:
			e.Linef("type %s struct {", payload)
			e.In()
			for i, t := range v.Tuple {
				goType, err := GoType(m, target, imports, t)
				if err != nil {
					return err
				}
				e.Linef("%s %s", TupleField(i), goType)
			}
			e.Out()
			e.Line("}")
			e.Blank()
		case types.VariantNamed:
			if err := emitStructDecl(e, m, target, imports, payload, nil, v.Fields); err != nil {
				return err
			}
		}
	}
	return nil
}

// emitResultDecl renders a success/failure pair the same way enums are
// rendered, with the payload carried directly instead of in a struct.
func emitResultDecl(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, node types.Type) error {
	okType, err := GoType(m, target, imports, *node.Ok)
	if err != nil {
		return err
	}
	errType, err := GoType(m, target, imports, *node.Err)
	if err != nil {
		return err
	}
	e.Linef("type %s struct {", TypeName(node.Ident))
	e.In()
	e.Linef("Ok *%s", okType)
	e.Linef("Err *%s", errType)
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

// VariantTypeName names the payload struct generated for one enum variant.
func VariantTypeName(enum types.TypeIdent, variant string) string {
	return TypeName(enum) + codegen.PascalCase(variant)
}

// TupleField names the Nth member of a tuple payload.
func TupleField(i int) string {
	return fmt.Sprintf("F%d", i)
}
