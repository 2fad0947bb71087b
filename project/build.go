package project

import (
	"github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/protocol"
	"github.com/sagudev/fp-bindgen/types"
)

// Build converts the document into a protocol builder and the matching
// generation config. Reference strings are parsed here; whether they
// resolve to declared or built-in types is decided later by graph
// construction.
func (d *Document) Build() (*protocol.Protocol, protocol.Config, error) {
	proto := protocol.New(d.Name)
	for _, decl := range d.Types {
		node, err := decl.build()
		if err != nil {
			return nil, protocol.Config{}, err
		}
		if err := proto.RegisterType(node); err != nil {
			return nil, protocol.Config{}, err
		}
	}
	for _, fn := range d.Functions {
		sig, err := fn.build()
		if err != nil {
			return nil, protocol.Config{}, err
		}
		if err := proto.Declare(sig); err != nil {
			return nil, protocol.Config{}, err
		}
	}
	cfg := protocol.Config{
		ModuleName:         d.Module,
		Targets:            d.Targets,
		Features:           d.Features,
		HostImportPath:     d.HostImportPath,
		StrictCancellation: d.StrictCancellation,
	}
	return proto, cfg, nil
}

func (td TypeDecl) build() (types.Type, error) {
	switch td.Kind {
	case "struct":
		if len(td.Variants) > 0 {
			return types.Type{}, declErr(td.Name, "struct declaration carries variants")
		}
		fields, err := buildFields(td.Name, td.Fields)
		if err != nil {
			return types.Type{}, err
		}
		node := types.StructOf(types.Ident(td.Name), fields...)
		if len(td.Params) > 0 {
			node = node.WithParams(td.Params...)
		}
		return node.WithDoc(td.Doc...), nil
	case "enum":
		if len(td.Fields) > 0 {
			return types.Type{}, declErr(td.Name, "enum declaration carries top-level fields")
		}
		if len(td.Variants) == 0 {
			return types.Type{}, declErr(td.Name, "enum declaration has no variants")
		}
		variants := make([]types.Variant, 0, len(td.Variants))
		for _, vd := range td.Variants {
			v, err := vd.build(td.Name)
			if err != nil {
				return types.Type{}, err
			}
			variants = append(variants, v)
		}
		node := types.EnumOf(types.Ident(td.Name), variants...)
		if len(td.Params) > 0 {
			node = node.WithParams(td.Params...)
		}
		return node.WithDoc(td.Doc...), nil
	case "alias":
		referent, err := parseRef(td.Name, td.Of)
		if err != nil {
			return types.Type{}, err
		}
		return types.AliasOf(td.Name, referent).WithDoc(td.Doc...), nil
	}
	return types.Type{}, declErr(td.Name, "unknown type kind %q", td.Kind)
}

func (vd VariantDecl) build(enumName string) (types.Variant, error) {
	if len(vd.Tuple) > 0 && len(vd.Fields) > 0 {
		return types.Variant{}, declErr(enumName,
			"variant %q mixes tuple and named payloads", vd.Name)
	}
	v := types.Variant{Name: vd.Name, Doc: vd.Doc}
	switch {
	case len(vd.Tuple) > 0:
		v.Kind = types.VariantTuple
		for _, ref := range vd.Tuple {
			ident, err := parseRef(enumName, ref)
			if err != nil {
				return types.Variant{}, err
			}
			v.Tuple = append(v.Tuple, ident)
		}
	case len(vd.Fields) > 0:
		v.Kind = types.VariantNamed
		fields, err := buildFields(enumName, vd.Fields)
		if err != nil {
			return types.Variant{}, err
		}
		v.Fields = fields
	default:
		v.Kind = types.VariantUnit
	}
	return v, nil
}

func (fd FunctionDecl) build() (protocol.Function, error) {
	fn := protocol.Function{
		Name:  fd.Name,
		Async: fd.Async,
		Doc:   fd.Doc,
	}
	if fd.Direction == "export" {
		fn.Direction = protocol.Export
	}
	for _, p := range fd.Params {
		ident, err := parseRef(fd.Name, p.Type)
		if err != nil {
			return protocol.Function{}, err
		}
		fn.Params = append(fn.Params, protocol.Param{Name: p.Name, Type: ident})
	}
	if fd.Returns != "" {
		ident, err := parseRef(fd.Name, fd.Returns)
		if err != nil {
			return protocol.Function{}, err
		}
		fn.Ret = ident
	}
	return fn, nil
}

func buildFields(decl string, decls []FieldDecl) ([]types.Field, error) {
	fields := make([]types.Field, 0, len(decls))
	for _, fd := range decls {
		ident, err := parseRef(decl, fd.Type)
		if err != nil {
			return nil, err
		}
		fields = append(fields, types.Field{
			Name:    fd.Name,
			Type:    ident,
			Default: fd.Default,
			Doc:     fd.Doc,
		})
	}
	return fields, nil
}

func parseRef(decl, ref string) (types.TypeIdent, error) {
	ident, ok := types.ParseIdent(ref)
	if !ok {
		return types.TypeIdent{}, declErr(decl, "malformed type reference %q", ref)
	}
	return ident, nil
}

func declErr(decl, format string, args ...any) *errors.Error {
	return errors.New(errors.PhaseRegister, errors.KindInvalidInput).
		Decl(decl).
		Detail(format, args...).
		Build()
}
