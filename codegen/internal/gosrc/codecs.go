package gosrc

import (
	"github.com/sagudev/fp-bindgen/codegen"
	"github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/types"
)

var writerSuffix = map[types.Kind]string{
	types.KindBool:   "Bool",
	types.KindU8:     "U8",
	types.KindS8:     "S8",
	types.KindU16:    "U16",
	types.KindS16:    "S16",
	types.KindU32:    "U32",
	types.KindS32:    "S32",
	types.KindU64:    "U64",
	types.KindS64:    "S64",
	types.KindF32:    "F32",
	types.KindF64:    "F64",
	types.KindString: "String",
	types.KindBytes:  "Bytes",
}

// EmitCodecs writes one encode and one decode function per graph node, in
// sorted node order. Externals get no function of their own; references
// to them resolve to the registry-supplied routines instead.
func EmitCodecs(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet) error {
	imports.Add(m.Config.HostImportPath + "/wire")
	for _, node := range m.Graph.Nodes() {
		var err error
		switch node.Kind {
		case types.KindUnit:
			emitUnitCodec(e, node)
		case types.KindList:
			err = emitListCodec(e, m, target, imports, node)
		case types.KindMap:
			err = emitMapCodec(e, m, target, imports, node)
		case types.KindOption:
			err = emitOptionCodec(e, m, target, imports, node)
		case types.KindIndirect:
			err = emitIndirectCodec(e, m, target, imports, node)
		case types.KindStruct:
			err = emitStructCodec(e, m, target, imports, TypeName(node.Ident), node.Ident.String(), node.Fields)
		case types.KindEnum:
			err = emitEnumCodec(e, m, target, imports, node.Ident, node.Variants)
		case types.KindMono:
			if len(node.Variants) > 0 {
				err = emitEnumCodec(e, m, target, imports, node.Ident, node.Variants)
			} else {
				err = emitStructCodec(e, m, target, imports, TypeName(node.Ident), node.Ident.String(), node.Fields)
			}
		case types.KindResult:
			err = emitResultCodec(e, m, target, imports, node)
		case types.KindAlias:
			err = emitAliasCodec(e, m, target, imports, node)
		case types.KindExternal:
			// codec supplied by the compatibility registry
		default:
			if _, ok := writerSuffix[node.Kind]; ok {
				emitScalarCodec(e, node)
			} else {
				err = errors.UnsupportedShape(errors.PhaseGenerate, node.Name(),
					"kind "+node.Kind.String()+" has no codec rendering")
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func emitScalarCodec(e *codegen.Emitter, node types.Type) {
	name := TypeName(node.Ident)
	suffix := writerSuffix[node.Kind]
	goType := primitiveGoNames[node.Kind]

	e.Linef("func encode%s(w *wire.Writer, v %s) error {", name, goType)
	e.In()
	e.Linef("w.Write%s(v)", suffix)
	e.Line("return nil")
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (%s, error) {", name, goType)
	e.In()
	e.Linef("return r.Read%s()", suffix)
	e.Out()
	e.Line("}")
	e.Blank()
}

func emitUnitCodec(e *codegen.Emitter, node types.Type) {
	name := TypeName(node.Ident)
	e.Linef("func encode%s(w *wire.Writer, v struct{}) error {", name)
	e.In()
	e.Line("w.WriteNil()")
	e.Line("return nil")
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (struct{}, error) {", name)
	e.In()
	e.Line("return struct{}{}, r.ReadNil()")
	e.Out()
	e.Line("}")
	e.Blank()
}

func emitListCodec(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, node types.Type) error {
	name := TypeName(node.Ident)
	goType, err := GoType(m, target, imports, node.Ident)
	if err != nil {
		return err
	}
	enc, err := EncodeRef(m, target, imports, *node.Elem)
	if err != nil {
		return err
	}
	dec, err := DecodeRef(m, target, imports, *node.Elem)
	if err != nil {
		return err
	}
	elemType, err := GoType(m, target, imports, *node.Elem)
	if err != nil {
		return err
	}

	e.Linef("func encode%s(w *wire.Writer, v %s) error {", name, goType)
	e.In()
	e.Line("w.WriteSeqHeader(len(v))")
	e.Line("for _, item := range v {")
	e.In()
	e.Linef("if err := %s(w, item); err != nil {", enc)
	e.In()
	e.Line("return err")
	e.Out()
	e.Line("}")
	e.Out()
	e.Line("}")
	e.Line("return nil")
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (%s, error) {", name, goType)
	e.In()
	e.Line("n, err := r.ReadSeqHeader()")
	e.Line("if err != nil {")
	e.In()
	e.Line("return nil, err")
	e.Out()
	e.Line("}")
	e.Linef("out := make([]%s, 0, n)", elemType)
	e.Line("for i := 0; i < n; i++ {")
	e.In()
	e.Linef("item, err := %s(r)", dec)
	e.Line("if err != nil {")
	e.In()
	e.Line("return nil, err")
	e.Out()
	e.Line("}")
	e.Line("out = append(out, item)")
	e.Out()
	e.Line("}")
	e.Line("return out, nil")
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

func emitMapCodec(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, node types.Type) error {
	keyNode, _ := m.Graph.Lookup(node.Key.String())
	keyLess, ok := keyComparator(keyNode.Kind)
	if !ok {
		return errors.UnsupportedShape(errors.PhaseGenerate, node.Name(),
			"map keys must be scalar or string, got "+keyNode.Kind.String())
	}
	imports.Add("sort")

	name := TypeName(node.Ident)
	goType, err := GoType(m, target, imports, node.Ident)
	if err != nil {
		return err
	}
	keyType, err := GoType(m, target, imports, *node.Key)
	if err != nil {
		return err
	}
	encKey, err := EncodeRef(m, target, imports, *node.Key)
	if err != nil {
		return err
	}
	decKey, err := DecodeRef(m, target, imports, *node.Key)
	if err != nil {
		return err
	}
	encVal, err := EncodeRef(m, target, imports, *node.Value)
	if err != nil {
		return err
	}
	decVal, err := DecodeRef(m, target, imports, *node.Value)
	if err != nil {
		return err
	}

	e.Linef("func encode%s(w *wire.Writer, v %s) error {", name, goType)
	e.In()
	// entries are written in sorted key order so encoding is deterministic
	e.Linef("keys := make([]%s, 0, len(v))", keyType)
	e.Line("for k := range v {")
	e.In()
	e.Line("keys = append(keys, k)")
	e.Out()
	e.Line("}")
	e.Linef("sort.Slice(keys, func(i, j int) bool { return %s })", keyLess)
	e.Line("w.WriteMapHeader(len(v))")
	e.Line("for _, k := range keys {")
	e.In()
	e.Linef("if err := %s(w, k); err != nil {", encKey)
	e.In()
	e.Line("return err")
	e.Out()
	e.Line("}")
	e.Linef("if err := %s(w, v[k]); err != nil {", encVal)
	e.In()
	e.Line("return err")
	e.Out()
	e.Line("}")
	e.Out()
	e.Line("}")
	e.Line("return nil")
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (%s, error) {", name, goType)
	e.In()
	e.Line("n, err := r.ReadMapHeader()")
	e.Line("if err != nil {")
	e.In()
	e.Line("return nil, err")
	e.Out()
	e.Line("}")
	e.Linef("out := make(%s, n)", goType)
	e.Line("for i := 0; i < n; i++ {")
	e.In()
	e.Linef("k, err := %s(r)", decKey)
	e.Line("if err != nil {")
	e.In()
	e.Line("return nil, err")
	e.Out()
	e.Line("}")
	e.Linef("val, err := %s(r)", decVal)
	e.Line("if err != nil {")
	e.In()
	e.Line("return nil, err")
	e.Out()
	e.Line("}")
	e.Line("out[k] = val")
	e.Out()
	e.Line("}")
	e.Line("return out, nil")
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

func keyComparator(kind types.Kind) (string, bool) {
	switch {
	case kind == types.KindBool:
		return "!keys[i] && keys[j]", true
	case kind == types.KindString || kind.IsScalar():
		return "keys[i] < keys[j]", true
	}
	return "", false
}

func emitOptionCodec(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, node types.Type) error {
	name := TypeName(node.Ident)
	goType, err := GoType(m, target, imports, node.Ident)
	if err != nil {
		return err
	}
	enc, err := EncodeRef(m, target, imports, *node.Elem)
	if err != nil {
		return err
	}
	dec, err := DecodeRef(m, target, imports, *node.Elem)
	if err != nil {
		return err
	}

	// A boxed element contributes no pointer of its own: the option
	// value is passed straight through to the element codec.
	boxed := ElemBoxed(m, *node.Elem)

	e.Linef("func encode%s(w *wire.Writer, v %s) error {", name, goType)
	e.In()
	e.Line("if v == nil {")
	e.In()
	e.Line("w.WriteNil()")
	e.Line("return nil")
	e.Out()
	e.Line("}")
	if boxed {
		e.Linef("return %s(w, v)", enc)
	} else {
		e.Linef("return %s(w, *v)", enc)
	}
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (%s, error) {", name, goType)
	e.In()
	e.Line("if r.IsNil() {")
	e.In()
	e.Line("if err := r.ReadNil(); err != nil {")
	e.In()
	e.Line("return nil, err")
	e.Out()
	e.Line("}")
	e.Line("return nil, nil")
	e.Out()
	e.Line("}")
	if boxed {
		e.Linef("return %s(r)", dec)
	} else {
		e.Linef("v, err := %s(r)", dec)
		e.Line("if err != nil {")
		e.In()
		e.Line("return nil, err")
		e.Out()
		e.Line("}")
		e.Line("return &v, nil")
	}
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

// emitIndirectCodec renders a boxed reference. The box itself has no wire
// presence; the codec delegates to the referent by function reference,
// which is what lets recursive types terminate.
func emitIndirectCodec(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, node types.Type) error {
	imports.Add(m.Config.HostImportPath + "/errors")
	name := TypeName(node.Ident)
	goType, err := GoType(m, target, imports, node.Ident)
	if err != nil {
		return err
	}
	enc, err := EncodeRef(m, target, imports, *node.Elem)
	if err != nil {
		return err
	}
	dec, err := DecodeRef(m, target, imports, *node.Elem)
	if err != nil {
		return err
	}

	boxed := ElemBoxed(m, *node.Elem)

	e.Linef("func encode%s(w *wire.Writer, v %s) error {", name, goType)
	e.In()
	e.Line("if v == nil {")
	e.In()
	e.Linef("return errors.InvalidInput(errors.PhaseEncode, \"nil %s\")", node.Name())
	e.Out()
	e.Line("}")
	if boxed {
		e.Linef("return %s(w, v)", enc)
	} else {
		e.Linef("return %s(w, *v)", enc)
	}
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (%s, error) {", name, goType)
	e.In()
	if boxed {
		e.Linef("return %s(r)", dec)
	} else {
		e.Linef("v, err := %s(r)", dec)
		e.Line("if err != nil {")
		e.In()
		e.Line("return nil, err")
		e.Out()
		e.Line("}")
		e.Line("return &v, nil")
	}
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

// emitStructCodec renders map-keyed field encoding for a struct node or a
// named variant payload. wireName keys error paths; goName is the Go type.
func emitStructCodec(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, goName, wireName string, fields []types.Field) error {
	e.Linef("func encode%s(w *wire.Writer, v %s) error {", goName, goName)
	e.In()
	e.Linef("w.WriteMapHeader(%d)", len(fields))
	for _, f := range fields {
		enc, err := EncodeRef(m, target, imports, f.Type)
		if err != nil {
			return err
		}
		e.Linef("w.WriteString(%q)", f.Name)
		e.Linef("if err := %s(w, v.%s); err != nil {", enc, codegen.PascalCase(f.Name))
		e.In()
		e.Line("return err")
		e.Out()
		e.Line("}")
	}
	e.Line("return nil")
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (%s, error) {", goName, goName)
	e.In()
	e.Linef("var v %s", goName)
	e.Line("n, err := r.ReadMapHeader()")
	e.Line("if err != nil {")
	e.In()
	e.Line("return v, err")
	e.Out()
	e.Line("}")
	required := requiredFields(m, fields)
	if len(required) > 0 {
		imports.Add(m.Config.HostImportPath + "/errors")
	}
	for _, f := range required {
		e.Linef("var seen%s bool", codegen.PascalCase(f.Name))
	}
	e.Line("for i := 0; i < n; i++ {")
	e.In()
	e.Line("key, err := r.ReadString()")
	e.Line("if err != nil {")
	e.In()
	e.Line("return v, err")
	e.Out()
	e.Line("}")
	e.Line("switch key {")
	for _, f := range fields {
		dec, err := DecodeRef(m, target, imports, f.Type)
		if err != nil {
			return err
		}
		e.Linef("case %q:", f.Name)
		e.In()
		e.Linef("v.%s, err = %s(r)", codegen.PascalCase(f.Name), dec)
		if isRequired(m, f) {
			e.Linef("seen%s = true", codegen.PascalCase(f.Name))
		}
		e.Out()
	}
	e.Line("default:")
	e.In()
	e.Line("err = r.Skip()")
	e.Out()
	e.Line("}")
	e.Line("if err != nil {")
	e.In()
	e.Line("return v, err")
	e.Out()
	e.Line("}")
	e.Out()
	e.Line("}")
	for _, f := range required {
		e.Linef("if !seen%s {", codegen.PascalCase(f.Name))
		e.In()
		e.Linef("return v, errors.FieldMissing(errors.PhaseDecode, []string{%q}, %q)", wireName, f.Name)
		e.Out()
		e.Line("}")
	}
	e.Line("return v, nil")
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

// requiredFields returns the fields whose absence is a decode error.
// Optional fields may simply be omitted.
func requiredFields(m *codegen.Model, fields []types.Field) []types.Field {
	var out []types.Field
	for _, f := range fields {
		if isRequired(m, f) {
			out = append(out, f)
		}
	}
	return out
}

func isRequired(m *codegen.Model, f types.Field) bool {
	node, ok := m.Graph.Lookup(f.Type.String())
	return !ok || node.Kind != types.KindOption
}

func emitEnumCodec(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, enum types.TypeIdent, variants []types.Variant) error {
	imports.Add(m.Config.HostImportPath + "/errors")
	name := TypeName(enum)

	// payload codecs first, one per non-unit variant
	for _, v := range variants {
		switch v.Kind {
		case types.VariantTuple:
			if err := emitTupleCodec(e, m, target, imports, VariantTypeName(enum, v.Name), v.Tuple); err != nil {
				return err
			}
		case types.VariantNamed:
			wireName := enum.String() + "." + v.Name
			if err := emitStructCodec(e, m, target, imports, VariantTypeName(enum, v.Name), wireName, v.Fields); err != nil {
				return err
			}
		}
	}

	e.Linef("func encode%s(w *wire.Writer, v %s) error {", name, name)
	e.In()
	e.Line("w.WriteMapHeader(1)")
	e.Line("switch {")
	for _, v := range variants {
		field := codegen.PascalCase(v.Name)
		e.Linef("case v.%s != nil:", field)
		e.In()
		e.Linef("w.WriteString(%q)", v.Name)
		if v.Kind == types.VariantUnit {
			e.Line("w.WriteNil()")
			e.Line("return nil")
		} else {
			e.Linef("return encode%s(w, *v.%s)", VariantTypeName(enum, v.Name), field)
		}
		e.Out()
	}
	e.Line("default:")
	e.In()
	e.Linef("return errors.InvalidVariant(errors.PhaseEncode, nil, \"\", %q)", enum.String())
	e.Out()
	e.Line("}")
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (%s, error) {", name, name)
	e.In()
	e.Linef("var v %s", name)
	e.Line("n, err := r.ReadMapHeader()")
	e.Line("if err != nil {")
	e.In()
	e.Line("return v, err")
	e.Out()
	e.Line("}")
	e.Line("if n != 1 {")
	e.In()
	e.Linef("return v, errors.InvalidData(errors.PhaseDecode, []string{%q}, \"variant mapping must hold exactly one entry\")", enum.String())
	e.Out()
	e.Line("}")
	e.Line("key, err := r.ReadString()")
	e.Line("if err != nil {")
	e.In()
	e.Line("return v, err")
	e.Out()
	e.Line("}")
	e.Line("switch key {")
	for _, v := range variants {
		field := codegen.PascalCase(v.Name)
		payload := VariantTypeName(enum, v.Name)
		e.Linef("case %q:", v.Name)
		e.In()
		if v.Kind == types.VariantUnit {
			e.Line("if err := r.ReadNil(); err != nil {")
			e.In()
			e.Line("return v, err")
			e.Out()
			e.Line("}")
			e.Linef("v.%s = &%s{}", field, payload)
		} else {
			e.Linef("payload, err := decode%s(r)", payload)
			e.Line("if err != nil {")
			e.In()
			e.Line("return v, err")
			e.Out()
			e.Line("}")
			e.Linef("v.%s = &payload", field)
		}
		e.Out()
	}
	e.Line("default:")
	e.In()
	e.Linef("return v, errors.InvalidVariant(errors.PhaseDecode, []string{%q}, key, %q)", enum.String(), enum.String())
	e.Out()
	e.Line("}")
	e.Line("return v, nil")
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

// emitTupleCodec renders a tuple payload: a single element is carried
// directly, several elements as a fixed-length sequence.
func emitTupleCodec(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, goName string, tuple []types.TypeIdent) error {
	e.Linef("func encode%s(w *wire.Writer, v %s) error {", goName, goName)
	e.In()
	if len(tuple) > 1 {
		e.Linef("w.WriteSeqHeader(%d)", len(tuple))
	}
	for i, t := range tuple {
		enc, err := EncodeRef(m, target, imports, t)
		if err != nil {
			return err
		}
		e.Linef("if err := %s(w, v.%s); err != nil {", enc, TupleField(i))
		e.In()
		e.Line("return err")
		e.Out()
		e.Line("}")
	}
	e.Line("return nil")
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (%s, error) {", goName, goName)
	e.In()
	e.Linef("var v %s", goName)
	if len(tuple) > 1 {
		imports.Add(m.Config.HostImportPath + "/errors")
		e.Line("n, err := r.ReadSeqHeader()")
		e.Line("if err != nil {")
		e.In()
		e.Line("return v, err")
		e.Out()
		e.Line("}")
		e.Linef("if n != %d {", len(tuple))
		e.In()
		e.Linef("return v, errors.InvalidData(errors.PhaseDecode, []string{%q}, \"tuple arity mismatch\")", goName)
		e.Out()
		e.Line("}")
	} else {
		e.Line("var err error")
	}
	for i, t := range tuple {
		dec, err := DecodeRef(m, target, imports, t)
		if err != nil {
			return err
		}
		e.Linef("v.%s, err = %s(r)", TupleField(i), dec)
		e.Line("if err != nil {")
		e.In()
		e.Line("return v, err")
		e.Out()
		e.Line("}")
	}
	e.Line("return v, nil")
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

func emitResultCodec(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, node types.Type) error {
	imports.Add(m.Config.HostImportPath + "/errors")
	name := TypeName(node.Ident)
	goType := name

	encOk, err := EncodeRef(m, target, imports, *node.Ok)
	if err != nil {
		return err
	}
	decOk, err := DecodeRef(m, target, imports, *node.Ok)
	if err != nil {
		return err
	}
	encErr, err := EncodeRef(m, target, imports, *node.Err)
	if err != nil {
		return err
	}
	decErr, err := DecodeRef(m, target, imports, *node.Err)
	if err != nil {
		return err
	}

	e.Linef("func encode%s(w *wire.Writer, v %s) error {", name, goType)
	e.In()
	e.Line("w.WriteMapHeader(1)")
	e.Line("switch {")
	e.Line("case v.Ok != nil:")
	e.In()
	e.Line("w.WriteString(\"Ok\")")
	e.Linef("return %s(w, *v.Ok)", encOk)
	e.Out()
	e.Line("case v.Err != nil:")
	e.In()
	e.Line("w.WriteString(\"Err\")")
	e.Linef("return %s(w, *v.Err)", encErr)
	e.Out()
	e.Line("default:")
	e.In()
	e.Linef("return errors.InvalidVariant(errors.PhaseEncode, nil, \"\", %q)", node.Name())
	e.Out()
	e.Line("}")
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (%s, error) {", name, goType)
	e.In()
	e.Linef("var v %s", goType)
	e.Line("n, err := r.ReadMapHeader()")
	e.Line("if err != nil {")
	e.In()
	e.Line("return v, err")
	e.Out()
	e.Line("}")
	e.Line("if n != 1 {")
	e.In()
	e.Linef("return v, errors.InvalidData(errors.PhaseDecode, []string{%q}, \"variant mapping must hold exactly one entry\")", node.Name())
	e.Out()
	e.Line("}")
	e.Line("key, err := r.ReadString()")
	e.Line("if err != nil {")
	e.In()
	e.Line("return v, err")
	e.Out()
	e.Line("}")
	e.Line("switch key {")
	e.Line("case \"Ok\":")
	e.In()
	e.Linef("ok, err := %s(r)", decOk)
	e.Line("if err != nil {")
	e.In()
	e.Line("return v, err")
	e.Out()
	e.Line("}")
	e.Line("v.Ok = &ok")
	e.Out()
	e.Line("case \"Err\":")
	e.In()
	e.Linef("fail, err := %s(r)", decErr)
	e.Line("if err != nil {")
	e.In()
	e.Line("return v, err")
	e.Out()
	e.Line("}")
	e.Line("v.Err = &fail")
	e.Out()
	e.Line("default:")
	e.In()
	e.Linef("return v, errors.InvalidVariant(errors.PhaseDecode, []string{%q}, key, %q)", node.Name(), node.Name())
	e.Out()
	e.Line("}")
	e.Line("return v, nil")
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

func emitAliasCodec(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, node types.Type) error {
	name := TypeName(node.Ident)
	goType, err := GoType(m, target, imports, node.Ident)
	if err != nil {
		return err
	}
	enc, err := EncodeRef(m, target, imports, *node.Elem)
	if err != nil {
		return err
	}
	dec, err := DecodeRef(m, target, imports, *node.Elem)
	if err != nil {
		return err
	}

	e.Linef("func encode%s(w *wire.Writer, v %s) error {", name, goType)
	e.In()
	e.Linef("return %s(w, v)", enc)
	e.Out()
	e.Line("}")
	e.Blank()

	e.Linef("func decode%s(r *wire.Reader) (%s, error) {", name, goType)
	e.In()
	e.Linef("return %s(r)", dec)
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}
