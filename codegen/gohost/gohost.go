package gohost

import (
	"fmt"

	"github.com/sagudev/fp-bindgen/codegen"
	"github.com/sagudev/fp-bindgen/codegen/internal/gosrc"
	"github.com/sagudev/fp-bindgen/protocol"
)

// TargetName is the name this generator registers under.
const TargetName = "gohost"

func init() {
	codegen.RegisterTarget(target{})
}

type target struct{}

func (target) Name() string { return TargetName }

func (target) Generate(m *codegen.Model) ([]codegen.File, error) {
	e := codegen.NewEmitter()
	imports := gosrc.NewImportSet()

	if err := gosrc.EmitOutcomeDecls(e, m, TargetName, imports, m.Graph.Exports()); err != nil {
		return nil, err
	}
	if err := gosrc.EmitTypeDecls(e, m, TargetName, imports); err != nil {
		return nil, err
	}
	if err := gosrc.EmitCodecs(e, m, TargetName, imports); err != nil {
		return nil, err
	}
	if err := emitImports(e, m, imports); err != nil {
		return nil, err
	}
	if err := emitRuntime(e, m, imports); err != nil {
		return nil, err
	}

	pkg := gosrc.PackageName(m.Config.ModuleName)
	file := codegen.File{
		Path:     gosrc.PackageName(m.Config.ModuleName) + "_bindings.go",
		Contents: gosrc.RenderFile(pkg, imports, e.Bytes()),
	}
	return []codegen.File{file}, nil
}

// emitImports renders the Imports interface and the host-function glue
// that binds an implementation of it onto a runtime.
func emitImports(e *codegen.Emitter, m *codegen.Model, imports *gosrc.ImportSet) error {
	fns := m.Graph.Imports()
	if len(fns) == 0 {
		return nil
	}
	imports.Add("context")
	imports.Add(m.Config.HostImportPath + "/runtime")

	e.Line("// Imports is the host-side implementation of the functions the plugin")
	e.Line("// imports. Synchronous methods may fail, which traps the calling plugin.")
	e.Line("// Asynchronous methods run on their own goroutine; failures must be")
	e.Line("// carried in the declared return type.")
	e.Line("type Imports interface {")
	e.In()
	for _, fn := range fns {
		sig, err := importMethodSig(m, imports, fn)
		if err != nil {
			return err
		}
		e.Doc(fn.Doc)
		e.Line(sig)
	}
	e.Out()
	e.Line("}")
	e.Blank()

	e.Line("// BindImports registers the host side of every plugin import on rt.")
	e.Line("// It must be called before the plugin module is loaded.")
	e.Line("func BindImports(rt *runtime.Runtime, imp Imports) {")
	e.In()
	for _, fn := range fns {
		if err := emitImportGlue(e, m, imports, fn); err != nil {
			return err
		}
	}
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

func importMethodSig(m *codegen.Model, imports *gosrc.ImportSet, fn protocol.Function) (string, error) {
	params := "ctx context.Context"
	for _, p := range fn.Params {
		goType, err := gosrc.GoType(m, TargetName, imports, p.Type)
		if err != nil {
			return "", err
		}
		params += fmt.Sprintf(", %s %s", gosrc.ParamName(p.Name), goType)
	}
	ret := ""
	if fn.Async {
		if !gosrc.IsUnit(fn.Ret) {
			goType, err := gosrc.GoType(m, TargetName, imports, fn.Ret)
			if err != nil {
				return "", err
			}
			ret = " " + goType
		}
	} else {
		if gosrc.IsUnit(fn.Ret) {
			ret = " error"
		} else {
			goType, err := gosrc.GoType(m, TargetName, imports, fn.Ret)
			if err != nil {
				return "", err
			}
			ret = fmt.Sprintf(" (%s, error)", goType)
		}
	}
	return fmt.Sprintf("%s(%s)%s", gosrc.MethodName(fn), params, ret), nil
}

func emitImportGlue(e *codegen.Emitter, m *codegen.Model, imports *gosrc.ImportSet, fn protocol.Function) error {
	nparams := len(fn.Params)
	nresults := 1
	if fn.Async {
		nparams++ // trailing call handle
		nresults = 0
		imports.Add(m.Config.HostImportPath + "/bridge")
		imports.Add("go.uber.org/zap")
	}

	e.Linef("rt.DefineImport(%q, %d, %d, func(ctx context.Context, args []uint64) (uint64, error) {",
		gosrc.WasmName(fn), nparams, nresults)
	e.In()

	callArgs := "ctx"
	for i, p := range fn.Params {
		imports.Add(m.Config.HostImportPath + "/layout")
		imports.Add(m.Config.HostImportPath + "/wire")
		dec, err := gosrc.DecodeRef(m, TargetName, imports, p.Type)
		if err != nil {
			return err
		}
		e.Linef("buf%d, err := rt.TakeArg(ctx, layout.PackedRef(args[%d]))", i, i)
		e.Line("if err != nil {")
		e.In()
		e.Line("return 0, err")
		e.Out()
		e.Line("}")
		e.Linef("arg%d, err := %s(wire.NewReader(buf%d))", i, dec, i)
		e.Line("if err != nil {")
		e.In()
		e.Line("return 0, err")
		e.Out()
		e.Line("}")
		callArgs += fmt.Sprintf(", arg%d", i)
	}

	if fn.Async {
		imports.Add(m.Config.HostImportPath + "/wire")
		e.Linef("handle := bridge.Handle(uint32(args[%d]))", len(fn.Params))
		e.Line("go func() {")
		e.In()
		if gosrc.IsUnit(fn.Ret) {
			e.Linef("imp.%s(%s)", gosrc.MethodName(fn), asyncCallArgs(fn))
			e.Line("w := wire.NewWriter()")
			e.Line("w.WriteNil()")
		} else {
			enc, err := gosrc.EncodeRef(m, TargetName, imports, fn.Ret)
			if err != nil {
				return err
			}
			e.Linef("ret := imp.%s(%s)", gosrc.MethodName(fn), asyncCallArgs(fn))
			e.Line("w := wire.NewWriter()")
			e.Linef("if err := %s(w, ret); err != nil {", enc)
			e.In()
			e.Linef("runtime.Logger().Error(\"%s: result encoding failed\", zap.Error(err))", fn.Name)
			e.Line("return")
			e.Out()
			e.Line("}")
		}
		e.Line("if err := rt.ResolveGuest(context.Background(), handle, w.Bytes()); err != nil {")
		e.In()
		e.Linef("runtime.Logger().Error(\"%s: resolution failed\", zap.Error(err))", fn.Name)
		e.Out()
		e.Line("}")
		e.Out()
		e.Line("}()")
		e.Line("return 0, nil")
	} else if gosrc.IsUnit(fn.Ret) {
		e.Linef("if err := imp.%s(%s); err != nil {", gosrc.MethodName(fn), callArgs)
		e.In()
		e.Line("return 0, err")
		e.Out()
		e.Line("}")
		e.Line("return 0, nil")
	} else {
		imports.Add(m.Config.HostImportPath + "/wire")
		enc, err := gosrc.EncodeRef(m, TargetName, imports, fn.Ret)
		if err != nil {
			return err
		}
		e.Linef("ret, err := imp.%s(%s)", gosrc.MethodName(fn), callArgs)
		e.Line("if err != nil {")
		e.In()
		e.Line("return 0, err")
		e.Out()
		e.Line("}")
		e.Line("w := wire.NewWriter()")
		e.Linef("if err := %s(w, ret); err != nil {", enc)
		e.In()
		e.Line("return 0, err")
		e.Out()
		e.Line("}")
		e.Line("ref, err := rt.ShareResult(ctx, w.Bytes())")
		e.Line("if err != nil {")
		e.In()
		e.Line("return 0, err")
		e.Out()
		e.Line("}")
		e.Line("return uint64(ref), nil")
	}
	e.Out()
	e.Line("})")
	return nil
}

// asyncCallArgs builds the argument list for the goroutine call, which
// replaces the host-function context with a background one because the
// original call frame has already returned.
func asyncCallArgs(fn protocol.Function) string {
	args := "context.Background()"
	for i := range fn.Params {
		args += fmt.Sprintf(", arg%d", i)
	}
	return args
}

// emitRuntime renders the typed wrapper over the runtime shim with one
// method per plugin export.
func emitRuntime(e *codegen.Emitter, m *codegen.Model, imports *gosrc.ImportSet) error {
	imports.Add(m.Config.HostImportPath + "/runtime")

	e.Linef("// Runtime is a typed view of a loaded %s plugin.", m.Config.ModuleName)
	e.Line("type Runtime struct {")
	e.In()
	e.Line("rt *runtime.Runtime")
	e.Out()
	e.Line("}")
	e.Blank()
	e.Line("// NewRuntime wraps a runtime that has loaded a plugin module.")
	e.Line("func NewRuntime(rt *runtime.Runtime) *Runtime {")
	e.In()
	e.Line("return &Runtime{rt: rt}")
	e.Out()
	e.Line("}")
	e.Blank()

	for _, fn := range m.Graph.Exports() {
		if err := emitExportMethod(e, m, imports, fn); err != nil {
			return err
		}
	}
	return nil
}

func emitExportMethod(e *codegen.Emitter, m *codegen.Model, imports *gosrc.ImportSet, fn protocol.Function) error {
	imports.Add("context")
	params := "ctx context.Context"
	for _, p := range fn.Params {
		goType, err := gosrc.GoType(m, TargetName, imports, p.Type)
		if err != nil {
			return err
		}
		params += fmt.Sprintf(", %s %s", gosrc.ParamName(p.Name), goType)
	}

	var results string
	switch {
	case fn.Async:
		results = fmt.Sprintf("(ch <-chan %s, err error)", gosrc.OutcomeName(fn))
	case gosrc.IsUnit(fn.Ret):
		results = "(err error)"
	default:
		goType, err := gosrc.GoType(m, TargetName, imports, fn.Ret)
		if err != nil {
			return err
		}
		results = fmt.Sprintf("(ret %s, err error)", goType)
	}

	e.Doc(fn.Doc)
	e.Linef("func (p *Runtime) %s(%s) %s {", gosrc.MethodName(fn), params, results)
	e.In()

	callArgs := ""
	if len(fn.Params) > 0 {
		imports.Add(m.Config.HostImportPath + "/wire")
		e.Line("w := wire.NewWriter()")
		for i, p := range fn.Params {
			enc, err := gosrc.EncodeRef(m, TargetName, imports, p.Type)
			if err != nil {
				return err
			}
			if i > 0 {
				e.Line("w.Reset()")
			}
			e.Linef("if err = %s(w, %s); err != nil {", enc, gosrc.ParamName(p.Name))
			e.In()
			e.Line("return")
			e.Out()
			e.Line("}")
			e.Linef("ref%d, err := p.rt.ExportToGuest(ctx, w.Bytes())", i)
			e.Line("if err != nil {")
			e.In()
			e.Line("return")
			e.Out()
			e.Line("}")
			callArgs += fmt.Sprintf(", uint64(ref%d)", i)
		}
	}

	if fn.Async {
		e.Linef("out := make(chan %s, 1)", gosrc.OutcomeName(fn))
		if gosrc.IsUnit(fn.Ret) {
			e.Line("handle := p.rt.Bridge().Mint(func(_ []byte) {")
			e.In()
			e.Linef("out <- %s{}", gosrc.OutcomeName(fn))
			e.Out()
			e.Line("})")
		} else {
			imports.Add(m.Config.HostImportPath + "/wire")
			dec, err := gosrc.DecodeRef(m, TargetName, imports, fn.Ret)
			if err != nil {
				return err
			}
			e.Line("handle := p.rt.Bridge().Mint(func(payload []byte) {")
			e.In()
			e.Linef("v, derr := %s(wire.NewReader(payload))", dec)
			e.Linef("out <- %s{Value: v, Err: derr}", gosrc.OutcomeName(fn))
			e.Out()
			e.Line("})")
		}
		e.Linef("if _, err = p.rt.Call(ctx, %q%s, uint64(handle)); err != nil {", gosrc.WasmName(fn), callArgs)
		e.In()
		e.Line("p.rt.Bridge().Cancel(handle)")
		e.Line("return")
		e.Out()
		e.Line("}")
		e.Line("ch = out")
		e.Line("return")
	} else if gosrc.IsUnit(fn.Ret) {
		e.Linef("_, err = p.rt.Call(ctx, %q%s)", gosrc.WasmName(fn), callArgs)
		e.Line("return")
	} else {
		imports.Add(m.Config.HostImportPath + "/layout")
		imports.Add(m.Config.HostImportPath + "/wire")
		dec, err := gosrc.DecodeRef(m, TargetName, imports, fn.Ret)
		if err != nil {
			return err
		}
		e.Linef("res, err := p.rt.Call(ctx, %q%s)", gosrc.WasmName(fn), callArgs)
		e.Line("if err != nil {")
		e.In()
		e.Line("return")
		e.Out()
		e.Line("}")
		e.Line("buf, err := p.rt.ImportFromGuest(ctx, layout.PackedRef(res))")
		e.Line("if err != nil {")
		e.In()
		e.Line("return")
		e.Out()
		e.Line("}")
		e.Linef("ret, err = %s(wire.NewReader(buf))", dec)
		e.Line("return")
	}
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}
