package goplugin

import (
	"fmt"

	"github.com/sagudev/fp-bindgen/codegen"
	"github.com/sagudev/fp-bindgen/codegen/internal/gosrc"
	"github.com/sagudev/fp-bindgen/protocol"
)

// TargetName is the name this generator registers under.
const TargetName = "goplugin"

func init() {
	codegen.RegisterTarget(target{})
}

type target struct{}

func (target) Name() string { return TargetName }

func (target) Generate(m *codegen.Model) ([]codegen.File, error) {
	e := codegen.NewEmitter()
	imports := gosrc.NewImportSet()

	if m.Config.StrictCancellation {
		imports.Add(m.Config.HostImportPath + "/guest")
		e.Line("func init() {")
		e.In()
		e.Line("guest.UseStrictCancellation()")
		e.Out()
		e.Line("}")
		e.Blank()
	}

	if err := gosrc.EmitOutcomeDecls(e, m, TargetName, imports, m.Graph.Imports()); err != nil {
		return nil, err
	}
	if err := gosrc.EmitTypeDecls(e, m, TargetName, imports); err != nil {
		return nil, err
	}
	if err := gosrc.EmitCodecs(e, m, TargetName, imports); err != nil {
		return nil, err
	}
	for _, fn := range m.Graph.Imports() {
		if err := emitImportWrapper(e, m, imports, fn); err != nil {
			return nil, err
		}
	}
	for _, fn := range m.Graph.Exports() {
		if err := emitExportWrapper(e, m, imports, fn); err != nil {
			return nil, err
		}
	}

	pkg := gosrc.PackageName(m.Config.ModuleName)
	file := codegen.File{
		Path:     pkg + "_plugin.go",
		Contents: gosrc.RenderFileWithConstraint(pkg, "tinygo || wasm", imports, e.Bytes()),
	}
	return []codegen.File{file}, nil
}

// stubName names the go:wasmimport declaration for a host function.
func stubName(fn protocol.Function) string {
	return "import" + gosrc.MethodName(fn)
}

// emitImportWrapper renders the raw host-function stub and the typed
// wrapper the plugin calls.
func emitImportWrapper(e *codegen.Emitter, m *codegen.Model, imports *gosrc.ImportSet, fn protocol.Function) error {
	var stubParams string
	for i := range fn.Params {
		if i > 0 {
			stubParams += ", "
		}
		stubParams += fmt.Sprintf("ref%d uint64", i)
	}

	e.Linef("//go:wasmimport fp %s", gosrc.WasmName(fn))
	if fn.Async {
		if stubParams != "" {
			stubParams += ", "
		}
		e.Linef("func %s(%shandle uint32)", stubName(fn), stubParams)
	} else {
		e.Linef("func %s(%s) uint64", stubName(fn), stubParams)
	}
	e.Blank()

	params := ""
	for i, p := range fn.Params {
		goType, err := gosrc.GoType(m, TargetName, imports, p.Type)
		if err != nil {
			return err
		}
		if i > 0 {
			params += ", "
		}
		params += fmt.Sprintf("%s %s", gosrc.ParamName(p.Name), goType)
	}

	if fn.Async {
		imports.Add(m.Config.HostImportPath + "/bridge")
		imports.Add(m.Config.HostImportPath + "/guest")
		if params != "" {
			params += ", "
		}
		params += fmt.Sprintf("done func(%s)", gosrc.OutcomeName(fn))

		e.Doc(fn.Doc)
		e.Linef("// %s calls the host asynchronously; done runs when the host", gosrc.MethodName(fn))
		e.Line("// resolves. The returned handle can cancel the call through")
		e.Line("// guest.CancelHost.")
		e.Linef("func %s(%s) (h bridge.Handle, err error) {", gosrc.MethodName(fn), params)
		e.In()
		refArgs, err := emitShareArgs(e, m, imports, fn)
		if err != nil {
			return err
		}
		if gosrc.IsUnit(fn.Ret) {
			e.Line("h = guest.Bridge().Mint(func(_ []byte) {")
			e.In()
			e.Linef("done(%s{})", gosrc.OutcomeName(fn))
			e.Out()
			e.Line("})")
		} else {
			imports.Add(m.Config.HostImportPath + "/wire")
			dec, err := gosrc.DecodeRef(m, TargetName, imports, fn.Ret)
			if err != nil {
				return err
			}
			e.Line("h = guest.Bridge().Mint(func(payload []byte) {")
			e.In()
			e.Linef("v, derr := %s(wire.NewReader(payload))", dec)
			e.Linef("done(%s{Value: v, Err: derr})", gosrc.OutcomeName(fn))
			e.Out()
			e.Line("})")
		}
		e.Linef("%s(%suint32(h))", stubName(fn), refArgs)
		e.Line("return")
		e.Out()
		e.Line("}")
		e.Blank()
		return nil
	}

	var results string
	if gosrc.IsUnit(fn.Ret) {
		results = "(err error)"
	} else {
		imports.Add(m.Config.HostImportPath + "/guest")
		imports.Add(m.Config.HostImportPath + "/layout")
		imports.Add(m.Config.HostImportPath + "/wire")
		goType, err := gosrc.GoType(m, TargetName, imports, fn.Ret)
		if err != nil {
			return err
		}
		results = fmt.Sprintf("(ret %s, err error)", goType)
	}

	e.Doc(fn.Doc)
	e.Linef("// %s calls the host-provided %s function.", gosrc.MethodName(fn), fn.Name)
	e.Linef("func %s(%s) %s {", gosrc.MethodName(fn), params, results)
	e.In()
	refArgs, err := emitShareArgs(e, m, imports, fn)
	if err != nil {
		return err
	}
	call := fmt.Sprintf("%s(%s)", stubName(fn), trimArgList(refArgs))
	if gosrc.IsUnit(fn.Ret) {
		e.Linef("_ = %s", call)
		e.Line("return")
	} else {
		dec, err := gosrc.DecodeRef(m, TargetName, imports, fn.Ret)
		if err != nil {
			return err
		}
		e.Linef("res := %s", call)
		e.Line("buf := guest.Take(layout.PackedRef(res))")
		e.Linef("ret, err = %s(wire.NewReader(buf))", dec)
		e.Line("return")
	}
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}

// emitShareArgs encodes each parameter into guest memory and returns the
// comma-terminated list of packed-ref call arguments.
func emitShareArgs(e *codegen.Emitter, m *codegen.Model, imports *gosrc.ImportSet, fn protocol.Function) (string, error) {
	if len(fn.Params) == 0 {
		return "", nil
	}
	imports.Add(m.Config.HostImportPath + "/guest")
	imports.Add(m.Config.HostImportPath + "/wire")
	e.Line("w := wire.NewWriter()")
	refArgs := ""
	for i, p := range fn.Params {
		enc, err := gosrc.EncodeRef(m, TargetName, imports, p.Type)
		if err != nil {
			return "", err
		}
		if i > 0 {
			e.Line("w.Reset()")
		}
		e.Linef("if err = %s(w, %s); err != nil {", enc, gosrc.ParamName(p.Name))
		e.In()
		e.Line("return")
		e.Out()
		e.Line("}")
		e.Linef("ref%d := guest.Share(w.Bytes())", i)
		refArgs += fmt.Sprintf("uint64(ref%d), ", i)
	}
	return refArgs, nil
}

func trimArgList(args string) string {
	if len(args) >= 2 && args[len(args)-2:] == ", " {
		return args[:len(args)-2]
	}
	return args
}

// emitExportWrapper renders the handler hook variable and the
// go:wasmexport entry point for one exported function.
func emitExportWrapper(e *codegen.Emitter, m *codegen.Model, imports *gosrc.ImportSet, fn protocol.Function) error {
	var hookParams string
	for i, p := range fn.Params {
		goType, err := gosrc.GoType(m, TargetName, imports, p.Type)
		if err != nil {
			return err
		}
		if i > 0 {
			hookParams += ", "
		}
		hookParams += fmt.Sprintf("%s %s", gosrc.ParamName(p.Name), goType)
	}

	var hookSig string
	if fn.Async {
		resolve := "resolve func()"
		if !gosrc.IsUnit(fn.Ret) {
			goType, err := gosrc.GoType(m, TargetName, imports, fn.Ret)
			if err != nil {
				return err
			}
			resolve = fmt.Sprintf("resolve func(%s)", goType)
		}
		if hookParams != "" {
			hookParams += ", "
		}
		hookSig = fmt.Sprintf("func(%s%s)", hookParams, resolve)
	} else if gosrc.IsUnit(fn.Ret) {
		hookSig = fmt.Sprintf("func(%s)", hookParams)
	} else {
		goType, err := gosrc.GoType(m, TargetName, imports, fn.Ret)
		if err != nil {
			return err
		}
		hookSig = fmt.Sprintf("func(%s) %s", hookParams, goType)
	}

	e.Doc(fn.Doc)
	e.Linef("// %s implements the exported %s function.", gosrc.HandlerName(fn), fn.Name)
	e.Line("// Assign it before the plugin starts receiving calls.")
	if fn.Async {
		e.Line("// resolve must be called exactly once with the result.")
	}
	e.Linef("var %s %s", gosrc.HandlerName(fn), hookSig)
	e.Blank()

	var stubParams string
	for i := range fn.Params {
		if i > 0 {
			stubParams += ", "
		}
		stubParams += fmt.Sprintf("ref%d uint64", i)
	}
	if fn.Async {
		if stubParams != "" {
			stubParams += ", "
		}
		stubParams += "handle uint32"
	}

	entry := "export" + gosrc.MethodName(fn)
	e.Linef("//go:wasmexport %s", gosrc.WasmName(fn))
	if !fn.Async && !gosrc.IsUnit(fn.Ret) {
		e.Linef("func %s(%s) uint64 {", entry, stubParams)
	} else {
		e.Linef("func %s(%s) {", entry, stubParams)
	}
	e.In()

	callArgs := ""
	if len(fn.Params) > 0 {
		imports.Add(m.Config.HostImportPath + "/guest")
		imports.Add(m.Config.HostImportPath + "/layout")
		imports.Add(m.Config.HostImportPath + "/wire")
	}
	for i, p := range fn.Params {
		dec, err := gosrc.DecodeRef(m, TargetName, imports, p.Type)
		if err != nil {
			return err
		}
		e.Linef("arg%d, err := %s(wire.NewReader(guest.Take(layout.PackedRef(ref%d))))", i, dec, i)
		e.Line("if err != nil {")
		e.In()
		e.Line("guest.Abort(err)")
		e.Out()
		e.Line("}")
		if i > 0 {
			callArgs += ", "
		}
		callArgs += fmt.Sprintf("arg%d", i)
	}

	if fn.Async {
		imports.Add(m.Config.HostImportPath + "/guest")
		imports.Add(m.Config.HostImportPath + "/wire")
		resolveArg := "func() {"
		if !gosrc.IsUnit(fn.Ret) {
			goType, err := gosrc.GoType(m, TargetName, imports, fn.Ret)
			if err != nil {
				return err
			}
			resolveArg = fmt.Sprintf("func(result %s) {", goType)
		}
		if callArgs != "" {
			callArgs += ", "
		}
		e.Linef("%s(%s%s", gosrc.HandlerName(fn), callArgs, resolveArg)
		e.In()
		e.Line("w := wire.NewWriter()")
		if gosrc.IsUnit(fn.Ret) {
			e.Line("w.WriteNil()")
		} else {
			enc, err := gosrc.EncodeRef(m, TargetName, imports, fn.Ret)
			if err != nil {
				return err
			}
			e.Linef("if err := %s(w, result); err != nil {", enc)
			e.In()
			e.Line("guest.Abort(err)")
			e.Out()
			e.Line("}")
		}
		e.Line("guest.ResolveHost(handle, w.Bytes())")
		e.Out()
		e.Line("})")
	} else if gosrc.IsUnit(fn.Ret) {
		e.Linef("%s(%s)", gosrc.HandlerName(fn), callArgs)
	} else {
		imports.Add(m.Config.HostImportPath + "/guest")
		imports.Add(m.Config.HostImportPath + "/wire")
		enc, err := gosrc.EncodeRef(m, TargetName, imports, fn.Ret)
		if err != nil {
			return err
		}
		e.Linef("ret := %s(%s)", gosrc.HandlerName(fn), callArgs)
		e.Line("w := wire.NewWriter()")
		e.Linef("if err := %s(w, ret); err != nil {", enc)
		e.In()
		e.Line("guest.Abort(err)")
		e.Out()
		e.Line("}")
		e.Line("return uint64(guest.Share(w.Bytes()))")
	}
	e.Out()
	e.Line("}")
	e.Blank()
	return nil
}
