package gosrc

import (
	"github.com/sagudev/fp-bindgen/codegen"
	"github.com/sagudev/fp-bindgen/layout"
	"github.com/sagudev/fp-bindgen/protocol"
	"github.com/sagudev/fp-bindgen/types"
)

// IsUnit reports whether an ident names the no-value type.
func IsUnit(id types.TypeIdent) bool {
	return id.Name == "unit" && len(id.Args) == 0
}

// WasmName returns the boundary symbol for a declared function.
func WasmName(fn protocol.Function) string {
	return layout.GenPrefix + fn.Name
}

// MethodName returns the exported Go name for a declared function.
func MethodName(fn protocol.Function) string {
	return codegen.PascalCase(fn.Name)
}

// OutcomeName names the struct carrying an async function's eventual
// result.
func OutcomeName(fn protocol.Function) string {
	return MethodName(fn) + "Outcome"
}

// HandlerName names the plugin-side hook variable for an exported
// function.
func HandlerName(fn protocol.Function) string {
	return "Handle" + MethodName(fn)
}

var goKeywords = map[string]struct{}{
	"break": {}, "case": {}, "chan": {}, "const": {}, "continue": {},
	"default": {}, "defer": {}, "else": {}, "fallthrough": {}, "for": {},
	"func": {}, "go": {}, "goto": {}, "if": {}, "import": {},
	"interface": {}, "map": {}, "package": {}, "range": {}, "return": {},
	"select": {}, "struct": {}, "switch": {}, "type": {}, "var": {},
}

// ParamName returns a keyword-safe lower-camel parameter name.
func ParamName(name string) string {
	p := codegen.CamelCase(name)
	if _, kw := goKeywords[p]; kw {
		return p + "_"
	}
	return p
}

// PackageName derives a valid Go package identifier from a module name.
func PackageName(module string) string {
	out := make([]rune, 0, len(module))
	for _, r := range codegen.SnakeCase(module) {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
		}
	}
	if len(out) == 0 || (out[0] >= '0' && out[0] <= '9') {
		out = append([]rune{'p'}, out...)
	}
	return string(out)
}

// EmitOutcomeDecls writes the per-async-function result structs.
func EmitOutcomeDecls(e *codegen.Emitter, m *codegen.Model, target string, imports *ImportSet, fns []protocol.Function) error {
	for _, fn := range fns {
		if !fn.Async {
			continue
		}
		e.Linef("// %s carries the eventual result of %s.", OutcomeName(fn), MethodName(fn))
		e.Linef("type %s struct {", OutcomeName(fn))
		e.In()
		if !IsUnit(fn.Ret) {
			goType, err := GoType(m, target, imports, fn.Ret)
			if err != nil {
				return err
			}
			e.Linef("Value %s", goType)
		}
		e.Line("Err error")
		e.Out()
		e.Line("}")
		e.Blank()
	}
	return nil
}
