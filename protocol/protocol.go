package protocol

import (
	"github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/types"
)

// Direction states which side imports a function, relative to the plugin.
type Direction uint8

const (
	// Import: the plugin imports the function from the host.
	Import Direction = iota
	// Export: the plugin exports the function; the host imports it.
	Export
)

func (d Direction) String() string {
	if d == Import {
		return "import"
	}
	return "export"
}

// Param is one named function parameter.
type Param struct {
	Name string
	Type types.TypeIdent
}

// Function is a declared signature. Functions are the roots that decide
// which type nodes are reachable and therefore generated.
type Function struct {
	Name      string
	Params    []Param
	Ret       types.TypeIdent // Ident("unit") for no return value
	Direction Direction
	Async     bool
	Doc       []string
}

// Protocol accumulates type and function declarations for one generation
// run. It replaces an annotation-based registration syntax with an
// explicit, introspectable builder.
type Protocol struct {
	name  string
	order []string
	decls map[string]types.Type
	funcs []Function
}

// New creates an empty protocol with the given module name.
func New(name string) *Protocol {
	return &Protocol{
		name:  name,
		decls: make(map[string]types.Type),
	}
}

// Name returns the module/namespace name used for output file naming.
func (p *Protocol) Name() string {
	return p.name
}

// RegisterType adds a type declaration. Registering the same name twice is
// allowed only when both declarations are structurally identical; they
// collapse to one node. Structurally different duplicates fail.
func (p *Protocol) RegisterType(t types.Type) error {
	name := t.Name()
	if name == "" {
		return errors.InvalidInput(errors.PhaseRegister, "type declaration has no name")
	}
	if prev, ok := p.decls[name]; ok {
		if prev.Fingerprint() != t.Fingerprint() {
			return errors.NameCollision(name)
		}
		return nil
	}
	p.decls[name] = t
	p.order = append(p.order, name)
	return nil
}

// MustRegister is RegisterType for static declarations known to be valid.
func (p *Protocol) MustRegister(t types.Type) {
	if err := p.RegisterType(t); err != nil {
		panic(err)
	}
}

// Declare registers a function signature.
func (p *Protocol) Declare(fn Function) error {
	if fn.Name == "" {
		return errors.InvalidInput(errors.PhaseRegister, "function declaration has no name")
	}
	for _, existing := range p.funcs {
		if existing.Name == fn.Name && existing.Direction == fn.Direction {
			return errors.New(errors.PhaseRegister, errors.KindNameCollision).
				Decl(fn.Name).
				Detail("duplicate %s function", fn.Direction).
				Build()
		}
	}
	seen := make(map[string]bool, len(fn.Params))
	for _, param := range fn.Params {
		if param.Name == "" {
			return errors.New(errors.PhaseRegister, errors.KindInvalidInput).
				Decl(fn.Name).
				Detail("unnamed parameter").
				Build()
		}
		if seen[param.Name] {
			return errors.New(errors.PhaseRegister, errors.KindInvalidInput).
				Decl(fn.Name).
				Detail("duplicate parameter %q", param.Name).
				Build()
		}
		seen[param.Name] = true
	}
	if fn.Ret.Name == "" {
		fn.Ret = types.Ident(types.KindUnit.String())
	}
	p.funcs = append(p.funcs, fn)
	return nil
}

// MustDeclare is Declare for static signatures known to be valid.
func (p *Protocol) MustDeclare(fn Function) {
	if err := p.Declare(fn); err != nil {
		panic(err)
	}
}

// LookupType returns the declaration registered under name.
func (p *Protocol) LookupType(name string) (types.Type, bool) {
	t, ok := p.decls[name]
	return t, ok
}

// Types returns every registered declaration in registration order.
func (p *Protocol) Types() []types.Type {
	out := make([]types.Type, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.decls[name])
	}
	return out
}

// Functions returns every declared signature in declaration order.
func (p *Protocol) Functions() []Function {
	out := make([]Function, len(p.funcs))
	copy(out, p.funcs)
	return out
}

// Imports returns the signatures the plugin imports from the host.
func (p *Protocol) Imports() []Function {
	return p.byDirection(Import)
}

// Exports returns the signatures the plugin exposes to the host.
func (p *Protocol) Exports() []Function {
	return p.byDirection(Export)
}

func (p *Protocol) byDirection(d Direction) []Function {
	var out []Function
	for _, fn := range p.funcs {
		if fn.Direction == d {
			out = append(out, fn)
		}
	}
	return out
}
