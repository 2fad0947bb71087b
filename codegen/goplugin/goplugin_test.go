package goplugin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sagudev/fp-bindgen/codegen"
	"github.com/sagudev/fp-bindgen/codegen/internal/srctest"
	"github.com/sagudev/fp-bindgen/protocol"
	"github.com/sagudev/fp-bindgen/types"
)

func buildModel(t *testing.T, build func(p *protocol.Protocol), cfg protocol.Config) *codegen.Model {
	t.Helper()
	p := protocol.New("example")
	build(p)
	m, err := codegen.NewModel(p, cfg)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func generate(t *testing.T, m *codegen.Model) string {
	t.Helper()
	files, err := target{}.Generate(m)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	return string(files[0].Contents)
}

func TestGenerate_Deterministic(t *testing.T) {
	m := buildModel(t, func(p *protocol.Protocol) {
		p.MustRegister(types.StructOf(types.Ident("Point"),
			types.Field{Name: "x", Type: types.Ident("s32")},
		))
		p.MustDeclare(protocol.Function{
			Name:      "translate",
			Params:    []protocol.Param{{Name: "p", Type: types.Ident("Point")}},
			Ret:       types.Ident("Point"),
			Direction: protocol.Export,
		})
	}, protocol.Config{})

	first, err := target{}.Generate(m)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := target{}.Generate(m)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !bytes.Equal(first[0].Contents, second[0].Contents) {
		t.Error("two runs over the same model differ")
	}
}

func TestGenerate_BuildConstraintAndDirectives(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustDeclare(protocol.Function{
			Name:      "log",
			Params:    []protocol.Param{{Name: "message", Type: types.Ident("string")}},
			Direction: protocol.Import,
		})
		p.MustDeclare(protocol.Function{
			Name:      "greet",
			Params:    []protocol.Param{{Name: "name", Type: types.Ident("string")}},
			Ret:       types.Ident("string"),
			Direction: protocol.Export,
		})
	}, protocol.Config{}))

	if !strings.Contains(src, "//go:build tinygo || wasm\n") {
		t.Error("missing build constraint")
	}
	if !strings.Contains(src, "//go:wasmimport fp __fp_gen_log\n") {
		t.Error("missing wasmimport directive for host function")
	}
	if !strings.Contains(src, "//go:wasmexport __fp_gen_greet\n") {
		t.Error("missing wasmexport directive for plugin function")
	}
	if !strings.Contains(src, "var HandleGreet func(name string) string") {
		t.Error("missing handler hook for export")
	}
	if !strings.Contains(src, "func Log(message string) (err error) {") {
		t.Error("missing typed wrapper for import")
	}
}

// An enum with a single-payload variant and a multi-field variant encodes
// each case as a one-key mapping.
func TestGenerate_EnumVariants(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustRegister(types.EnumOf(types.Ident("Shape"),
			types.Variant{Name: "Circle", Kind: types.VariantTuple, Tuple: []types.TypeIdent{types.Ident("f64")}},
			types.Variant{Name: "Rect", Kind: types.VariantNamed, Fields: []types.Field{
				{Name: "w", Type: types.Ident("f64")},
				{Name: "h", Type: types.Ident("f64")},
			}},
		))
		p.MustDeclare(protocol.Function{
			Name:      "area",
			Params:    []protocol.Param{{Name: "s", Type: types.Ident("Shape")}},
			Ret:       types.Ident("f64"),
			Direction: protocol.Export,
		})
	}, protocol.Config{}))

	if !strings.Contains(src, "type Shape struct {") {
		t.Error("missing enum carrier struct")
	}
	if !strings.Contains(src, "Circle *ShapeCircle") || !strings.Contains(src, "Rect *ShapeRect") {
		t.Error("missing variant pointer fields")
	}
	// every variant goes out as a one-entry mapping
	if !strings.Contains(src, "func encodeShape(w *wire.Writer, v Shape) error {\n\tw.WriteMapHeader(1)") {
		t.Error("enum encoding is not a one-entry mapping")
	}
	// single-payload variant carries the value directly, no sequence
	if !strings.Contains(src, "func encodeShapeCircle(") {
		t.Error("missing tuple payload codec")
	}
	if strings.Contains(src, "func encodeShapeCircle(w *wire.Writer, v ShapeCircle) error {\n\tw.WriteSeqHeader(") {
		t.Error("single-element tuple must not wrap in a sequence")
	}
}

func TestGenerate_StrictCancellationInit(t *testing.T) {
	declare := func(p *protocol.Protocol) {
		p.MustDeclare(protocol.Function{
			Name:      "ping",
			Direction: protocol.Export,
		})
	}

	strict := generate(t, buildModel(t, declare, protocol.Config{StrictCancellation: true}))
	if !strings.Contains(strict, "func init() {\n\tguest.UseStrictCancellation()\n}") {
		t.Error("strict mode must opt the guest bridge in at init")
	}

	lenient := generate(t, buildModel(t, declare, protocol.Config{}))
	if strings.Contains(lenient, "UseStrictCancellation") {
		t.Error("default mode must not touch cancellation strictness")
	}
}

func TestGenerate_AsyncBothDirections(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustDeclare(protocol.Function{
			Name:      "fetch",
			Params:    []protocol.Param{{Name: "url", Type: types.Ident("string")}},
			Ret:       types.Ident("string"),
			Direction: protocol.Import,
			Async:     true,
		})
		p.MustDeclare(protocol.Function{
			Name:      "tick",
			Direction: protocol.Export,
			Async:     true,
		})
	}, protocol.Config{}))

	// guest-initiated call: mint first, then cross the boundary with the
	// handle appended
	if !strings.Contains(src, "h = guest.Bridge().Mint(") {
		t.Error("async import must mint a handle")
	}
	if !strings.Contains(src, "importFetch(uint64(ref0), uint32(h))") {
		t.Error("async import must pass the handle after the arguments")
	}
	// host-initiated call: export entry receives the handle and resolves
	// back through the guest shim
	if !strings.Contains(src, "func exportTick(handle uint32) {") {
		t.Error("async export entry must take the call handle")
	}
	if !strings.Contains(src, "guest.ResolveHost(handle, w.Bytes())") {
		t.Error("async export must resolve through the guest shim")
	}
	if !strings.Contains(src, "var HandleTick func(resolve func())") {
		t.Error("async unit export hook must take only the resolve callback")
	}
}

// A wrapper that shares no arguments and takes no result back has no
// use for the guest shim; importing it anyway breaks the build of the
// generated file.
func TestGenerate_NoGuestImportWithoutSharing(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustDeclare(protocol.Function{Name: "ping", Direction: protocol.Import})
		p.MustDeclare(protocol.Function{Name: "run", Direction: protocol.Export})
	}, protocol.Config{}))

	if strings.Contains(src, `/guest"`) {
		t.Error("guest must only be imported where memory is shared or taken")
	}
	if !strings.Contains(src, "func Ping() (err error) {") {
		t.Error("missing typed wrapper for ping")
	}
	if !strings.Contains(src, "func exportRun() {") {
		t.Error("missing export entry for run")
	}
}

func TestGenerate_OutputIsValidGo(t *testing.T) {
	cases := []struct {
		name  string
		build func(p *protocol.Protocol)
	}{
		{"import with no parameters", func(p *protocol.Protocol) {
			p.MustDeclare(protocol.Function{Name: "ping", Direction: protocol.Import})
		}},
		{"import returning a value with no parameters", func(p *protocol.Protocol) {
			p.MustDeclare(protocol.Function{Name: "now", Ret: types.Ident("f64"), Direction: protocol.Import})
		}},
		{"export with no parameters", func(p *protocol.Protocol) {
			p.MustDeclare(protocol.Function{Name: "run", Direction: protocol.Export})
		}},
		{"async in both directions", func(p *protocol.Protocol) {
			p.MustDeclare(protocol.Function{
				Name:      "fetch",
				Params:    []protocol.Param{{Name: "url", Type: types.Ident("string")}},
				Ret:       types.Ident("string"),
				Direction: protocol.Import,
				Async:     true,
			})
			p.MustDeclare(protocol.Function{Name: "tick", Direction: protocol.Export, Async: true})
		}},
		{"strict cancellation init", func(p *protocol.Protocol) {
			p.MustDeclare(protocol.Function{Name: "run", Direction: protocol.Export})
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := protocol.Config{}
			if tc.name == "strict cancellation init" {
				cfg.StrictCancellation = true
			}
			src := generate(t, buildModel(t, tc.build, cfg))
			srctest.Check(t, []byte(src))
		})
	}
}
