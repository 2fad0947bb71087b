package gohost

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

// Two functions share a parameter struct; its declaration and codecs must
// appear exactly once.
func declSharedStruct(p *protocol.Protocol) {
	p.MustRegister(types.StructOf(types.Ident("Point"),
		types.Field{Name: "x", Type: types.Ident("s32")},
		types.Field{Name: "y", Type: types.Ident("s32")},
	))
	p.MustDeclare(protocol.Function{
		Name:      "translate",
		Params:    []protocol.Param{{Name: "p", Type: types.Ident("Point")}},
		Ret:       types.Ident("Point"),
		Direction: protocol.Export,
	})
	p.MustDeclare(protocol.Function{
		Name:      "mirror",
		Params:    []protocol.Param{{Name: "p", Type: types.Ident("Point")}},
		Ret:       types.Ident("Point"),
		Direction: protocol.Export,
	})
}

func TestGenerate_Deterministic(t *testing.T) {
	m := buildModel(t, declSharedStruct, protocol.Config{})

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

func TestGenerate_SharedStructDeclaredOnce(t *testing.T) {
	src := generate(t, buildModel(t, declSharedStruct, protocol.Config{}))

	if n := strings.Count(src, "type Point struct {"); n != 1 {
		t.Errorf("Point declared %d times, want 1", n)
	}
	if n := strings.Count(src, "func encodePoint("); n != 1 {
		t.Errorf("encodePoint emitted %d times, want 1", n)
	}
	for _, method := range []string{"func (p *Runtime) Translate(", "func (p *Runtime) Mirror("} {
		if !strings.Contains(src, method) {
			t.Errorf("missing export method %q", method)
		}
	}
}

func TestGenerate_StructPairCall(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustRegister(types.StructOf(types.Ident("Pair"),
			types.Field{Name: "a", Type: types.Ident("u32")},
			types.Field{Name: "b", Type: types.Ident("u32")},
		))
		p.MustDeclare(protocol.Function{
			Name: "sum",
			Params: []protocol.Param{
				{Name: "left", Type: types.Ident("Pair")},
				{Name: "right", Type: types.Ident("Pair")},
			},
			Ret:       types.Ident("Pair"),
			Direction: protocol.Export,
		})
	}, protocol.Config{}))

	if !strings.Contains(src, "func (p *Runtime) Sum(ctx context.Context, left Pair, right Pair) (ret Pair, err error) {") {
		t.Error("missing typed stub for sum")
	}
	// both arguments cross the boundary as separate packed refs
	if !strings.Contains(src, `"__fp_gen_sum", uint64(ref0), uint64(ref1))`) {
		t.Error("sum call does not pass two packed refs")
	}
	// fields are encoded as a mapping keyed by field name
	if !strings.Contains(src, "w.WriteMapHeader(2)") {
		t.Error("Pair encoding is not a two-entry mapping")
	}
}

func TestGenerate_AsyncExport(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustDeclare(protocol.Function{
			Name:      "fetch",
			Params:    []protocol.Param{{Name: "url", Type: types.Ident("string")}},
			Ret:       types.Ident("string"),
			Direction: protocol.Export,
			Async:     true,
		})
	}, protocol.Config{}))

	if !strings.Contains(src, "type FetchOutcome struct {") {
		t.Error("missing outcome type for async export")
	}
	if !strings.Contains(src, "(ch <-chan FetchOutcome, err error)") {
		t.Error("async export must return a channel, not a value")
	}
	// the continuation is registered before the boundary call happens
	mint := strings.Index(src, "p.rt.Bridge().Mint(")
	call := strings.Index(src, `"__fp_gen_fetch"`)
	if mint < 0 || call < 0 || mint > call {
		t.Error("continuation must be registered before the initiating call")
	}
}

func TestGenerate_ImportsInterface(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustDeclare(protocol.Function{
			Name:      "log",
			Params:    []protocol.Param{{Name: "message", Type: types.Ident("string")}},
			Direction: protocol.Import,
		})
		p.MustDeclare(protocol.Function{
			Name:      "fetch",
			Params:    []protocol.Param{{Name: "url", Type: types.Ident("string")}},
			Ret:       types.Ident("string"),
			Direction: protocol.Import,
			Async:     true,
		})
	}, protocol.Config{}))

	if !strings.Contains(src, "Log(ctx context.Context, message string) error") {
		t.Error("missing sync import method")
	}
	if !strings.Contains(src, "Fetch(ctx context.Context, url string) string") {
		t.Error("async import method must carry failures in its return type")
	}
	if !strings.Contains(src, `rt.DefineImport("__fp_gen_log", 1, 1,`) {
		t.Error("sync import glue missing or wrong arity")
	}
	// async glue takes an extra handle parameter and returns nothing
	if !strings.Contains(src, `rt.DefineImport("__fp_gen_fetch", 2, 0,`) {
		t.Error("async import glue missing or wrong arity")
	}
	if !strings.Contains(src, "rt.ResolveGuest(") {
		t.Error("async import glue must resolve through the runtime")
	}
}

func TestGenerate_OptionalField(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustRegister(types.StructOf(types.Ident("Profile"),
			types.Field{Name: "name", Type: types.Ident("string")},
			types.Field{Name: "nickname", Type: types.IdentOf("Option", types.Ident("string"))},
		))
		p.MustDeclare(protocol.Function{
			Name:      "save",
			Params:    []protocol.Param{{Name: "p", Type: types.Ident("Profile")}},
			Direction: protocol.Export,
		})
	}, protocol.Config{}))

	if !strings.Contains(src, "Nickname *string") {
		t.Error("optional string field must render as *string")
	}
	// a missing required field is a decode error; a missing optional one
	// is not
	if !strings.Contains(src, "var seenName bool") {
		t.Error("required field must be tracked")
	}
	if strings.Contains(src, "var seenNickname bool") {
		t.Error("optional field must not be required")
	}
}

func TestGenerate_UnsupportedMapKeyEmitsNothing(t *testing.T) {
	m := buildModel(t, func(p *protocol.Protocol) {
		p.MustRegister(types.StructOf(types.Ident("Point"),
			types.Field{Name: "x", Type: types.Ident("s32")},
		))
		p.MustDeclare(protocol.Function{
			Name:      "tally",
			Params:    []protocol.Param{{Name: "m", Type: types.IdentOf("Map", types.Ident("Point"), types.Ident("u64"))}},
			Direction: protocol.Export,
		})
	}, protocol.Config{})

	files, err := target{}.Generate(m)
	if err == nil {
		t.Fatal("struct map keys must be rejected")
	}
	if files != nil {
		t.Error("no files may be produced on rejection")
	}
}

func TestGenerate_ExternalMapping(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustDeclare(protocol.Function{
			Name:      "round",
			Params:    []protocol.Param{{Name: "t", Type: types.Ident("Timestamp")}},
			Ret:       types.Ident("Timestamp"),
			Direction: protocol.Import,
		})
	}, protocol.Config{Features: []string{"time"}}))

	if !strings.Contains(src, "time.Time") {
		t.Error("Timestamp must map to time.Time")
	}
	if !strings.Contains(src, "wire.ReadTimestamp(") {
		t.Error("external decode must delegate to the registry routine")
	}
	if !strings.Contains(src, "\t\"time\"\n") {
		t.Error("external mapping import missing")
	}
}

// Glue that decodes no packed-ref arguments has no use for the layout
// helpers; importing them anyway breaks the build of the generated file.
func TestGenerate_NoLayoutImportWithoutRefArgs(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustDeclare(protocol.Function{
			Name:      "now",
			Ret:       types.Ident("f64"),
			Direction: protocol.Import,
		})
	}, protocol.Config{}))

	if strings.Contains(src, `/layout"`) {
		t.Error("layout must only be imported where packed refs are decoded")
	}
	if !strings.Contains(src, "Now(ctx context.Context) (float64, error)") {
		t.Error("missing sync import method for now")
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
		{"shared struct exports", declSharedStruct},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := generate(t, buildModel(t, tc.build, protocol.Config{}))
			srctest.Check(t, []byte(src))
		})
	}
}

// A self-referential struct reaches itself through Option<Box<...>>.
// Boxing only exists to break the embedding cycle, so the field must
// render as a single pointer and round through the codecs as one.
func TestGenerate_BoxedOptionCollapsesPointer(t *testing.T) {
	src := generate(t, buildModel(t, func(p *protocol.Protocol) {
		p.MustRegister(types.StructOf(types.Ident("Node"),
			types.Field{Name: "value", Type: types.Ident("u32")},
			types.Field{Name: "next", Type: types.IdentOf("Option", types.IdentOf("Box", types.Ident("Node")))},
		))
		p.MustDeclare(protocol.Function{
			Name:      "walk",
			Params:    []protocol.Param{{Name: "head", Type: types.Ident("Node")}},
			Direction: protocol.Export,
		})
	}, protocol.Config{}))

	if !strings.Contains(src, "Next *Node") {
		t.Error("boxed optional self-reference must render as *Node")
	}
	if strings.Contains(src, "**Node") {
		t.Error("boxing must not stack a second pointer")
	}
	srctest.Check(t, []byte(src))
}
