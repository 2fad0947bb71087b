package fpbindgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sagudev/fp-bindgen/codegen"
	"github.com/sagudev/fp-bindgen/protocol"
	"github.com/sagudev/fp-bindgen/types"
)

func exampleProtocol(t *testing.T) *protocol.Protocol {
	t.Helper()
	p := protocol.New("example")
	p.MustRegister(types.StructOf(types.Ident("Point"),
		types.Field{Name: "x", Type: types.Ident("f64")},
		types.Field{Name: "y", Type: types.Ident("f64")},
	))
	p.MustDeclare(protocol.Function{
		Name: "translate",
		Params: []protocol.Param{
			{Name: "p", Type: types.Ident("Point")},
			{Name: "by", Type: types.Ident("Point")},
		},
		Ret:       types.Ident("Point"),
		Direction: protocol.Export,
	})
	return p
}

func TestGenerate_BothTargets(t *testing.T) {
	files, err := Generate(exampleProtocol(t), protocol.Config{
		Targets: []string{"gohost", "goplugin"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}

	byPath := make(map[string]string, len(files))
	for _, f := range files {
		byPath[f.Path] = string(f.Contents)
	}
	host, ok := byPath["example_bindings.go"]
	if !ok {
		t.Fatal("missing host bindings file")
	}
	plugin, ok := byPath["example_plugin.go"]
	if !ok {
		t.Fatal("missing plugin bindings file")
	}

	// both sides agree on the boundary symbol and the value shape
	for name, src := range map[string]string{"host": host, "plugin": plugin} {
		if !strings.Contains(src, "__fp_gen_translate") {
			t.Errorf("%s output lost the boundary symbol", name)
		}
		if !strings.Contains(src, "type Point struct {") {
			t.Errorf("%s output missing the declared struct", name)
		}
	}
}

func TestGenerate_UnknownTarget(t *testing.T) {
	_, err := Generate(exampleProtocol(t), protocol.Config{
		Targets: []string{"fortran"},
	})
	if err == nil {
		t.Fatal("unknown target must fail Generate")
	}
}

func TestGenerateDocument_EndToEnd(t *testing.T) {
	doc := `
name: example
targets: [gohost]
functions:
  - name: greet
    direction: export
    params:
      - {name: name, type: string}
    returns: string
`
	path := filepath.Join(t.TempDir(), "protocol.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := GenerateDocument(path)
	if err != nil {
		t.Fatalf("GenerateDocument failed: %v", err)
	}
	if len(files) != 1 || files[0].Path != "example_bindings.go" {
		t.Fatalf("unexpected output set: %+v", filePaths(files))
	}

	dir := t.TempDir()
	if err := WriteFiles(dir, files); err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "example_bindings.go")); err != nil {
		t.Fatalf("written file missing: %v", err)
	}
}

func filePaths(files []codegen.File) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}
