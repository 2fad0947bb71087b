package fpbindgen

import (
	"os"
	"path/filepath"

	"github.com/sagudev/fp-bindgen/codegen"
	_ "github.com/sagudev/fp-bindgen/codegen/gohost"
	_ "github.com/sagudev/fp-bindgen/codegen/goplugin"
	"github.com/sagudev/fp-bindgen/project"
	"github.com/sagudev/fp-bindgen/protocol"
)

// Generate resolves a protocol and renders every requested target.
// It is the programmatic equivalent of `bindgen generate`.
func Generate(proto *protocol.Protocol, cfg protocol.Config) ([]codegen.File, error) {
	m, err := codegen.NewModel(proto, cfg)
	if err != nil {
		return nil, err
	}
	return codegen.Generate(m)
}

// GenerateDocument loads a protocol document and renders its targets.
func GenerateDocument(path string) ([]codegen.File, error) {
	doc, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	proto, cfg, err := doc.Build()
	if err != nil {
		return nil, err
	}
	return Generate(proto, cfg)
}

// WriteFiles writes generated files under dir, creating it if needed.
func WriteFiles(dir string, files []codegen.File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.Path), f.Contents, 0o644); err != nil {
			return err
		}
	}
	return nil
}
