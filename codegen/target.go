package codegen

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/sagudev/fp-bindgen/errors"
)

// File is one generated source unit. Path is relative to the output
// directory chosen by the caller.
type File struct {
	Path     string
	Contents []byte
}

// Target renders a model into source files for one output language.
// Implementations must be deterministic: the same model yields
// byte-identical files on every call.
type Target interface {
	Name() string
	Generate(m *Model) ([]File, error)
}

var (
	targetsMu sync.RWMutex
	targets   = make(map[string]Target)
)

// RegisterTarget makes a target available by name. Target packages call
// this from init; registering the same name twice panics.
func RegisterTarget(t Target) {
	targetsMu.Lock()
	defer targetsMu.Unlock()
	if _, dup := targets[t.Name()]; dup {
		panic("codegen: duplicate target " + t.Name())
	}
	targets[t.Name()] = t
}

// LookupTarget returns the registered target with the given name.
func LookupTarget(name string) (Target, bool) {
	targetsMu.RLock()
	defer targetsMu.RUnlock()
	t, ok := targets[name]
	return t, ok
}

// TargetNames returns the registered target names, sorted.
func TargetNames() []string {
	targetsMu.RLock()
	defer targetsMu.RUnlock()
	names := make([]string, 0, len(targets))
	for n := range targets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Generate runs every target the model's configuration requests, in the
// order requested. Generation is all-or-nothing: if any target fails, no
// files are returned.
func Generate(m *Model) ([]File, error) {
	var out []File
	for _, name := range m.Config.Targets {
		t, ok := LookupTarget(name)
		if !ok {
			return nil, errors.InvalidInput(errors.PhaseGenerate, "unknown target "+name)
		}
		files, err := t.Generate(m)
		if err != nil {
			return nil, err
		}
		Logger().Info("target generated",
			zap.String("target", name),
			zap.Int("files", len(files)))
		out = append(out, files...)
	}
	return out, nil
}
