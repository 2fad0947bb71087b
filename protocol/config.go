package protocol

// Config enumerates everything one generation invocation needs beyond the
// declarations themselves: which targets to emit, which compatibility
// features are enabled, and output naming.
type Config struct {
	// ModuleName names the generated source units; defaults to the
	// protocol name when empty.
	ModuleName string
	// Targets lists the output targets to generate ("gohost", "goplugin").
	Targets []string
	// Features enables compatibility-registry entries by flag name
	// ("bytes", "time", "http", "value").
	Features []string
	// HostImportPath is the Go import path generated host bindings use to
	// reach the runtime shim packages.
	HostImportPath string
	// StrictCancellation makes generated bridge code surface a resolution
	// arriving for a cancelled handle instead of silently discarding it.
	StrictCancellation bool
}

// HasFeature reports whether the named feature flag is enabled.
func (c Config) HasFeature(name string) bool {
	for _, f := range c.Features {
		if f == name {
			return true
		}
	}
	return false
}

// HasTarget reports whether the named output target was requested.
func (c Config) HasTarget(name string) bool {
	for _, t := range c.Targets {
		if t == name {
			return true
		}
	}
	return false
}
