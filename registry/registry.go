package registry

import (
	"sort"

	"github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/types"
)

// Flag gates one compatibility feature. A declared type whose name matches
// an entry behind a disabled flag is a configuration error, never a
// structural fallback.
type Flag string

const (
	FlagBytes Flag = "bytes" // binary blob mapping (ByteBuf)
	FlagTime  Flag = "time"  // timestamp mapping (Timestamp)
	FlagHTTP  Flag = "http"  // HTTP request/response shapes
	FlagValue Flag = "value" // dynamic/opaque value mapping
)

// TargetMapping tells one code generator how to speak about an external
// type: the identifier to use, extra imports it needs, and the shared
// codec routines that encode and decode it. For the Go targets EncodeFn
// names a `func(*wire.Writer, T) error` and DecodeFn a
// `func(*wire.Reader) (T, error)`.
type TargetMapping struct {
	TypeName string
	Imports  []string
	EncodeFn string
	DecodeFn string
}

// Entry is one external type with a fixed encoding recipe. External types
// are never structurally expanded; generation delegates to the codec
// routines named here.
type Entry struct {
	Ident   types.TypeIdent
	Flag    Flag
	Doc     string
	Targets map[string]TargetMapping
}

// Registry resolves declared type names against the set of known external
// types, honoring the enabled feature flags.
type Registry struct {
	enabled map[Flag]bool
	entries map[string]Entry
}

// New builds a registry with the built-in entries and the given flags
// enabled.
func New(flags ...Flag) *Registry {
	r := &Registry{
		enabled: make(map[Flag]bool, len(flags)),
		entries: make(map[string]Entry),
	}
	for _, f := range flags {
		r.enabled[f] = true
	}
	for _, e := range builtinEntries() {
		r.entries[e.Ident.String()] = e
	}
	return r
}

// FromFeatures builds a registry from feature names as they appear in a
// generation config. Unknown names fail rather than being ignored.
func FromFeatures(features []string) (*Registry, error) {
	flags := make([]Flag, 0, len(features))
	for _, name := range features {
		switch f := Flag(name); f {
		case FlagBytes, FlagTime, FlagHTTP, FlagValue:
			flags = append(flags, f)
		default:
			return nil, errors.InvalidInput(errors.PhaseRegister, "unknown feature flag "+name)
		}
	}
	return New(flags...), nil
}

// Register adds or replaces a provider entry. Entries registered here are
// implicitly enabled.
func (r *Registry) Register(e Entry) {
	r.entries[e.Ident.String()] = e
	r.enabled[e.Flag] = true
}

// Enabled reports whether a flag is active.
func (r *Registry) Enabled(f Flag) bool {
	return r.enabled[f]
}

// Lookup returns the entry for a type name regardless of flag state.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Resolve returns the entry for a declared type name. A name matching an
// entry whose flag is disabled fails with a configuration error so the
// type is never partially expanded.
func (r *Registry) Resolve(name string) (Entry, bool, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, false, nil
	}
	if !r.enabled[e.Flag] {
		return Entry{}, false, errors.FlagDisabled(name, string(e.Flag))
	}
	return e, true, nil
}

// Entries returns every known entry sorted by name, for inspection output.
func (r *Registry) Entries() []Entry {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		out = append(out, r.entries[name])
	}
	return out
}

func builtinEntries() []Entry {
	return []Entry{
		{
			Ident: types.Ident("ByteBuf"),
			Flag:  FlagBytes,
			Doc:   "raw binary blob, length-prefixed on the wire",
			Targets: map[string]TargetMapping{
				"gohost": {
					TypeName: "[]byte",
					EncodeFn: "wire.WriteByteBuf",
					DecodeFn: "wire.ReadByteBuf",
				},
				"goplugin": {
					TypeName: "[]byte",
					EncodeFn: "wire.WriteByteBuf",
					DecodeFn: "wire.ReadByteBuf",
				},
			},
		},
		{
			Ident: types.Ident("Timestamp"),
			Flag:  FlagTime,
			Doc:   "point in time, RFC 3339 string on the wire",
			Targets: map[string]TargetMapping{
				"gohost": {
					TypeName: "time.Time",
					Imports:  []string{"time"},
					EncodeFn: "wire.WriteTimestamp",
					DecodeFn: "wire.ReadTimestamp",
				},
				"goplugin": {
					TypeName: "time.Time",
					Imports:  []string{"time"},
					EncodeFn: "wire.WriteTimestamp",
					DecodeFn: "wire.ReadTimestamp",
				},
			},
		},
		{
			Ident: types.Ident("Value"),
			Flag:  FlagValue,
			Doc:   "dynamic self-describing value, any wire shape",
			Targets: map[string]TargetMapping{
				"gohost": {
					TypeName: "wire.Value",
					EncodeFn: "wire.WriteValue",
					DecodeFn: "wire.ReadValue",
				},
				"goplugin": {
					TypeName: "wire.Value",
					EncodeFn: "wire.WriteValue",
					DecodeFn: "wire.ReadValue",
				},
			},
		},
		{
			Ident: types.Ident("HTTPRequest"),
			Flag:  FlagHTTP,
			Doc:   "HTTP-like request shape: method, url, headers, body",
			Targets: map[string]TargetMapping{
				"gohost": {
					TypeName: "wire.HTTPRequest",
					EncodeFn: "wire.WriteHTTPRequest",
					DecodeFn: "wire.ReadHTTPRequest",
				},
				"goplugin": {
					TypeName: "wire.HTTPRequest",
					EncodeFn: "wire.WriteHTTPRequest",
					DecodeFn: "wire.ReadHTTPRequest",
				},
			},
		},
		{
			Ident: types.Ident("HTTPResponse"),
			Flag:  FlagHTTP,
			Doc:   "HTTP-like response shape: status, headers, body",
			Targets: map[string]TargetMapping{
				"gohost": {
					TypeName: "wire.HTTPResponse",
					EncodeFn: "wire.WriteHTTPResponse",
					DecodeFn: "wire.ReadHTTPResponse",
				},
				"goplugin": {
					TypeName: "wire.HTTPResponse",
					EncodeFn: "wire.WriteHTTPResponse",
					DecodeFn: "wire.ReadHTTPResponse",
				},
			},
		},
	}
}
