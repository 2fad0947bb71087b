package project

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sagudev/fp-bindgen/errors"
)

// validate is a package-level singleton; constructing a validator is
// expensive and the instance is safe for concurrent use.
var validate = validator.New()

// Document is the on-disk form of a protocol plus its generation
// settings. Field names follow the YAML/JSON key casing of the file
// format rather than Go casing.
type Document struct {
	// Name is the protocol name; it also names the generated source units
	// unless Module overrides it.
	Name string `yaml:"name" json:"name" validate:"required"`
	// Module overrides the output unit name.
	Module string `yaml:"module,omitempty" json:"module,omitempty"`
	// Targets lists the outputs to generate, e.g. gohost and goplugin.
	Targets []string `yaml:"targets" json:"targets" validate:"required,min=1,dive,required"`
	// Features enables compatibility-registry entries by flag name.
	Features []string `yaml:"features,omitempty" json:"features,omitempty" validate:"dive,oneof=bytes time http value"`
	// HostImportPath is the Go import path generated host bindings use to
	// reach the runtime shim packages.
	HostImportPath string `yaml:"host_import_path,omitempty" json:"host_import_path,omitempty"`
	// StrictCancellation makes a resolution arriving for a cancelled
	// handle an error instead of a silent discard.
	StrictCancellation bool `yaml:"strict_cancellation,omitempty" json:"strict_cancellation,omitempty"`

	Types     []TypeDecl     `yaml:"types,omitempty" json:"types,omitempty" validate:"dive"`
	Functions []FunctionDecl `yaml:"functions" json:"functions" validate:"required,min=1,dive"`
}

// TypeDecl declares one named type. Kind selects which payload fields
// apply: struct uses Fields, enum uses Variants, alias uses Of.
// Container shapes (List, Map, Option, Result, Box) are never declared;
// they are written inline in type references.
type TypeDecl struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Kind string `yaml:"kind" json:"kind" validate:"required,oneof=struct enum alias"`
	// Of names the referent of an alias.
	Of string `yaml:"of,omitempty" json:"of,omitempty" validate:"required_if=Kind alias"`
	// Params marks the declaration as a generic template; references must
	// bind every parameter.
	Params   []string      `yaml:"params,omitempty" json:"params,omitempty"`
	Fields   []FieldDecl   `yaml:"fields,omitempty" json:"fields,omitempty" validate:"dive"`
	Variants []VariantDecl `yaml:"variants,omitempty" json:"variants,omitempty" validate:"dive"`
	Doc      []string      `yaml:"doc,omitempty" json:"doc,omitempty"`
}

// FieldDecl is one named struct or named-payload-variant member.
type FieldDecl struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Type string `yaml:"type" json:"type" validate:"required"`
	// Default is an optional literal rendered verbatim by generators.
	Default string   `yaml:"default,omitempty" json:"default,omitempty"`
	Doc     []string `yaml:"doc,omitempty" json:"doc,omitempty"`
}

// VariantDecl is one enum case. A case with neither Tuple nor Fields is
// a unit variant; setting both is rejected at build time.
type VariantDecl struct {
	Name   string      `yaml:"name" json:"name" validate:"required"`
	Tuple  []string    `yaml:"tuple,omitempty" json:"tuple,omitempty"`
	Fields []FieldDecl `yaml:"fields,omitempty" json:"fields,omitempty" validate:"dive"`
	Doc    []string    `yaml:"doc,omitempty" json:"doc,omitempty"`
}

// FunctionDecl declares one signature. Direction is relative to the
// plugin: import means the plugin calls the host, export the reverse.
type FunctionDecl struct {
	Name      string      `yaml:"name" json:"name" validate:"required"`
	Direction string      `yaml:"direction" json:"direction" validate:"required,oneof=import export"`
	Async     bool        `yaml:"async,omitempty" json:"async,omitempty"`
	Params    []ParamDecl `yaml:"params,omitempty" json:"params,omitempty" validate:"dive"`
	// Returns is empty for functions without a return value.
	Returns string   `yaml:"returns,omitempty" json:"returns,omitempty"`
	Doc     []string `yaml:"doc,omitempty" json:"doc,omitempty"`
}

// ParamDecl is one named function parameter.
type ParamDecl struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Type string `yaml:"type" json:"type" validate:"required"`
}

// Load reads and parses a document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRegister, errors.KindInvalidInput,
			err, "reading protocol document")
	}
	return Parse(data)
}

// Parse decodes document bytes and runs structural validation. JSON
// input parses unchanged since JSON is a YAML subset.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.PhaseRegister, errors.KindInvalidData,
			err, "parsing protocol document")
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, errors.Wrap(errors.PhaseRegister, errors.KindInvalidInput,
			err, "validating protocol document")
	}
	return &doc, nil
}
