package project

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/sagudev/fp-bindgen/errors"
)

// Schema returns the JSON schema of the document format, suitable for
// editor integration and for validating documents out of band.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&Document{})
	schema.Title = "protocol document"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRegister, errors.KindInvalidData,
			err, "marshaling document schema")
	}
	return data, nil
}
