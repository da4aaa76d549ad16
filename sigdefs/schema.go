package sigdefs

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/corvid-labs/sigscan/sigerr"
)

// Schema describes the shape LoadJSON requires before it ever looks at
// field values. It is exported so the JSON definitions format can be
// both validated against and self-documented from the same source of
// truth (see sigcli's schema command).
var Schema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"signatures": {
			Type: "array",
			Items: &jsonschema.Schema{
				Type:     "object",
				Required: []string{"id", "anchor", "pattern"},
				Properties: map[string]*jsonschema.Schema{
					"id":      {Type: "string"},
					"offset":  {Type: "integer"},
					"anchor":  {Type: "string", Enum: []any{"start", "end", "unbound"}},
					"pattern": {Type: "string", Description: "hex-encoded literal byte pattern"},
				},
			},
		},
	},
	Required: []string{"signatures"},
}

// SchemaJSON renders Schema as indented JSON for display, e.g. by the
// sigscan schema command.
func SchemaJSON() (string, error) {
	data, err := json.MarshalIndent(Schema, "", "  ")
	if err != nil {
		return "", sigerr.Wrap(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.InitializeFailed}, err,
			"marshaling JSON definitions schema")
	}
	return string(data), nil
}
