package sigdefs

import (
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/corvid-labs/sigscan/sigerr"
)

type jsonDocument struct {
	Signatures []jsonSignature `json:"signatures"`
}

type jsonSignature struct {
	ID      string `json:"id"`
	Offset  int    `json:"offset"`
	Anchor  string `json:"anchor"`
	Pattern string `json:"pattern"`
}

// LoadJSON parses and schema-validates a JSON definitions document of the
// form {"signatures": [{"id": ..., "offset": ..., "anchor": ..., "pattern": "hex"}]}.
func LoadJSON(r io.Reader) ([]Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.ReadFailed}, err,
			"reading JSON definitions")
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
			"parsing JSON definitions")
	}

	resolved, err := Schema.Resolve(nil)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.InitializeFailed}, err,
			"resolving definitions JSON schema")
	}
	if err := resolved.Validate(instance); err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
			"JSON definitions failed schema validation")
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
			"decoding JSON definitions")
	}

	defs := make([]Definition, 0, len(doc.Signatures))
	for i, s := range doc.Signatures {
		anchor, err := parseAnchor(s.Anchor)
		if err != nil {
			return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
				"signatures[%d] (%q)", i, s.ID)
		}
		pattern, err := hex.DecodeString(s.Pattern)
		if err != nil {
			return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
				"signatures[%d] (%q): invalid hex pattern %q", i, s.ID, s.Pattern)
		}
		defs = append(defs, Definition{
			Identifier: s.ID,
			Pattern:    pattern,
			Offset:     s.Offset,
			Anchor:     anchor,
		})
	}
	return defs, nil
}
