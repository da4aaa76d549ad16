package sigdefs

import (
	"encoding/hex"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/corvid-labs/sigscan/sigerr"
)

// tomlFile mirrors a definitions file shaped like:
//
//	[[signature]]
//	id = "elf_magic"
//	offset = 0
//	anchor = "start"
//	pattern = "7f454c46"
type tomlFile struct {
	Signature []tomlSignature `toml:"signature"`
}

type tomlSignature struct {
	ID      string `toml:"id"`
	Offset  int    `toml:"offset"`
	Anchor  string `toml:"anchor"`
	Pattern string `toml:"pattern"`
}

// LoadTOML parses a TOML definitions document into Definitions.
func LoadTOML(r io.Reader) ([]Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.ReadFailed}, err,
			"reading TOML definitions")
	}

	var file tomlFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
			"parsing TOML definitions")
	}

	defs := make([]Definition, 0, len(file.Signature))
	for i, s := range file.Signature {
		anchor, err := parseAnchor(s.Anchor)
		if err != nil {
			return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
				"signature[%d] (%q)", i, s.ID)
		}
		pattern, err := hex.DecodeString(s.Pattern)
		if err != nil {
			return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData}, err,
				"signature[%d] (%q): invalid hex pattern %q", i, s.ID, s.Pattern)
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
