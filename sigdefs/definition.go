// Package sigdefs loads signature definitions from the three on-disk
// formats sigscan accepts — a plain tab-separated format, TOML, and
// schema-validated JSON — and registers them with a sigtree.Scanner.
package sigdefs

import (
	"github.com/corvid-labs/sigscan/sigerr"
	"github.com/corvid-labs/sigscan/sigtree"
)

// Definition is the format-independent shape every loader produces before
// handing off to a Scanner.
type Definition struct {
	Identifier string
	Pattern    []byte
	Offset     int
	Anchor     sigtree.Anchor
}

// AddTo registers every definition with scanner, stopping at the first
// error (typically a duplicate identifier or an invalid anchor/offset
// combination).
func AddTo(scanner *sigtree.Scanner, defs []Definition) error {
	for _, d := range defs {
		if err := scanner.AddSignature(d.Identifier, d.Pattern, d.Offset, d.Anchor); err != nil {
			return err
		}
	}
	return nil
}

func parseAnchor(s string) (sigtree.Anchor, error) {
	switch s {
	case "start", "start_relative":
		return sigtree.AnchorStartRelative, nil
	case "end", "end_relative":
		return sigtree.AnchorEndRelative, nil
	case "unbound":
		return sigtree.AnchorUnbound, nil
	default:
		return 0, sigerr.New(sigerr.Kind{Domain: sigerr.Input, Code: sigerr.InvalidData},
			"unrecognised anchor %q (want start, end, or unbound)", s)
	}
}
