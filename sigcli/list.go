package sigcli

import (
	"fmt"

	"github.com/hbollon/go-edlib"
	"github.com/urfave/cli/v2"

	"github.com/corvid-labs/sigscan/sigdefs"
	"github.com/corvid-labs/sigscan/sigerr"
	"github.com/corvid-labs/sigscan/sigtree"
)

func listCommand(c *cli.Context) error {
	defsPath := c.String("defs")
	if defsPath == "" {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue},
			"list: --defs is required")
	}
	defs, err := sigdefs.LoadFile(defsPath)
	if err != nil {
		return err
	}

	scanner := sigtree.NewScanner()
	if err := addWithSuggestions(scanner, defs); err != nil {
		return err
	}

	for _, sig := range scanner.Signatures() {
		fmt.Printf("%-20s anchor=%-14s offset=%-6d pattern=%x\n",
			sig.Identifier, sig.Anchor, sig.Offset, sig.Pattern)
	}
	return nil
}

// addWithSuggestions registers defs one at a time, and on a duplicate
// identifier, suggests the closest already-registered identifier by
// Jaro-Winkler similarity.
func addWithSuggestions(scanner *sigtree.Scanner, defs []sigdefs.Definition) error {
	var seen []string
	for _, d := range defs {
		err := scanner.AddSignature(d.Identifier, d.Pattern, d.Offset, d.Anchor)
		if err != nil {
			if sigerr.Is(err, sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.ValueAlreadySet}) {
				if suggestion, ok := closestIdentifier(d.Identifier, seen); ok {
					return sigerr.Wrap(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.ValueAlreadySet}, err,
						"did you mean to edit %q instead of redeclaring %q?", suggestion, d.Identifier)
				}
			}
			return err
		}
		seen = append(seen, d.Identifier)
	}
	return nil
}

func closestIdentifier(id string, candidates []string) (string, bool) {
	best := ""
	bestScore := -1.0
	for _, c := range candidates {
		if c == id {
			continue
		}
		score, err := edlib.StringsSimilarity(id, c, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if float64(score) > bestScore {
			bestScore = float64(score)
			best = c
		}
	}
	return best, bestScore >= 0
}
