package sigcli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/corvid-labs/sigscan/sigdefs"
	"github.com/corvid-labs/sigscan/sigerr"
	"github.com/corvid-labs/sigscan/sigtree"
)

func validateDefsCommand(c *cli.Context) error {
	defsPath := c.String("defs")
	if defsPath == "" {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue},
			"validate-defs: --defs is required")
	}
	defs, err := sigdefs.LoadFile(defsPath)
	if err != nil {
		return err
	}

	scanner := sigtree.NewScanner()
	if err := sigdefs.AddTo(scanner, defs); err != nil {
		return err
	}
	if err := scanner.Prepare(); err != nil {
		return err
	}

	counts := map[sigtree.Anchor]int{}
	for _, sig := range scanner.Signatures() {
		counts[sig.Anchor]++
	}

	kStart, kEnd, kUnbound := scanner.WindowSizes()

	fmt.Printf("signatures: %d\n", len(scanner.Signatures()))
	fmt.Printf("  %-14s count=%d window=%d\n", sigtree.AnchorStartRelative, counts[sigtree.AnchorStartRelative], kStart)
	fmt.Printf("  %-14s count=%d window=%d\n", sigtree.AnchorEndRelative, counts[sigtree.AnchorEndRelative], kEnd)
	fmt.Printf("  %-14s count=%d window=%d\n", sigtree.AnchorUnbound, counts[sigtree.AnchorUnbound], kUnbound)
	return nil
}
