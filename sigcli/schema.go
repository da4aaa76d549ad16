package sigcli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/corvid-labs/sigscan/sigdefs"
)

func schemaCommand(c *cli.Context) error {
	out, err := sigdefs.SchemaJSON()
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
