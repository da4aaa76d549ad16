// Command sigscan is the entry point for the byte-signature scanning CLI.
package main

import (
	"fmt"
	"os"

	"github.com/corvid-labs/sigscan/sigcli"
)

func main() {
	app := sigcli.NewApp()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
