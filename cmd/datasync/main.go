// Command datasync is the command-line client for the DataSync federation API.
package main

import (
	"os"

	"datasync-console/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
