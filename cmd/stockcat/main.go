// Command stockcat consolidates CSV stock inventories and exports summary
// reports.
package main

import (
	"os"

	"github.com/vegasq/stockcat/cli"
)

func main() {
	os.Exit(cli.Execute())
}
