// Command fitkit manages curve fit configurations and runs them against
// measurement data from the command line.
package main

import (
	"context"
	"os"

	"fitkit/cmd/fitkit/commands"
)

func main() {
	os.Exit(commands.Execute(context.Background()))
}
