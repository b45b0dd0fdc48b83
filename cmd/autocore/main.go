// Command autocore records processor core build configurations and runs the
// build tool against them.
package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/autocore/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
