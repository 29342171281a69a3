// Command modelgate is the entry point for the modelgate CLI.
package main

import (
	"fmt"
	"os"

	"github.com/modelgate/modelgate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
