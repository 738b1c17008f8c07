// Command hulkc is the HULK compiler's command-line entry point.
package main

import (
	"os"

	"github.com/hulklang/hulkc/cmd/hulkc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
