// Command gradus is the type-checking core's CLI: check a file against
// its class-based, gradually-typed annotations and print or emit-as-JSON
// the diagnostics it finds.
package main

import (
	"fmt"
	"os"

	"gradus/cmd/gradus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
