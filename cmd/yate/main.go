// Command yate is a small terminal text editor.
package main

import (
	"fmt"
	"os"
)

// Build information injected via ldflags at build time.
var version = "0.0.1"

func main() {
	if err := newRootCmd(version, os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "yate: %v\n", err)
		os.Exit(1)
	}
}
