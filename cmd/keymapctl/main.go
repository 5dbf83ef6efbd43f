// Package main is keymapctl, the maintenance tool for rebind keymaps. It
// lists, searches and edits bindings outside the running engine, shares
// keymaps as JSON or YAML and reads the change journal.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
