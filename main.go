// ABOUTME: Entry point for the teambuilder CLI
// ABOUTME: Terminal client for the Pokemon Team Builder API and PokeAPI catalog

package main

import (
	"fmt"
	"os"

	"github.com/pokebuild/teambuilder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
