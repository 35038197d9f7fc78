// Package main provides the CLI for the editable content renderer.
package main

import (
	"os"

	"github.com/leapstack-labs/editable/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
