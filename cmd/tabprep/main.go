// Package main provides the tabprep command-line interface.
package main

import (
	"os"

	"github.com/tabprep/tabprep/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
