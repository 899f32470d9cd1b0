// Package main is the entry point for the lender-quote CLI.
package main

import (
	"os"

	"lender-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
