// Package main is the entry point for the pricebook CLI.
package main

import (
	"os"

	"pricebook/cmd/cli/cmd"
	"pricebook/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
