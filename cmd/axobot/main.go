// Package main is the entry point for the axobot CLI.
package main

import (
	"os"

	"github.com/axobot/axobot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
