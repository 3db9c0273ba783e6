// Package main provides the insurebook CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/insurebook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
