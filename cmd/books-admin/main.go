// Package main is the entry point for the books-admin CLI.
package main

import (
	"os"

	"github.com/smallbooks/books-admin/cmd/books-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
