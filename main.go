package main

import (
	"os"

	"github.com/lepinkainen/vault-files/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
