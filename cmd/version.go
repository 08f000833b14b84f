package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the vault-files version",
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewFigure("vault-files", "", true)
		banner.Print()
		fmt.Printf("vault-files %s\n", Version)
	},
}
