package cmd

import (
	"errors"

	logger "github.com/lepinkainen/vault-files/internal/logging"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	rootCmd = &cobra.Command{
		Use:   "vault-files",
		Short: "Bulk encrypt and decrypt Ansible Vault files",
		Long: `vault-files keeps an Ansible repository's secret files in a known
encryption state. It locates the production inventory and every vault.yml
under the inventory tree, then drives ansible-vault over the whole set in
one pass, skipping files that are already in the requested state.

Usage:
  vault-files <encrypt|decrypt|status> [flags]

Run 'vault-files help <command>' for details on a specific command.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing vault-files with verbose=%t, debug=%t", verbose, debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Invoked without a subcommand: a mode is required.
			_ = cmd.Help()
			return errors.New("a command is required: encrypt, decrypt, or status")
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. The caller maps a non-nil error to a
// nonzero exit status.
func Execute() error {
	return rootCmd.Execute()
}

// Helper functions for testing

// GetRootCmd returns the root command for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEncryptCommandState()
	resetDecryptCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
