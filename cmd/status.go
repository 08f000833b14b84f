package cmd

import (
	"fmt"

	"github.com/lepinkainen/vault-files/internal/config"
	"github.com/lepinkainen/vault-files/internal/ui"
	"github.com/lepinkainen/vault-files/internal/vault"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the encryption state of every vault-managed file",
	Long: `Reports each candidate file as encrypted, plaintext, or missing
without modifying anything. Plaintext files are the ones that must not be
committed; run 'vault-files encrypt' to fix them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")
		spinner, cleanup := startSpinner("Inspecting vault files...")
		defer cleanup()

		Logger.Debugf("Loading repository config")
		cfg, err := config.Load(".")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}

		files, err := vault.Discover(".", discoverOptions(cfg))
		if err != nil {
			return Logger.ErrorfAndReturn("failed to find vault files: %v", err)
		}
		if len(files) == 0 {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " No vault-managed files found"
			return nil
		}

		var encrypted, plaintext int
		finalMessage := ""
		for _, path := range files {
			state := vault.StateOf(path)
			switch state {
			case vault.StateEncrypted:
				encrypted++
				finalMessage += "    " + ui.Success.Sprint("✓") + " " + ui.Path.Sprint(path) + " " + ui.Muted.Sprint(state) + "\n"
			case vault.StatePlaintext:
				plaintext++
				finalMessage += "    " + ui.Error.Sprint("✗") + " " + ui.Path.Sprint(path) + " " + ui.Warning.Sprint(state) + "\n"
			default:
				finalMessage += "    " + ui.Muted.Sprint("-") + " " + ui.Path.Sprint(path) + " " + ui.Muted.Sprint(state) + "\n"
			}
		}

		if plaintext > 0 {
			finalMessage += ui.Warning.Sprint("!") + fmt.Sprintf(" %d of %d vault file(s) are plaintext\n", plaintext, len(files)) +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("vault-files encrypt") + " before committing"
		} else {
			finalMessage += ui.Success.Sprint("✓") + fmt.Sprintf(" All %d vault file(s) are encrypted", encrypted)
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
