package cmd

import (
	"fmt"

	"github.com/lepinkainen/vault-files/internal/config"
	kerrors "github.com/lepinkainen/vault-files/internal/errors"
	"github.com/lepinkainen/vault-files/internal/ui"
	"github.com/lepinkainen/vault-files/internal/vault"

	"github.com/spf13/cobra"
)

var (
	decryptDryRun       bool
	decryptPasswordFile string
)

func init() {
	decryptCmd.Flags().BoolVarP(&decryptDryRun, "dry-run", "n", false, "preview which files would be decrypted without making changes")
	decryptCmd.Flags().StringVar(&decryptPasswordFile, "vault-password-file", "", "vault password file passed through to ansible-vault")
}

func resetDecryptCommandState() {
	decryptDryRun = false
	decryptPasswordFile = ""
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypts every encrypted vault file in place for local editing",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		spinner, cleanup := startSpinner("Decrypting vault files...")
		defer cleanup()

		Logger.Debugf("Loading repository config")
		cfg, err := config.Load(".")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}

		tool := vault.AnsibleVault{
			Binary:       cfg.VaultBinary,
			PasswordFile: resolvePasswordFile(cfg, decryptPasswordFile),
		}
		Logger.Debugf("Checking for %s on PATH", cfg.VaultBinary)
		if err := tool.Check(); err != nil {
			finalMessage := ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
				ui.Info.Sprint("→") + " Install Ansible or set " + ui.Code.Sprint("vault_binary") + " in " + ui.Path.Sprint(config.FileName)
			spinner.FinalMSG = finalMessage
			return err
		}

		Logger.Debugf("Searching for vault files under %s", cfg.SearchRoot)
		files, err := vault.Discover(".", discoverOptions(cfg))
		if err != nil {
			return Logger.ErrorfAndReturn("failed to find vault files: %v", err)
		}
		Logger.Debugf("Found %d candidate files", len(files))
		if len(files) == 0 {
			finalMessage := ui.Error.Sprint("✗") + " No vault-managed files found, nothing to process"
			spinner.FinalMSG = finalMessage
			return nil
		}

		var changed []string
		var failures []string
		runner := vault.Runner{
			Tool:   tool,
			Mode:   vault.ModeDecrypt,
			DryRun: decryptDryRun,
			Logger: Logger,
			OnResult: func(path string, outcome vault.Outcome, err error) {
				switch outcome {
				case vault.OutcomeChanged:
					changed = append(changed, path)
				case vault.OutcomeFailed:
					failures = append(failures, err.Error())
				}
			},
		}

		result := runner.Run(cmd.Context(), files)
		Logger.Infof("Decrypt command completed: %d processed, %d changed, %d errors",
			result.Processed, result.Changed, result.Errors)

		if decryptDryRun {
			if result.Changed == 0 {
				spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Nothing to decrypt: all %d vault file(s) are already plaintext", result.Processed)
				return nil
			}
			spinner.FinalMSG = fmt.Sprintf("[dry-run] Would decrypt %d of %d vault file(s):", result.Changed, result.Processed) +
				ui.FormatPaths(changed) +
				"No changes made."
			return nil
		}

		if result.Errors > 0 {
			finalMessage := ui.Error.Sprint("✗") + fmt.Sprintf(" Decrypted %d of %d vault file(s), %d failed:", result.Changed, result.Processed, result.Errors) + "\n"
			for _, failure := range failures {
				finalMessage += "    " + ui.Error.Sprint("✗") + " " + failure + "\n"
			}
			if result.Changed > 0 {
				finalMessage += decryptAdvisory()
			}
			spinner.FinalMSG = finalMessage
			return fmt.Errorf("%w: %d of %d", kerrors.ErrFilesFailed, result.Errors, result.Processed)
		}

		if result.Changed == 0 {
			spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Nothing to decrypt: all %d vault file(s) are already plaintext", result.Processed)
			return nil
		}

		finalMessage := ui.Success.Sprint("✓") + fmt.Sprintf(" Decrypted %d vault file(s):", result.Changed) +
			ui.FormatPaths(changed) +
			decryptAdvisory()
		spinner.FinalMSG = finalMessage
		return nil
	},
}

// decryptAdvisory reminds the user that plaintext secrets are now on disk.
// Advisory only: the pre-commit hook is what actually blocks a commit.
func decryptAdvisory() string {
	return ui.Warning.Sprint("!") + " Decrypted files contain plaintext secrets.\n" +
		ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("vault-files encrypt") + " before committing to version control"
}
