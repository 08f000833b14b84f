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
	encryptDryRun       bool
	encryptPasswordFile string
)

func init() {
	encryptCmd.Flags().BoolVarP(&encryptDryRun, "dry-run", "n", false, "preview which files would be encrypted without making changes")
	encryptCmd.Flags().StringVar(&encryptPasswordFile, "vault-password-file", "", "vault password file passed through to ansible-vault")
}

func resetEncryptCommandState() {
	encryptDryRun = false
	encryptPasswordFile = ""
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypts every plaintext vault file in place using ansible-vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		spinner, cleanup := startSpinner("Encrypting vault files...")
		defer cleanup()

		Logger.Debugf("Loading repository config")
		cfg, err := config.Load(".")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}

		tool := vault.AnsibleVault{
			Binary:       cfg.VaultBinary,
			PasswordFile: resolvePasswordFile(cfg, encryptPasswordFile),
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
			Mode:   vault.ModeEncrypt,
			DryRun: encryptDryRun,
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
		Logger.Infof("Encrypt command completed: %d processed, %d changed, %d errors",
			result.Processed, result.Changed, result.Errors)

		if encryptDryRun {
			if result.Changed == 0 {
				spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Nothing to encrypt: all %d vault file(s) are already encrypted", result.Processed)
				return nil
			}
			spinner.FinalMSG = fmt.Sprintf("[dry-run] Would encrypt %d of %d vault file(s):", result.Changed, result.Processed) +
				ui.FormatPaths(changed) +
				"No changes made."
			return nil
		}

		if result.Errors > 0 {
			finalMessage := ui.Error.Sprint("✗") + fmt.Sprintf(" Encrypted %d of %d vault file(s), %d failed:", result.Changed, result.Processed, result.Errors) + "\n"
			for _, failure := range failures {
				finalMessage += "    " + ui.Error.Sprint("✗") + " " + failure + "\n"
			}
			spinner.FinalMSG = finalMessage
			return fmt.Errorf("%w: %d of %d", kerrors.ErrFilesFailed, result.Errors, result.Processed)
		}

		if result.Changed == 0 {
			spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Nothing to encrypt: all %d vault file(s) are already encrypted", result.Processed)
			return nil
		}

		finalMessage := ui.Success.Sprint("✓") + fmt.Sprintf(" Encrypted %d vault file(s):", result.Changed) +
			ui.FormatPaths(changed) +
			ui.Info.Sprint("→") + " Vault files are now safe to commit to version control"
		spinner.FinalMSG = finalMessage
		return nil
	},
}
