package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/lepinkainen/vault-files/internal/config"
	"github.com/lepinkainen/vault-files/internal/ui"
	"github.com/lepinkainen/vault-files/internal/vault"

	"github.com/briandowns/spinner"
)

// discoverOptions maps the repository config onto discovery parameters.
func discoverOptions(cfg *config.Config) vault.DiscoverOptions {
	return vault.DiscoverOptions{
		InventoryFile: cfg.InventoryFile,
		SearchRoot:    cfg.SearchRoot,
		Basename:      cfg.VaultBasename,
		ExtraPatterns: cfg.ExtraPatterns,
	}
}

// resolvePasswordFile picks the vault password file: the command-line flag
// wins over the config file.
func resolvePasswordFile(cfg *config.Config, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.VaultPasswordFile
}

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines: the cleanup
// function calls ui.EnsureNewline() on the final message before printing
// it, keeping output formatting consistent across commands.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
