package vault

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	kerrors "github.com/lepinkainen/vault-files/internal/errors"

	"golang.org/x/term"
)

// Tool abstracts the external vault binary's two in-place operations.
// Both either succeed silently or fail with an error; there are no
// partial-success states.
type Tool interface {
	Encrypt(ctx context.Context, path string) error
	Decrypt(ctx context.Context, path string) error
}

// AnsibleVault runs the real ansible-vault binary.
type AnsibleVault struct {
	// Binary is the executable name or path. Defaults to "ansible-vault"
	// when empty.
	Binary string

	// PasswordFile, when set, is passed via --vault-password-file.
	// Without it ansible-vault prompts on the controlling terminal.
	PasswordFile string
}

func (v AnsibleVault) binary() string {
	if v.Binary == "" {
		return "ansible-vault"
	}
	return v.Binary
}

// Check verifies the vault binary is resolvable and that a password
// source exists. Called before any file is touched so a missing
// dependency aborts the whole run up front.
func (v AnsibleVault) Check() error {
	if _, err := exec.LookPath(v.binary()); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrVaultToolNotFound, err)
	}
	if v.PasswordFile != "" {
		if _, err := os.Stat(v.PasswordFile); err != nil {
			return fmt.Errorf("%w: password file %s: %v", kerrors.ErrPasswordUnavailable, v.PasswordFile, err)
		}
		return nil
	}
	// No password file means ansible-vault will prompt. That only works
	// when stdin is a terminal.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("%w: stdin is not a terminal and no password file is configured", kerrors.ErrPasswordUnavailable)
	}
	return nil
}

// Encrypt encrypts the file at path in place.
func (v AnsibleVault) Encrypt(ctx context.Context, path string) error {
	if err := v.run(ctx, "encrypt", path); err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrEncryptFailed, path, err)
	}
	return nil
}

// Decrypt decrypts the file at path in place.
func (v AnsibleVault) Decrypt(ctx context.Context, path string) error {
	if err := v.run(ctx, "decrypt", path); err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrDecryptFailed, path, err)
	}
	return nil
}

func (v AnsibleVault) run(ctx context.Context, op, path string) error {
	args := []string{op}
	if v.PasswordFile != "" {
		args = append(args, "--vault-password-file", v.PasswordFile)
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, v.binary(), args...)
	// The tool's chatter ("Encryption successful") is suppressed; only
	// failures matter here. Stdin stays attached for password prompts.
	cmd.Stdin = os.Stdin
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%v: %s", err, lastLine(msg))
		}
		return err
	}
	return nil
}

// lastLine returns the final non-empty line of s. ansible-vault prints
// its actual error last, after any deprecation warnings.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return s
}
