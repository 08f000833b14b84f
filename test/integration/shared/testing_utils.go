// Package shared contains testing utilities shared between integration tests.
// It provides functions for setting up temporary Ansible-style working
// trees, installing a stub ansible-vault binary on PATH, and capturing
// command output.
package shared

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/vault-files/cmd"
)

// VaultHeader is the first line the stub writes to "encrypted" files. It
// matches the marker the real ansible-vault produces.
const VaultHeader = "$ANSIBLE_VAULT;1.1;AES256"

// stubScript fakes ansible-vault's encrypt/decrypt subcommands: encrypt
// prepends the vault header and base64-encodes the body, decrypt reverses
// it. Setting VAULT_STUB_FAIL to a substring makes the stub fail for any
// matching file path, which tests use to inject per-file failures.
const stubScript = `#!/bin/sh
op="$1"
shift
if [ "$1" = "--vault-password-file" ]; then
    shift 2
fi
file="$1"

if [ -n "$VAULT_STUB_FAIL" ] && printf '%s' "$file" | grep -q "$VAULT_STUB_FAIL"; then
    echo "ERROR! stub failure for $file" >&2
    exit 1
fi

case "$op" in
encrypt)
    if head -c 15 "$file" | grep -q 'ANSIBLE_VAULT'; then
        echo "ERROR! input is already encrypted" >&2
        exit 1
    fi
    printf '$ANSIBLE_VAULT;1.1;AES256\n' > "$file.tmp"
    base64 "$file" >> "$file.tmp"
    mv "$file.tmp" "$file"
    ;;
decrypt)
    if ! head -c 15 "$file" | grep -q 'ANSIBLE_VAULT'; then
        echo "ERROR! input is not vault encrypted data" >&2
        exit 1
    fi
    tail -n +2 "$file" | base64 -d > "$file.tmp"
    mv "$file.tmp" "$file"
    ;;
*)
    echo "ERROR! unknown operation $op" >&2
    exit 2
    ;;
esac
`

// SetupTestEnvironment creates a temp working tree, changes into it, and
// installs the stub ansible-vault plus a password file. Returns the tree
// root and the password file path. Cleanup restores the original working
// directory automatically.
func SetupTestEnvironment(t *testing.T) (string, string) {
	t.Helper()

	tempDir := t.TempDir()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
	})

	binDir := filepath.Join(tempDir, ".test-bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatalf("Failed to create stub bin directory: %v", err)
	}
	stubPath := filepath.Join(binDir, "ansible-vault")
	// #nosec G306 -- the stub must be executable.
	if err := os.WriteFile(stubPath, []byte(stubScript), 0755); err != nil {
		t.Fatalf("Failed to write stub ansible-vault: %v", err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	passwordFile := filepath.Join(tempDir, ".vault-pass")
	if err := os.WriteFile(passwordFile, []byte("test-password\n"), 0600); err != nil {
		t.Fatalf("Failed to write password file: %v", err)
	}

	return tempDir, passwordFile
}

// WriteTree writes files relative to root, creating parent directories.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		// #nosec G306 -- test fixtures need to be modifiable.
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
}

// RunCommand executes the CLI with the given arguments, returning the
// combined stdout/stderr output and the command error.
func RunCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	if args == nil {
		// cobra falls back to os.Args when args is nil, which under go
		// test would pick up the test binary's flags.
		args = []string{}
	}
	var runErr error
	output := CaptureOutput(func() {
		cmd.ResetGlobalState()
		root := cmd.GetRootCmd()
		root.SetArgs(args)
		runErr = root.Execute()
	})
	return output, runErr
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func()) string {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		outputChan <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		outputChan <- buf.String()
	}()

	fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-outputChan + <-outputChan
}
