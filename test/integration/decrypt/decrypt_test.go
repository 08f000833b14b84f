package decrypt_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lepinkainen/vault-files/test/integration/shared"
)

// TestDecrypt_RoundTrip encrypts a plaintext tree and decrypts it back,
// expecting byte-identical content.
func TestDecrypt_RoundTrip(t *testing.T) {
	tempDir, passwordFile := shared.SetupTestEnvironment(t)
	content := "---\nvault_db_password: hunter2\nvault_api_key: sekrit\n"
	shared.WriteTree(t, tempDir, map[string]string{
		"inventory/group_vars/all/vault.yml": content,
	})

	if _, err := shared.RunCommand(t, "encrypt", "--vault-password-file", passwordFile); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	encrypted, err := os.ReadFile(filepath.Join(tempDir, "inventory/group_vars/all/vault.yml"))
	if err != nil {
		t.Fatalf("Failed to read encrypted file: %v", err)
	}
	if !strings.HasPrefix(string(encrypted), "$ANSIBLE_VAULT;") {
		t.Fatal("File should be encrypted before the decrypt run")
	}

	output, err := shared.RunCommand(t, "decrypt", "--vault-password-file", passwordFile)
	if err != nil {
		t.Fatalf("Decrypt should succeed, got: %v\noutput: %s", err, output)
	}

	decrypted, err := os.ReadFile(filepath.Join(tempDir, "inventory/group_vars/all/vault.yml"))
	if err != nil {
		t.Fatalf("Failed to read decrypted file: %v", err)
	}
	if string(decrypted) != content {
		t.Errorf("Round trip should restore original content.\nwant: %q\ngot:  %q", content, string(decrypted))
	}
}

// TestDecrypt_PrintsSecurityAdvisory verifies a real decrypt run that
// changed files reminds the user to re-encrypt before committing.
func TestDecrypt_PrintsSecurityAdvisory(t *testing.T) {
	tempDir, passwordFile := shared.SetupTestEnvironment(t)
	shared.WriteTree(t, tempDir, map[string]string{
		"inventory/group_vars/all/vault.yml": shared.VaultHeader + "\neGFiYzogMTIzCg==\n",
	})

	output, err := shared.RunCommand(t, "decrypt", "--vault-password-file", passwordFile)
	if err != nil {
		t.Fatalf("Decrypt should succeed, got: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "plaintext secrets") {
		t.Errorf("Output should warn about plaintext secrets, got: %s", output)
	}
	if !strings.Contains(output, "vault-files encrypt") {
		t.Errorf("Output should point at the encrypt command, got: %s", output)
	}
}

// TestDecrypt_NoAdvisoryWhenNothingChanged verifies the advisory is
// suppressed when every file was already plaintext.
func TestDecrypt_NoAdvisoryWhenNothingChanged(t *testing.T) {
	tempDir, passwordFile := shared.SetupTestEnvironment(t)
	shared.WriteTree(t, tempDir, map[string]string{
		"inventory/group_vars/all/vault.yml": "a: b\n",
	})

	output, err := shared.RunCommand(t, "decrypt", "--vault-password-file", passwordFile)
	if err != nil {
		t.Fatalf("Decrypt should succeed, got: %v", err)
	}
	if !strings.Contains(output, "Nothing to decrypt") {
		t.Errorf("Output should report nothing to decrypt, got: %s", output)
	}
	if strings.Contains(output, "plaintext secrets") {
		t.Errorf("Advisory should be suppressed when nothing changed, got: %s", output)
	}
}

// TestDecrypt_DryRunDoesNotMutate verifies --dry-run leaves encrypted
// content in place and skips the advisory.
func TestDecrypt_DryRunDoesNotMutate(t *testing.T) {
	tempDir, passwordFile := shared.SetupTestEnvironment(t)
	content := shared.VaultHeader + "\neGFiYzogMTIzCg==\n"
	shared.WriteTree(t, tempDir, map[string]string{
		"inventory/group_vars/all/vault.yml": content,
	})

	output, err := shared.RunCommand(t, "decrypt", "--dry-run", "--vault-password-file", passwordFile)
	if err != nil {
		t.Fatalf("Dry-run should succeed, got: %v", err)
	}
	if !strings.Contains(output, "Would decrypt 1 of 1") {
		t.Errorf("Output should preview one file, got: %s", output)
	}
	if strings.Contains(output, "plaintext secrets") {
		t.Errorf("Advisory should not fire under dry-run, got: %s", output)
	}

	data, readErr := os.ReadFile(filepath.Join(tempDir, "inventory/group_vars/all/vault.yml"))
	if readErr != nil {
		t.Fatalf("Failed to read vault file: %v", readErr)
	}
	if string(data) != content {
		t.Error("Dry-run must not modify file content")
	}
}
