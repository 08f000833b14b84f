package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logger "github.com/lepinkainen/vault-files/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool mimics ansible-vault's in-place transforms without any real
// cryptography: encrypt prepends the marker and base64-encodes the body,
// decrypt reverses it. Failures are injected per path.
type fakeTool struct {
	failOn map[string]bool
	calls  []string
}

func (f *fakeTool) Encrypt(_ context.Context, path string) error {
	f.calls = append(f.calls, "encrypt "+path)
	if f.failOn[path] {
		return errors.New("fake encrypt failure: " + path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	body := Marker + "1.1;AES256\n" + base64.StdEncoding.EncodeToString(data) + "\n"
	return os.WriteFile(path, []byte(body), 0644)
}

func (f *fakeTool) Decrypt(_ context.Context, path string) error {
	f.calls = append(f.calls, "decrypt "+path)
	if f.failOn[path] {
		return errors.New("fake decrypt failure: " + path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, encoded, ok := strings.Cut(string(data), "\n")
	if !ok {
		return errors.New("not a vault payload: " + path)
	}
	plain, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return err
	}
	return os.WriteFile(path, plain, 0644)
}

func newRunner(tool Tool, mode Mode, dryRun bool) Runner {
	return Runner{
		Tool:   tool,
		Mode:   mode,
		DryRun: dryRun,
		Logger: logger.Logger{},
	}
}

func TestRunEncryptsOnlyPlaintextFiles(t *testing.T) {
	root := t.TempDir()
	plain := filepath.Join(root, "group_vars", "all", "vault.yml")
	already := filepath.Join(root, "host_vars", "web1", "vault.yml")
	writeFile(t, plain, "vault_db_password: hunter2\n")
	writeFile(t, already, Marker+"1.1;AES256\n3030\n")

	tool := &fakeTool{}
	result := newRunner(tool, ModeEncrypt, false).Run(context.Background(), []string{plain, already})

	assert.Equal(t, Result{Processed: 2, Changed: 1, Errors: 0}, result)
	assert.Equal(t, StateEncrypted, StateOf(plain))
	assert.Equal(t, []string{"encrypt " + plain}, tool.calls)
}

func TestRunIsIdempotent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "vault.yml")
	writeFile(t, path, "a: b\n")
	files := []string{path}

	runner := newRunner(&fakeTool{}, ModeEncrypt, false)
	first := runner.Run(context.Background(), files)
	second := runner.Run(context.Background(), files)

	assert.Equal(t, 1, first.Changed)
	assert.Equal(t, 0, second.Changed)
	assert.Equal(t, 0, second.Errors)
}

func TestDryRunDoesNotMutate(t *testing.T) {
	root := t.TempDir()
	plain := filepath.Join(root, "vault.yml")
	content := "vault_api_key: sekrit\n"
	writeFile(t, plain, content)

	tool := &fakeTool{}
	result := newRunner(tool, ModeEncrypt, true).Run(context.Background(), []string{plain})

	assert.Equal(t, Result{Processed: 1, Changed: 1, Errors: 0}, result)
	assert.Empty(t, tool.calls, "dry-run must not invoke the vault tool")

	data, err := os.ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDryRunCountsOnlyFilesThatWouldFlip(t *testing.T) {
	root := t.TempDir()
	plain := filepath.Join(root, "a", "vault.yml")
	already := filepath.Join(root, "b", "vault.yml")
	writeFile(t, plain, "a: b\n")
	writeFile(t, already, Marker+"1.1;AES256\n3030\n")

	result := newRunner(&fakeTool{}, ModeEncrypt, true).Run(context.Background(), []string{plain, already})

	assert.Equal(t, Result{Processed: 2, Changed: 1, Errors: 0}, result)
}

func TestAbsentFileIsNotAnError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "vault.yml")

	var outcomes []Outcome
	runner := newRunner(&fakeTool{}, ModeEncrypt, false)
	runner.OnResult = func(_ string, outcome Outcome, _ error) {
		outcomes = append(outcomes, outcome)
	}
	result := runner.Run(context.Background(), []string{missing})

	assert.Equal(t, Result{Processed: 1, Changed: 0, Errors: 0}, result)
	assert.Equal(t, []Outcome{OutcomeAbsent}, outcomes)
}

func TestPartialFailureIsolation(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a", "vault.yml")
	b := filepath.Join(root, "b", "vault.yml")
	c := filepath.Join(root, "c", "vault.yml")
	for _, p := range []string{a, b, c} {
		writeFile(t, p, "x: y\n")
	}

	tool := &fakeTool{failOn: map[string]bool{b: true}}
	result := newRunner(tool, ModeEncrypt, false).Run(context.Background(), []string{a, b, c})

	assert.Equal(t, Result{Processed: 3, Changed: 2, Errors: 1}, result)
	assert.Equal(t, StateEncrypted, StateOf(a))
	assert.Equal(t, StatePlaintext, StateOf(b))
	assert.Equal(t, StateEncrypted, StateOf(c))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "vault.yml")
	content := "---\nvault_db_password: hunter2\nvault_api_key: sekrit\n"
	writeFile(t, path, content)
	files := []string{path}

	tool := &fakeTool{}
	encResult := newRunner(tool, ModeEncrypt, false).Run(context.Background(), files)
	require.Equal(t, 1, encResult.Changed)
	require.Equal(t, StateEncrypted, StateOf(path))

	decResult := newRunner(tool, ModeDecrypt, false).Run(context.Background(), files)
	require.Equal(t, 1, decResult.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data), "round trip must restore byte-identical content")
}

func TestOnResultReceivesEveryFileInOrder(t *testing.T) {
	root := t.TempDir()
	plain := filepath.Join(root, "a", "vault.yml")
	already := filepath.Join(root, "b", "vault.yml")
	missing := filepath.Join(root, "c", "vault.yml")
	writeFile(t, plain, "a: b\n")
	writeFile(t, already, Marker+"1.1;AES256\n3030\n")

	var paths []string
	var outcomes []Outcome
	runner := newRunner(&fakeTool{}, ModeEncrypt, false)
	runner.OnResult = func(path string, outcome Outcome, _ error) {
		paths = append(paths, path)
		outcomes = append(outcomes, outcome)
	}
	runner.Run(context.Background(), []string{plain, already, missing})

	assert.Equal(t, []string{plain, already, missing}, paths)
	assert.Equal(t, []Outcome{OutcomeChanged, OutcomeSkipped, OutcomeAbsent}, outcomes)
}

func TestModeStrings(t *testing.T) {
	assert.Equal(t, "encrypt", ModeEncrypt.String())
	assert.Equal(t, "decrypt", ModeDecrypt.String())
}
