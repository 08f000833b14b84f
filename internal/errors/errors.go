package errors

import "errors"

// Dependency errors indicate a required external tool is unavailable.
var (
	// ErrVaultToolNotFound indicates the ansible-vault binary is not on PATH.
	ErrVaultToolNotFound = errors.New("ansible-vault not found on PATH")

	// ErrPasswordUnavailable indicates no vault password source is usable:
	// no password file is configured and stdin is not a terminal, so the
	// vault tool cannot prompt interactively.
	ErrPasswordUnavailable = errors.New("no vault password source available")
)

// Discovery errors indicate issues locating vault-managed files.
var (
	// ErrNoCandidateFiles indicates discovery found nothing to process.
	ErrNoCandidateFiles = errors.New("no vault-managed files found")
)

// Transform errors indicate failures while changing a file's encryption state.
var (
	// ErrEncryptFailed indicates the vault tool failed to encrypt a file.
	ErrEncryptFailed = errors.New("failed to encrypt file")

	// ErrDecryptFailed indicates the vault tool failed to decrypt a file.
	ErrDecryptFailed = errors.New("failed to decrypt file")

	// ErrFilesFailed indicates one or more files failed during a batch run.
	ErrFilesFailed = errors.New("some files failed to process")
)
