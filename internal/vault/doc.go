// Package vault implements the bulk encrypt/decrypt workflow for
// Ansible Vault files.
//
// The workflow has four pieces: discovery locates candidate files,
// inspection classifies each file as encrypted or plaintext by its
// first-line marker, the Tool interface wraps the external ansible-vault
// binary, and Runner drives the per-file loop with idempotency checks
// and processed/changed/error accounting.
//
// All cryptography is delegated to the external tool. This package never
// writes file content itself.
package vault
