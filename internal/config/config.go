package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-repository config file, looked up at the
// root of the working tree.
const FileName = ".vault-files.yml"

// Config controls where vault-managed files are found and how the
// external vault tool is invoked. The zero-config defaults reproduce the
// layout of an Ansible repository: a single production inventory plus
// every vault.yml beneath the inventory tree.
type Config struct {
	// InventoryFile is a single well-known file included when it exists.
	InventoryFile string `yaml:"inventory_file"`

	// SearchRoot is the subtree searched recursively for vault files.
	SearchRoot string `yaml:"search_root"`

	// VaultBasename is the exact filename that marks a file as sensitive.
	VaultBasename string `yaml:"vault_basename"`

	// ExtraPatterns lists additional candidate files as doublestar globs,
	// relative to the working tree root.
	ExtraPatterns []string `yaml:"extra_patterns"`

	// VaultBinary is the vault tool executable name or path.
	VaultBinary string `yaml:"vault_binary"`

	// VaultPasswordFile is passed to the vault tool when set. The
	// --vault-password-file flag takes precedence over this value.
	VaultPasswordFile string `yaml:"vault_password_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InventoryFile: filepath.Join("inventory", "production.yml"),
		SearchRoot:    "inventory",
		VaultBasename: "vault.yml",
		VaultBinary:   "ansible-vault",
	}
}

// Load reads the config file from root if present, overlaying it on the
// defaults. A missing config file is not an error.
func Load(root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Fields left out of the file keep their defaults; guard against a
	// file that explicitly blanks a required one.
	if cfg.VaultBinary == "" {
		cfg.VaultBinary = "ansible-vault"
	}
	if cfg.VaultBasename == "" {
		cfg.VaultBasename = "vault.yml"
	}

	return cfg, nil
}
