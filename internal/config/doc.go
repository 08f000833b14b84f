// Package config loads the optional .vault-files.yml repository config.
//
// Without a config file the tool operates on the conventional Ansible
// layout: inventory/production.yml plus every file named vault.yml under
// inventory/. A config file can relocate those paths, add extra glob
// patterns, or point at a different vault binary or password file.
package config
