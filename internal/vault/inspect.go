package vault

import (
	"io"
	"os"
)

// Marker is the header ansible-vault writes at the start of every
// encrypted payload. Classification looks at nothing else.
const Marker = "$ANSIBLE_VAULT;"

// State is the encryption state of a candidate file.
type State int

const (
	// StateAbsent means the file does not exist on disk.
	StateAbsent State = iota
	// StateEncrypted means the file carries the vault marker.
	StateEncrypted
	// StatePlaintext means the file exists without the vault marker.
	StatePlaintext
)

// String returns a string representation of State.
func (s State) String() string {
	switch s {
	case StateAbsent:
		return "missing"
	case StateEncrypted:
		return "encrypted"
	case StatePlaintext:
		return "plaintext"
	default:
		return "unknown"
	}
}

// IsEncrypted reports whether the file at path is a vault-encrypted
// payload. It reads only the leading bytes of the file, so it is safe on
// large files. A missing or unreadable file reports false.
func IsEncrypted(path string) bool {
	return StateOf(path) == StateEncrypted
}

// StateOf classifies the file at path. The state is never cached: callers
// re-inspect after every transform because the file was just mutated.
func StateOf(path string) State {
	f, err := os.Open(path)
	if err != nil {
		return StateAbsent
	}
	defer f.Close()

	buf := make([]byte, len(Marker))
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return StatePlaintext
	}
	if n == len(Marker) && string(buf) == Marker {
		return StateEncrypted
	}
	return StatePlaintext
}
