package vault

import (
	"context"

	logger "github.com/lepinkainen/vault-files/internal/logging"
)

// Mode selects the direction of a batch run.
type Mode int

const (
	// ModeEncrypt brings every candidate file to the encrypted state.
	ModeEncrypt Mode = iota
	// ModeDecrypt brings every candidate file to the plaintext state.
	ModeDecrypt
)

// String returns a string representation of Mode.
func (m Mode) String() string {
	if m == ModeDecrypt {
		return "decrypt"
	}
	return "encrypt"
}

// Outcome classifies what happened to a single file.
type Outcome int

const (
	// OutcomeChanged means the file's state flipped, or would flip under
	// dry-run.
	OutcomeChanged Outcome = iota
	// OutcomeSkipped means the file already satisfied the target state.
	OutcomeSkipped
	// OutcomeAbsent means the file does not exist. Never an error.
	OutcomeAbsent
	// OutcomeFailed means the vault tool returned an error for the file.
	OutcomeFailed
)

// Result accumulates the counts of one batch run.
type Result struct {
	// Processed counts every candidate considered, absent ones included.
	Processed int
	// Changed counts files whose state flipped (or would, under dry-run).
	Changed int
	// Errors counts failed transform attempts.
	Errors int
}

// Runner drives a batch run over a candidate set. Files are processed
// strictly sequentially; the only shared state is the returned Result,
// touched solely by Run's own loop.
type Runner struct {
	Tool   Tool
	Mode   Mode
	DryRun bool
	Logger logger.Logger

	// OnResult, when set, is called once per file with its outcome, in
	// processing order. Used by commands to collect per-file report lines.
	OnResult func(path string, outcome Outcome, err error)
}

// Run processes every file once, in order. A failed file is counted and
// skipped over, never aborting the rest of the batch.
func (r Runner) Run(ctx context.Context, files []string) Result {
	var res Result
	for _, path := range files {
		res.Processed++
		outcome, err := r.Transform(ctx, path)
		switch outcome {
		case OutcomeChanged:
			res.Changed++
		case OutcomeFailed:
			res.Errors++
		}
		if r.OnResult != nil {
			r.OnResult(path, outcome, err)
		}
	}
	return res
}

// Transform applies the run's mode to a single file.
//
// The idempotency check runs before the tool is invoked: ansible-vault
// errors out when asked to encrypt an already-encrypted file, so the
// wrapper pre-empts that entire failure class. Repeated runs with no
// state change are therefore always safe.
func (r Runner) Transform(ctx context.Context, path string) (Outcome, error) {
	state := StateOf(path)
	if state == StateAbsent {
		r.Logger.Infof("skipping %s: file does not exist", path)
		return OutcomeAbsent, nil
	}

	target := StateEncrypted
	if r.Mode == ModeDecrypt {
		target = StatePlaintext
	}
	if state == target {
		r.Logger.Infof("skipping %s: already %s", path, state)
		return OutcomeSkipped, nil
	}

	if r.DryRun {
		r.Logger.Infof("would %s %s", r.Mode, path)
		return OutcomeChanged, nil
	}

	var err error
	if r.Mode == ModeDecrypt {
		err = r.Tool.Decrypt(ctx, path)
	} else {
		err = r.Tool.Encrypt(ctx, path)
	}
	if err != nil {
		r.Logger.Errorf("%v", err)
		return OutcomeFailed, err
	}

	r.Logger.Infof("%sed %s", r.Mode, path)
	return OutcomeChanged, nil
}
