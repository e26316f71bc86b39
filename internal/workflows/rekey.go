package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/credentials"
)

// RekeyOptions configures the rekey workflow.
type RekeyOptions struct {
	// Cipher is the new cipher. Empty keeps the current one.
	Cipher string

	// Password is the new password. Empty generates a random one.
	Password string

	// Force rekeys even when managed files have uncommitted edits.
	Force bool
}

// RekeyResult contains the outcome of a rekey operation.
type RekeyResult struct {
	// Previous is the credential that was replaced.
	Previous credentials.Credential

	// Credential is the newly stored credential.
	Credential credentials.Credential

	// GeneratedPassword is true when no password was supplied.
	GeneratedPassword bool

	// Staged lists the managed files re-encrypted and staged, in order.
	Staged []string
}

// RekeyError reports a file that could not be re-encrypted. The new
// credential is stored by then, and every file in Staged already carries it.
type RekeyError struct {
	Path   string
	Staged []string
	Err    error
}

func (e *RekeyError) Error() string {
	return fmt.Sprintf("rekeying %s: %v (%d file(s) already staged under the new credential)", e.Path, e.Err, len(e.Staged))
}

func (e *RekeyError) Unwrap() error {
	return e.Err
}

// Rekey replaces the credential and re-encrypts every managed file under it.
//
// The stored content of each managed file is read from the index and
// decrypted with the old credential; content that was never encrypted is
// taken as plaintext. The result is encrypted with the new credential and
// staged. Nothing is committed: the caller reviews and commits the staged
// changes.
//
// Returns ErrNotConfigured if no credential is stored.
// Returns ErrUnsupportedCipher if the new cipher is unknown.
// Returns ErrDirtyWorkingTree if managed files have local edits and Force is false.
// Returns *RekeyError if a file fails after the credential was replaced.
func Rekey(ctx context.Context, env *Env, opts RekeyOptions) (*RekeyResult, error) {
	release, err := env.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := env.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	cipher := opts.Cipher
	if cipher == "" {
		cipher = current.Cipher
	}
	if err := env.registry().Validate(cipher); err != nil {
		return nil, err
	}

	result := &RekeyResult{}
	password := opts.Password
	if password == "" {
		password, err = env.generatePassword()
		if err != nil {
			return nil, err
		}
		result.GeneratedPassword = true
	}

	managed, err := env.Repo.ManagedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing managed files: %w", err)
	}
	if err := refuseDirty(ctx, env, managed, opts.Force); err != nil {
		return nil, err
	}

	// Past this point the loop runs to completion or to the first failure.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	old, err := env.Store.Replace(ctx, cipher, password)
	if err != nil {
		return nil, err
	}
	next, err := env.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	result.Previous = old
	result.Credential = next
	env.Log.Infof("replaced %s credential with %s", old.Cipher, next.Cipher)

	entry := audit.Entry{Operation: audit.OpRekey, PrevCipher: old.Cipher, Cipher: next.Cipher, Forced: opts.Force}
	fail := func(path string, err error) (*RekeyResult, error) {
		entry.Files = result.Staged
		entry.Failed = path
		env.Audit.Record(entry)
		return nil, &RekeyError{Path: path, Staged: result.Staged, Err: err}
	}

	ctx = context.WithoutCancel(ctx)
	for _, path := range managed {
		stored, err := env.Repo.IndexContent(ctx, path)
		if err != nil {
			return fail(path, err)
		}

		plain, err := env.Filter.Unseal(old, stored)
		if err != nil {
			return fail(path, err)
		}

		resealed, err := env.Filter.Seal(next, path, plain)
		if err != nil {
			return fail(path, err)
		}

		if err := env.Repo.StageContent(ctx, path, resealed); err != nil {
			return fail(path, err)
		}
		result.Staged = append(result.Staged, path)
		env.Log.Debugf("rekeyed %s", path)
	}

	entry.Files = result.Staged
	env.Audit.Record(entry)
	return result, nil
}
