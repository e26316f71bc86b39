package workflows

import (
	"context"
	"fmt"
	"slices"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/credentials"
)

// ConfigureOptions configures the configure workflow.
type ConfigureOptions struct {
	// Cipher is the cipher name. Empty selects Env.DefaultCipher.
	Cipher string

	// Password is the shared secret. Empty generates a random one.
	Password string

	// SkipCheckout leaves the working tree untouched.
	SkipCheckout bool
}

// ConfigureResult contains the outcome of a configure operation.
type ConfigureResult struct {
	// Credential is the stored credential.
	Credential credentials.Credential

	// GeneratedPassword is true when no password was supplied.
	GeneratedPassword bool

	// HookInstalled is false when a foreign pre-commit hook was left in place.
	HookInstalled bool

	// CheckedOut lists managed files rewritten as plaintext.
	CheckedOut []string

	// Skipped lists managed files left alone because they had local edits.
	Skipped []string
}

// Configure stores a credential for the repository, registers the clean,
// smudge and textconv filters, installs the pre-commit hook and re-checks
// out the managed files so they appear decrypted.
//
// Returns ErrAlreadyConfigured if a credential is already stored.
// Returns ErrUnsupportedCipher if the cipher is unknown.
func Configure(ctx context.Context, env *Env, opts ConfigureOptions) (*ConfigureResult, error) {
	release, err := env.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	cipher := opts.Cipher
	if cipher == "" {
		cipher = env.defaultCipher()
	}
	if err := env.registry().Validate(cipher); err != nil {
		return nil, err
	}

	result := &ConfigureResult{}
	password := opts.Password
	if password == "" {
		password, err = env.generatePassword()
		if err != nil {
			return nil, err
		}
		result.GeneratedPassword = true
	}

	if err := configure(ctx, env, cipher, password, opts.SkipCheckout, result); err != nil {
		return nil, err
	}

	env.Audit.Record(audit.Entry{
		Operation:  audit.OpConfigure,
		Cipher:     result.Credential.Cipher,
		FilesCount: len(result.CheckedOut),
	})
	return result, nil
}

// configure is shared by Configure and Import. The caller holds the lock.
func configure(ctx context.Context, env *Env, cipher, password string, skipCheckout bool, result *ConfigureResult) error {
	cred, err := env.Store.Configure(ctx, cipher, password, credentials.CommandsFor(env.Executable))
	if err != nil {
		return err
	}
	result.Credential = cred
	env.Log.Infof("stored %s credential", cred.Cipher)

	installed, err := installHook(ctx, env)
	if err != nil {
		return err
	}
	result.HookInstalled = installed

	if skipCheckout {
		return nil
	}

	managed, err := env.Repo.ManagedFiles(ctx)
	if err != nil {
		return fmt.Errorf("listing managed files: %w", err)
	}
	if len(managed) == 0 {
		return nil
	}

	dirty, err := env.Repo.DirtyFiles(ctx, managed)
	if err != nil {
		return fmt.Errorf("checking working tree: %w", err)
	}

	var clean []string
	for _, path := range managed {
		if slices.Contains(dirty, path) {
			result.Skipped = append(result.Skipped, path)
			continue
		}
		clean = append(clean, path)
	}

	if len(clean) > 0 {
		if err := env.Repo.Checkout(ctx, clean); err != nil {
			return fmt.Errorf("checking out managed files: %w", err)
		}
	}
	result.CheckedOut = clean
	return nil
}
