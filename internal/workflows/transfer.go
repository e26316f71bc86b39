package workflows

import (
	"context"
	"errors"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/credentials"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/transfer"
)

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// Recipient is the public-key identity the credential is sealed for.
	Recipient string
}

// ExportResult contains the sealed credential.
type ExportResult struct {
	Cipher string
	Sealed []byte
}

// Export seals the credential for a recipient so it can be sent to a
// collaborator who imports it into their clone.
//
// Returns ErrNotConfigured if no credential is stored.
func Export(ctx context.Context, env *Env, opts ExportOptions) (*ExportResult, error) {
	if opts.Recipient == "" {
		return nil, errors.New("a recipient is required")
	}

	cred, err := env.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	sealed, err := transfer.Export(ctx, env.Sealer, opts.Recipient, cred)
	if err != nil {
		return nil, err
	}

	env.Audit.Record(audit.Entry{Operation: audit.OpExport, Cipher: cred.Cipher, Recipient: opts.Recipient})
	return &ExportResult{Cipher: cred.Cipher, Sealed: sealed}, nil
}

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// Sealed is the output of Export.
	Sealed []byte

	// SkipCheckout leaves the working tree untouched.
	SkipCheckout bool
}

// Import opens a sealed credential and configures the repository with it,
// exactly as Configure would.
//
// Returns ErrAlreadyConfigured if a credential is already stored.
// Returns ErrImportFailed if the sealed data cannot be opened.
// Returns ErrMalformedCredential if the opened data is not an export.
func Import(ctx context.Context, env *Env, opts ImportOptions) (*ConfigureResult, error) {
	release, err := env.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	state, err := env.Store.State(ctx)
	if err != nil {
		return nil, err
	}
	if state == credentials.Configured {
		return nil, verrors.ErrAlreadyConfigured
	}

	cred, err := transfer.Import(ctx, env.Sealer, opts.Sealed)
	if err != nil {
		return nil, err
	}

	result := &ConfigureResult{}
	if err := configure(ctx, env, cred.Cipher, cred.Password, opts.SkipCheckout, result); err != nil {
		return nil, err
	}

	env.Audit.Record(audit.Entry{Operation: audit.OpImport, Cipher: cred.Cipher, FilesCount: len(result.CheckedOut)})
	return result, nil
}
