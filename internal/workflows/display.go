package workflows

import (
	"context"
	"strings"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/credentials"
)

// DisplayResult contains the configured credential.
type DisplayResult struct {
	Credential credentials.Credential

	// Command is the configure invocation that recreates this credential
	// in another clone.
	Command string
}

// Display returns the credential so it can be copied into another clone.
//
// Returns ErrNotConfigured if no credential is stored.
func Display(ctx context.Context, env *Env) (*DisplayResult, error) {
	cred, err := env.Store.Display(ctx)
	if err != nil {
		return nil, err
	}

	env.Audit.Record(audit.Entry{Operation: audit.OpDisplay, Cipher: cred.Cipher})

	return &DisplayResult{
		Credential: cred,
		Command: strings.Join([]string{
			"vellum", "configure",
			"--cipher", credentials.ShellQuote(cred.Cipher),
			"--password", credentials.ShellQuote(cred.Password),
		}, " "),
	}, nil
}
