package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/PolarWolf314/vellum/internal/envelope"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// PreCommitResult contains the outcome of the pre-commit check.
type PreCommitResult struct {
	// Checked lists the staged managed files that were inspected.
	Checked []string

	// Plaintext lists the staged managed files whose stored form is not
	// an envelope.
	Plaintext []string
}

// PreCommit inspects the staged content of managed files and fails when
// any of them would be committed unencrypted. This happens when a file was
// staged before vellum was configured or with the filter disabled.
//
// Returns ErrPlaintextStaged naming the offending files.
func PreCommit(ctx context.Context, env *Env) (*PreCommitResult, error) {
	staged, err := env.Repo.StagedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing staged files: %w", err)
	}
	if len(staged) == 0 {
		return &PreCommitResult{}, nil
	}

	managed, err := env.Repo.ManagedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing managed files: %w", err)
	}

	result := &PreCommitResult{}
	for _, path := range staged {
		if !slices.Contains(managed, path) {
			continue
		}
		result.Checked = append(result.Checked, path)

		stored, err := env.Repo.IndexContent(ctx, path)
		if err != nil {
			return nil, err
		}
		if len(stored) > 0 && !envelope.IsEnvelope(stored) {
			result.Plaintext = append(result.Plaintext, path)
		}
	}

	if len(result.Plaintext) > 0 {
		return result, fmt.Errorf("%w: %s", verrors.ErrPlaintextStaged, strings.Join(result.Plaintext, ", "))
	}
	return result, nil
}
