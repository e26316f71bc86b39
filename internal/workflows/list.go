package workflows

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/PolarWolf314/vellum/internal/envelope"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Patterns restricts the result to paths matching any of these
	// doublestar patterns. Empty lists every managed file.
	Patterns []string
}

// ManagedFile describes one path carrying the vellum filter attribute.
type ManagedFile struct {
	Path string

	// Encrypted reports whether the index holds an envelope for this path.
	// Empty files are never encrypted.
	Encrypted bool

	// Size is the stored size in bytes.
	Size int
}

// ListResult contains the managed files.
type ListResult struct {
	Files []ManagedFile
}

// List reports the managed files and whether their stored form is encrypted.
//
// Returns ErrInvalidPattern if a pattern cannot be parsed.
func List(ctx context.Context, env *Env, opts ListOptions) (*ListResult, error) {
	for _, p := range opts.Patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", verrors.ErrInvalidPattern, p)
		}
	}

	managed, err := env.Repo.ManagedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing managed files: %w", err)
	}

	result := &ListResult{}
	for _, path := range managed {
		if !matchAny(opts.Patterns, path) {
			continue
		}
		stored, err := env.Repo.IndexContent(ctx, path)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, ManagedFile{
			Path:      path,
			Encrypted: envelope.IsEnvelope(stored),
			Size:      len(stored),
		})
	}
	return result, nil
}

func matchAny(patterns []string, path string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}
