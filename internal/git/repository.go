//go:generate mockgen -source=repository.go -destination=../mock/repository_mock.go -package=mock

// Package git is vellum's boundary to the version-control system.
//
// The Repository interface is everything the lifecycle workflows need from
// git: which paths carry the vellum filter attribute, the raw (unfiltered)
// index content of those paths, and a way to write stored blobs back and
// re-materialize the working tree. CLI implements it by running the git
// binary.
package git

import "context"

// Repository is the version-control collaborator used by the workflows.
type Repository interface {
	// GitDir returns the absolute path of the repository's git directory.
	GitDir(ctx context.Context) (string, error)

	// HooksDir returns the absolute path of the directory git runs hooks from.
	HooksDir(ctx context.Context) (string, error)

	// ManagedFiles returns the tracked paths whose filter attribute is
	// vellum, in index order. The result is never cached.
	ManagedFiles(ctx context.Context) ([]string, error)

	// StagedFiles returns paths added or modified in the index relative to HEAD.
	StagedFiles(ctx context.Context) ([]string, error)

	// DirtyFiles returns the subset of paths whose working-tree copy differs
	// from the index. Those edits would be lost by Checkout.
	DirtyFiles(ctx context.Context, paths []string) ([]string, error)

	// IndexContent returns the stored bytes of path exactly as they sit in
	// the index, without running any filter.
	IndexContent(ctx context.Context, path string) ([]byte, error)

	// StageContent writes data as the stored form of path and stages it.
	StageContent(ctx context.Context, path string, data []byte) error

	// Checkout rewrites the working-tree copies of paths from the index,
	// running the smudge filter with whatever credential is configured.
	Checkout(ctx context.Context, paths []string) error
}
