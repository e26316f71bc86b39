package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/vellum/internal/audit"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// HelperDir is the directory vellum keeps inside the git directory.
const HelperDir = "vellum"

// FlushOptions configures the flush workflow.
type FlushOptions struct {
	// Force discards uncommitted edits to managed files.
	Force bool
}

// FlushResult contains the outcome of a flush operation.
type FlushResult struct {
	// Files are the managed files returned to their encrypted form.
	Files []string
}

// Flush erases the credential and the filter registrations, then re-checks
// out every managed file so the working tree holds the stored (encrypted)
// form. The repository can be configured again afterwards.
//
// Returns ErrNotConfigured if no credential is stored.
// Returns ErrDirtyWorkingTree if managed files have local edits and Force is false.
func Flush(ctx context.Context, env *Env, opts FlushOptions) (*FlushResult, error) {
	release, err := env.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := env.Store.Load(ctx); err != nil {
		return nil, err
	}

	managed, err := env.Repo.ManagedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing managed files: %w", err)
	}
	if err := refuseDirty(ctx, env, managed, opts.Force); err != nil {
		return nil, err
	}

	if err := env.Store.Erase(ctx); err != nil {
		return nil, err
	}
	env.Log.Infof("erased credential")

	if len(managed) > 0 {
		if err := env.Repo.Checkout(ctx, managed); err != nil {
			return nil, fmt.Errorf("checking out managed files: %w", err)
		}
	}

	env.Audit.Record(audit.Entry{Operation: audit.OpFlush, FilesCount: len(managed), Forced: opts.Force})
	return &FlushResult{Files: managed}, nil
}

// UninstallResult contains the outcome of an uninstall operation.
type UninstallResult struct {
	// HookRemoved is true when vellum's pre-commit hook was deleted.
	HookRemoved bool

	// HelperDir is the removed vellum directory inside the git directory.
	HelperDir string
}

// Uninstall erases the credential and the filter registrations and removes
// the pre-commit hook and vellum's helper directory, including the audit
// log. Working-tree files are not touched, so they stay plaintext.
//
// Returns ErrNotConfigured if no credential is stored.
func Uninstall(ctx context.Context, env *Env) (*UninstallResult, error) {
	release, err := env.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := env.Store.Erase(ctx); err != nil {
		return nil, err
	}

	removed, err := removeHook(ctx, env)
	if err != nil {
		return nil, err
	}

	gitDir, err := env.Repo.GitDir(ctx)
	if err != nil {
		return nil, err
	}
	helper := filepath.Join(gitDir, HelperDir)
	if err := os.RemoveAll(helper); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("removing %s: %w", helper, err)
	}

	return &UninstallResult{HookRemoved: removed, HelperDir: helper}, nil
}

func refuseDirty(ctx context.Context, env *Env, managed []string, force bool) error {
	if force || len(managed) == 0 {
		return nil
	}
	dirty, err := env.Repo.DirtyFiles(ctx, managed)
	if err != nil {
		return fmt.Errorf("checking working tree: %w", err)
	}
	if len(dirty) > 0 {
		return fmt.Errorf("%w: %s", verrors.ErrDirtyWorkingTree, strings.Join(dirty, ", "))
	}
	return nil
}
