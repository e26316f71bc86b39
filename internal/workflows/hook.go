package workflows

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/vellum/internal/credentials"
)

const (
	hookName   = "pre-commit"
	hookMarker = "# installed by vellum"
)

func hookScript(executable string) []byte {
	return []byte("#!/bin/sh\n" + hookMarker + "\nexec " + credentials.ShellQuote(executable) + " pre-commit\n")
}

// installHook writes the pre-commit hook. A hook that vellum did not write
// is left in place and reported as not installed.
func installHook(ctx context.Context, env *Env) (bool, error) {
	dir, err := env.Repo.HooksDir(ctx)
	if err != nil {
		return false, err
	}
	path := filepath.Join(dir, hookName)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && !bytes.Contains(existing, []byte(hookMarker)):
		env.Log.Warnf("leaving existing %s hook in place: %s", hookName, path)
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("reading %s hook: %w", hookName, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("creating hooks directory: %w", err)
	}
	// #nosec G306 -- git hooks must be executable.
	if err := os.WriteFile(path, hookScript(env.Executable), 0o755); err != nil {
		return false, fmt.Errorf("writing %s hook: %w", hookName, err)
	}
	return true, nil
}

// removeHook deletes the pre-commit hook if vellum wrote it.
func removeHook(ctx context.Context, env *Env) (bool, error) {
	dir, err := env.Repo.HooksDir(ctx)
	if err != nil {
		return false, err
	}
	path := filepath.Join(dir, hookName)

	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s hook: %w", hookName, err)
	}
	if !bytes.Contains(existing, []byte(hookMarker)) {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("removing %s hook: %w", hookName, err)
	}
	return true, nil
}
