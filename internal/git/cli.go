package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PolarWolf314/vellum/internal/credentials"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	logger "github.com/PolarWolf314/vellum/internal/logging"
)

const checkoutBatch = 100

// CLI drives a repository through the git executable.
type CLI struct {
	binary string
	root   string
	log    logger.Logger
}

// Open locates the repository containing dir.
func Open(ctx context.Context, binary, dir string, log logger.Logger) (*CLI, error) {
	if binary == "" {
		binary = "git"
	}
	c := &CLI{binary: binary, root: dir, log: log}

	out, err := c.run(ctx, nil, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrNotRepository, err)
	}
	c.root = strings.TrimSpace(string(out))
	return c, nil
}

// Root returns the top-level directory of the working tree.
func (c *CLI) Root() string {
	return c.root
}

func (c *CLI) GitDir(ctx context.Context) (string, error) {
	out, err := c.run(ctx, nil, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *CLI) HooksDir(ctx context.Context) (string, error) {
	out, err := c.run(ctx, nil, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	dir := strings.TrimSpace(string(out))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.root, dir)
	}
	return dir, nil
}

func (c *CLI) ManagedFiles(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, nil, "ls-files", "-z")
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	attrs, err := c.run(ctx, out, "check-attr", "-z", "--stdin", "filter")
	if err != nil {
		return nil, err
	}

	// path NUL attribute NUL value NUL
	fields := splitNUL(attrs)
	var managed []string
	for i := 0; i+2 < len(fields); i += 3 {
		if fields[i+2] == credentials.FilterName {
			managed = append(managed, fields[i])
		}
	}
	return managed, nil
}

func (c *CLI) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, nil, "diff", "--cached", "--name-only", "-z", "--diff-filter=d")
	if err != nil {
		return nil, err
	}
	return splitNUL(out), nil
}

func (c *CLI) DirtyFiles(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	args := append([]string{"status", "--porcelain", "-z", "--untracked-files=no", "--"}, paths...)
	out, err := c.run(ctx, nil, args...)
	if err != nil {
		return nil, err
	}

	entries := splitNUL(out)
	var dirty []string
	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		if len(entry) < 4 {
			continue
		}
		if entry[1] != ' ' {
			dirty = append(dirty, entry[3:])
		}
		// Renames and copies carry the source path as an extra entry.
		if entry[0] == 'R' || entry[0] == 'C' {
			i++
		}
	}
	return dirty, nil
}

func (c *CLI) IndexContent(ctx context.Context, path string) ([]byte, error) {
	out, err := c.run(ctx, nil, "cat-file", "blob", ":"+path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s from index: %v", verrors.ErrManagedFileIO, path, err)
	}
	return out, nil
}

func (c *CLI) StageContent(ctx context.Context, path string, data []byte) error {
	mode := "100644"
	out, err := c.run(ctx, nil, "ls-files", "-s", "-z", "--", path)
	if err != nil {
		return fmt.Errorf("%w: %v", verrors.ErrManagedFileIO, err)
	}
	if fields := strings.Fields(string(bytes.TrimRight(out, "\x00"))); len(fields) > 0 {
		mode = fields[0]
	}

	sha, err := c.run(ctx, data, "hash-object", "-w", "--no-filters", "--stdin")
	if err != nil {
		return fmt.Errorf("%w: writing blob for %s: %v", verrors.ErrManagedFileIO, path, err)
	}

	info := mode + "," + strings.TrimSpace(string(sha)) + "," + path
	if _, err := c.run(ctx, nil, "update-index", "--cacheinfo", info); err != nil {
		return fmt.Errorf("%w: staging %s: %v", verrors.ErrManagedFileIO, path, err)
	}
	return nil
}

func (c *CLI) Checkout(ctx context.Context, paths []string) error {
	// git skips entries whose stat data still matches the index, so the
	// working copies are removed first to force the smudge filter to run.
	for _, p := range paths {
		if err := os.Remove(filepath.Join(c.root, p)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: removing %s: %v", verrors.ErrManagedFileIO, p, err)
		}
	}

	for start := 0; start < len(paths); start += checkoutBatch {
		end := min(start+checkoutBatch, len(paths))
		args := append([]string{"checkout", "--"}, paths[start:end]...)
		if _, err := c.run(ctx, nil, args...); err != nil {
			return fmt.Errorf("%w: %v", verrors.ErrManagedFileIO, err)
		}
	}
	return nil
}

// Values implements credentials.Backend over the repository's local config.
func (c *CLI) Values(ctx context.Context, prefix string) (map[string]string, error) {
	out, err := c.run(ctx, nil, "config", "--local", "-z", "--get-regexp", "^"+regexp.QuoteMeta(prefix))
	if exitCode(err) == 1 {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	vals := make(map[string]string)
	for _, entry := range splitNUL(out) {
		key, value, _ := strings.Cut(entry, "\n")
		vals[key] = value
	}
	return vals, nil
}

func (c *CLI) Set(ctx context.Context, key, value string) error {
	_, err := c.run(ctx, nil, "config", "--local", key, value)
	return err
}

func (c *CLI) Unset(ctx context.Context, key string) error {
	_, err := c.run(ctx, nil, "config", "--local", "--unset-all", key)
	if exitCode(err) == 5 {
		return nil
	}
	return err
}

func (c *CLI) run(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	c.log.Debugf("running %s %s", c.binary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = c.root
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("git %s: %w", args[0], err)
		}
		return nil, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
	}
	return stdout.Bytes(), nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func splitNUL(b []byte) []string {
	b = bytes.TrimRight(b, "\x00")
	if len(b) == 0 {
		return nil
	}
	return strings.Split(string(b), "\x00")
}
