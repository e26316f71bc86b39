package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	logger "github.com/PolarWolf314/vellum/internal/logging"
)

func newTestRepo(t *testing.T) *CLI {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	cmd := exec.Command("git", "init", "-q", dir)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	writeFile(t, dir, ".gitattributes", "secret.txt filter=vellum diff=vellum\n")
	writeFile(t, dir, "secret.txt", "stored secret\n")
	writeFile(t, dir, "plain.txt", "public\n")

	cmd = exec.Command("git", "add", ".")
	cmd.Dir = dir
	out, err = cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	repo, err := Open(context.Background(), "git", dir, logger.Logger{})
	require.NoError(t, err)
	return repo
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestOpen_NotRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := Open(context.Background(), "git", dir, logger.Logger{})
	assert.ErrorIs(t, err, verrors.ErrNotRepository)
}

func TestCLI_ManagedFiles(t *testing.T) {
	repo := newTestRepo(t)

	files, err := repo.ManagedFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"secret.txt"}, files)
}

func TestCLI_GitDirAndHooks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	gitDir, err := repo.GitDir(ctx)
	require.NoError(t, err)
	assert.Equal(t, ".git", filepath.Base(gitDir))

	hooks, err := repo.HooksDir(ctx)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(hooks))
	assert.Equal(t, "hooks", filepath.Base(hooks))
}

func TestCLI_StageAndCheckout(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	content, err := repo.IndexContent(ctx, "secret.txt")
	require.NoError(t, err)
	assert.Equal(t, "stored secret\n", string(content))

	require.NoError(t, repo.StageContent(ctx, "secret.txt", []byte("replaced\n")))

	content, err = repo.IndexContent(ctx, "secret.txt")
	require.NoError(t, err)
	assert.Equal(t, "replaced\n", string(content))

	dirty, err := repo.DirtyFiles(ctx, []string{"secret.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"secret.txt"}, dirty)

	require.NoError(t, repo.Checkout(ctx, []string{"secret.txt"}))

	onDisk, err := os.ReadFile(filepath.Join(repo.Root(), "secret.txt"))
	require.NoError(t, err)
	assert.Equal(t, "replaced\n", string(onDisk))

	dirty, err = repo.DirtyFiles(ctx, []string{"secret.txt"})
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestCLI_StagedFiles(t *testing.T) {
	repo := newTestRepo(t)

	staged, err := repo.StagedFiles(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".gitattributes", "plain.txt", "secret.txt"}, staged)
}

func TestCLI_ConfigBackend(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	vals, err := repo.Values(ctx, "vellum.")
	require.NoError(t, err)
	assert.Empty(t, vals)

	require.NoError(t, repo.Set(ctx, "vellum.cipher", "aes-256-cbc"))
	require.NoError(t, repo.Set(ctx, "vellum.password", "multi word pass"))

	vals, err = repo.Values(ctx, "vellum.")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"vellum.cipher":   "aes-256-cbc",
		"vellum.password": "multi word pass",
	}, vals)

	require.NoError(t, repo.Unset(ctx, "vellum.cipher"))
	require.NoError(t, repo.Unset(ctx, "vellum.cipher"), "unsetting a missing key is not an error")

	vals, err = repo.Values(ctx, "vellum.")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"vellum.password": "multi word pass"}, vals)
}

func TestDirtyFiles_NoPaths(t *testing.T) {
	c := &CLI{binary: "git-binary-that-does-not-exist"}
	dirty, err := c.DirtyFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, dirty)
}

func TestSplitNUL(t *testing.T) {
	assert.Nil(t, splitNUL(nil))
	assert.Nil(t, splitNUL([]byte("\x00")))
	assert.Equal(t, []string{"a", "b c"}, splitNUL([]byte("a\x00b c\x00")))
}
