package workflows

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/configs"
	"github.com/PolarWolf314/vellum/internal/credentials"
	"github.com/PolarWolf314/vellum/internal/filters"
	logger "github.com/PolarWolf314/vellum/internal/logging"
)

// fakeRepo is an in-memory repository. Checkout runs the real smudge
// filter, so it behaves like git with vellum registered as long as the
// store is configured, and like git without it otherwise.
type fakeRepo struct {
	gitDir   string
	filter   *filters.Filter
	managed  []string
	index    map[string][]byte
	worktree map[string][]byte
	dirty    map[string]bool
	staged   []string
}

func newFakeRepo(gitDir string) *fakeRepo {
	return &fakeRepo{
		gitDir:   gitDir,
		index:    make(map[string][]byte),
		worktree: make(map[string][]byte),
		dirty:    make(map[string]bool),
	}
}

// add stages content through the clean filter, like git add.
func (r *fakeRepo) add(t *testing.T, path string, content []byte) {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, r.filter.Clean(context.Background(), path, bytes.NewReader(content), &out))
	r.track(path, out.Bytes(), content)
}

// track records a managed path with explicit stored and working-tree forms.
func (r *fakeRepo) track(path string, stored, working []byte) {
	if !slices.Contains(r.managed, path) {
		r.managed = append(r.managed, path)
	}
	r.index[path] = stored
	r.worktree[path] = working
	if !slices.Contains(r.staged, path) {
		r.staged = append(r.staged, path)
	}
}

func (r *fakeRepo) GitDir(context.Context) (string, error) {
	return r.gitDir, nil
}

func (r *fakeRepo) HooksDir(context.Context) (string, error) {
	return filepath.Join(r.gitDir, "hooks"), nil
}

func (r *fakeRepo) ManagedFiles(context.Context) ([]string, error) {
	return slices.Clone(r.managed), nil
}

func (r *fakeRepo) StagedFiles(context.Context) ([]string, error) {
	return slices.Clone(r.staged), nil
}

func (r *fakeRepo) DirtyFiles(_ context.Context, paths []string) ([]string, error) {
	var dirty []string
	for _, p := range paths {
		if r.dirty[p] {
			dirty = append(dirty, p)
		}
	}
	return dirty, nil
}

func (r *fakeRepo) IndexContent(_ context.Context, path string) ([]byte, error) {
	data, ok := r.index[path]
	if !ok {
		return nil, fmt.Errorf("%s is not in the index", path)
	}
	return slices.Clone(data), nil
}

func (r *fakeRepo) StageContent(_ context.Context, path string, data []byte) error {
	r.index[path] = slices.Clone(data)
	return nil
}

func (r *fakeRepo) Checkout(ctx context.Context, paths []string) error {
	for _, p := range paths {
		var out bytes.Buffer
		if err := r.filter.Smudge(ctx, bytes.NewReader(r.index[p]), &out); err != nil {
			return err
		}
		r.worktree[p] = out.Bytes()
		delete(r.dirty, p)
	}
	return nil
}

type testEnv struct {
	*Env
	repo   *fakeRepo
	gitDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gitDir := filepath.Join(t.TempDir(), ".git")

	backend := configs.NewFileBackend(filepath.Join(gitDir, "config.toml"))
	store := credentials.NewStore(backend)
	filter := filters.New(store, nil, logger.Logger{})

	repo := newFakeRepo(gitDir)
	repo.filter = filter

	return &testEnv{
		Env: &Env{
			Repo:       repo,
			Store:      store,
			Filter:     filter,
			Lock:       credentials.NewLock(filepath.Join(gitDir, "vellum.lock")),
			Audit:      audit.ForGitDir(gitDir),
			Executable: "/opt/vellum/bin/vellum",
		},
		repo:   repo,
		gitDir: gitDir,
	}
}

func (e *testEnv) configure(t *testing.T, cipher, password string) {
	t.Helper()
	_, err := Configure(context.Background(), e.Env, ConfigureOptions{Cipher: cipher, Password: password, SkipCheckout: true})
	require.NoError(t, err)
}
