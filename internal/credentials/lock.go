package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// Lock is an exclusive lock file guarding lifecycle operations.
type Lock struct {
	path string
}

// NewLock returns a lock backed by the file at path.
func NewLock(path string) *Lock {
	return &Lock{path: path}
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire creates the lock file. It fails with ErrLocked when the file
// already exists; a crashed process leaves it behind and it must be removed
// by hand.
func (l *Lock) Acquire() (release func() error, err error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%w (remove %s if no other vellum process is running)", verrors.ErrLocked, l.path)
	}
	if err != nil {
		return nil, fmt.Errorf("creating lock file: %w", err)
	}

	_, _ = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	if err := f.Close(); err != nil {
		_ = os.Remove(l.path)
		return nil, fmt.Errorf("writing lock file: %w", err)
	}

	return func() error {
		if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("releasing lock: %w", err)
		}
		return nil
	}, nil
}
