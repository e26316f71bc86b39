package configs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

// FileBackend is a credential backend persisted as a TOML table.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

type backendFile struct {
	Values map[string]string `toml:"values"`
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Values(_ context.Context, prefix string) (map[string]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.load()
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	for k, v := range f.Values {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}

func (b *FileBackend) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.load()
	if err != nil {
		return err
	}
	f.Values[key] = value
	return b.save(f)
}

func (b *FileBackend) Unset(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.load()
	if err != nil {
		return err
	}
	if _, ok := f.Values[key]; !ok {
		return nil
	}
	delete(f.Values, key)
	return b.save(f)
}

func (b *FileBackend) load() (*backendFile, error) {
	f := &backendFile{}
	if err := LoadTOML(b.path, f); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", b.path, err)
	}
	if f.Values == nil {
		f.Values = make(map[string]string)
	}
	return f, nil
}

func (b *FileBackend) save(f *backendFile) error {
	if err := SaveTOML(b.path, f); err != nil {
		return fmt.Errorf("failed to save %s: %w", b.path, err)
	}
	return nil
}
