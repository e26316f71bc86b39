package ciphers

import (
	"fmt"
	"sort"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// DefaultCipher is used when the caller does not pick one.
const DefaultCipher = "aes-256-cbc"

// Registry validates cipher names against a Provider.
type Registry struct {
	provider Provider
}

// Default is the registry backed by StdProvider.
var Default = NewRegistry(StdProvider{})

func NewRegistry(p Provider) *Registry {
	return &Registry{provider: p}
}

// Supported returns the sorted cipher names the provider reports right now.
func (r *Registry) Supported() []string {
	list := r.provider.Ciphers()
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name())
	}
	sort.Strings(names)
	return names
}

// Validate returns ErrUnsupportedCipher unless name is an exact member of Supported.
func (r *Registry) Validate(name string) error {
	_, err := r.Lookup(name)
	return err
}

// Lookup returns the cipher registered under name.
func (r *Registry) Lookup(name string) (Cipher, error) {
	for _, c := range r.provider.Ciphers() {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", verrors.ErrUnsupportedCipher, name)
}
