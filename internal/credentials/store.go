package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PolarWolf314/vellum/internal/ciphers"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// Backend persists scalar configuration values for one repository.
type Backend interface {
	// Values returns every key starting with prefix.
	Values(ctx context.Context, prefix string) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	// Unset removes key. Removing a missing key is not an error.
	Unset(ctx context.Context, key string) error
}

// Store is the credential slot of one repository.
type Store struct {
	backend  Backend
	registry *ciphers.Registry

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithRegistry sets the registry used to validate ciphers.
func WithRegistry(reg *ciphers.Registry) Option {
	return func(s *Store) {
		s.registry = reg
	}
}

func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		registry: ciphers.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the configured credential or ErrNotConfigured.
func (s *Store) Load(ctx context.Context) (Credential, error) {
	vals, err := s.backend.Values(ctx, "vellum.")
	if err != nil {
		return Credential{}, fmt.Errorf("reading credential: %w", err)
	}

	cred := Credential{
		Version:  vals[KeyVersion],
		Cipher:   vals[KeyCipher],
		Password: vals[KeyPassword],
	}
	if cred.Cipher == "" || cred.Password == "" {
		return Credential{}, verrors.ErrNotConfigured
	}
	return cred, nil
}

// State reports whether a credential is configured.
func (s *Store) State(ctx context.Context) (State, error) {
	_, err := s.Load(ctx)
	switch {
	case err == nil:
		return Configured, nil
	case errors.Is(err, verrors.ErrNotConfigured):
		return Unconfigured, nil
	default:
		return Unconfigured, err
	}
}

// Display returns the credential for reconfiguring a clone.
func (s *Store) Display(ctx context.Context) (Credential, error) {
	return s.Load(ctx)
}

// Configure moves the slot from Unconfigured to Configured and registers
// the filter commands.
func (s *Store) Configure(ctx context.Context, cipher, password string, cmds FilterCommands) (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.State(ctx)
	if err != nil {
		return Credential{}, err
	}
	if state == Configured {
		return Credential{}, verrors.ErrAlreadyConfigured
	}

	cred, err := s.validated(cipher, password)
	if err != nil {
		return Credential{}, err
	}

	if written, err := s.write(ctx, cred); err != nil {
		return Credential{}, s.rollback(ctx, written, Credential{}, err)
	}

	for _, kv := range [][2]string{
		{KeyClean, cmds.Clean},
		{KeySmudge, cmds.Smudge},
		{KeyTextConv, cmds.TextConv},
	} {
		if kv[1] == "" {
			continue
		}
		if err := s.backend.Set(ctx, kv[0], kv[1]); err != nil {
			return Credential{}, fmt.Errorf("registering %s: %w", kv[0], err)
		}
	}

	return cred, nil
}

// Replace swaps the configured credential for a new one and returns the old
// one. The old values are gone from the backend when Replace returns. If a
// write fails the keys already written are restored, so the backend never
// holds a mix of old and new values.
func (s *Store) Replace(ctx context.Context, cipher, password string) (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.Load(ctx)
	if err != nil {
		return Credential{}, err
	}

	cred, err := s.validated(cipher, password)
	if err != nil {
		return Credential{}, err
	}

	if written, err := s.write(ctx, cred); err != nil {
		return Credential{}, s.rollback(ctx, written, old, err)
	}
	return old, nil
}

// Erase removes the credential and the filter registrations.
func (s *Store) Erase(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.Load(ctx); err != nil {
		return err
	}

	for _, key := range []string{KeyPassword, KeyCipher, KeyVersion, KeyClean, KeySmudge, KeyTextConv} {
		if err := s.backend.Unset(ctx, key); err != nil {
			return fmt.Errorf("removing %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) validated(cipher, password string) (Credential, error) {
	if err := s.registry.Validate(cipher); err != nil {
		return Credential{}, err
	}
	if password == "" {
		return Credential{}, verrors.ErrEmptyPassword
	}
	if strings.ContainsAny(password, "\r\n") {
		return Credential{}, verrors.ErrPasswordLineBreak
	}
	return Credential{Version: FormatVersion, Cipher: cipher, Password: password}, nil
}

// write stores cred and returns the keys it wrote before any failure.
func (s *Store) write(ctx context.Context, cred Credential) ([]string, error) {
	var written []string
	for _, kv := range credentialFields(cred) {
		if err := s.backend.Set(ctx, kv[0], kv[1]); err != nil {
			return written, fmt.Errorf("writing %s: %w", kv[0], err)
		}
		written = append(written, kv[0])
	}
	return written, nil
}

// rollback restores the keys in written to their values in prev. Keys with
// no previous value are removed. It returns cause, annotated when the
// restore itself fails.
func (s *Store) rollback(ctx context.Context, written []string, prev Credential, cause error) error {
	values := map[string]string{}
	for _, kv := range credentialFields(prev) {
		values[kv[0]] = kv[1]
	}

	var failed []error
	for _, key := range written {
		var err error
		if v := values[key]; v != "" {
			err = s.backend.Set(ctx, key, v)
		} else {
			err = s.backend.Unset(ctx, key)
		}
		if err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", key, err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%w (restoring previous credential failed: %v)", cause, errors.Join(failed...))
	}
	return cause
}

func credentialFields(cred Credential) [][2]string {
	return [][2]string{
		{KeyVersion, cred.Version},
		{KeyCipher, cred.Cipher},
		{KeyPassword, cred.Password},
	}
}
