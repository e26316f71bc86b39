package workflows

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/ciphers"
	"github.com/PolarWolf314/vellum/internal/credentials"
	"github.com/PolarWolf314/vellum/internal/filters"
	"github.com/PolarWolf314/vellum/internal/git"
	logger "github.com/PolarWolf314/vellum/internal/logging"
	"github.com/PolarWolf314/vellum/internal/transfer"
)

// DefaultPasswordLength is used when Env.PasswordLength is zero.
const DefaultPasswordLength = 30

// Env holds the collaborators shared by all workflows.
type Env struct {
	Repo     git.Repository
	Store    *credentials.Store
	Filter   *filters.Filter
	Registry *ciphers.Registry

	// Lock serializes lifecycle operations across processes. Optional.
	Lock *credentials.Lock

	// Audit receives an entry for every lifecycle operation. Optional.
	Audit *audit.Log

	// Sealer is required by Export and Import only.
	Sealer transfer.Sealer

	// Executable is the vellum binary registered as the filter command and
	// called from the pre-commit hook.
	Executable string

	// DefaultCipher is used when a workflow is not given a cipher.
	DefaultCipher string

	// PasswordLength is the length of generated passwords.
	PasswordLength int

	Log logger.Logger
}

func (e *Env) registry() *ciphers.Registry {
	if e.Registry == nil {
		return ciphers.Default
	}
	return e.Registry
}

func (e *Env) defaultCipher() string {
	if e.DefaultCipher == "" {
		return ciphers.DefaultCipher
	}
	return e.DefaultCipher
}

// acquire takes the lifecycle lock when one is configured.
func (e *Env) acquire() (func(), error) {
	if e.Lock == nil {
		return func() {}, nil
	}
	release, err := e.Lock.Acquire()
	if err != nil {
		return nil, err
	}
	return func() {
		if err := release(); err != nil {
			e.Log.Warnf("%v", err)
		}
	}, nil
}

// generatePassword returns n random characters from the URL-safe base64 alphabet.
func (e *Env) generatePassword() (string, error) {
	n := e.PasswordLength
	if n <= 0 {
		n = DefaultPasswordLength
	}

	buf := make([]byte, base64.RawURLEncoding.DecodedLen(n)+1)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:n], nil
}
