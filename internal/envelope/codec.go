package envelope

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/PolarWolf314/vellum/internal/ciphers"
	"github.com/PolarWolf314/vellum/internal/credentials"
	verrors "github.com/PolarWolf314/vellum/internal/errors"

	"golang.org/x/crypto/pbkdf2"
)

// Iterations is the PBKDF2 round count shared by every envelope.
const Iterations = 10000

// Codec encrypts and decrypts envelopes with ciphers from a Registry.
type Codec struct {
	registry *ciphers.Registry
}

// New returns a Codec. A nil registry means ciphers.Default.
func New(reg *ciphers.Registry) *Codec {
	if reg == nil {
		reg = ciphers.Default
	}
	return &Codec{registry: reg}
}

// Encrypt seals plaintext for filename under cred.
//
// The output is a pure function of its inputs. Empty plaintext is rejected
// with ErrEmptyPlaintext; callers pass empty files through untouched.
func (c *Codec) Encrypt(cred credentials.Credential, filename string, plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, verrors.ErrEmptyPlaintext
	}
	if cred.Password == "" {
		return nil, verrors.ErrEmptyPassword
	}

	ciph, err := c.registry.Lookup(cred.Cipher)
	if err != nil {
		return nil, err
	}

	salt := DeriveSalt(filename, cred.Password, plaintext)
	key, iv := deriveKeyIV(cred.Password, salt[:], ciph.KeySize(), ciph.IVSize())

	sealed, err := ciph.Seal(key, iv, plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrEncryptFailed, err)
	}

	raw := make([]byte, 0, len(Magic)+SaltSize+len(sealed))
	raw = append(raw, Magic...)
	raw = append(raw, salt[:]...)
	raw = append(raw, sealed...)
	return armor(raw), nil
}

// Decrypt opens an envelope, reading the salt from the envelope itself.
func (c *Codec) Decrypt(cred credentials.Credential, data []byte) ([]byte, error) {
	if !IsEnvelope(data) {
		return nil, verrors.ErrNotEnvelope
	}

	ciph, err := c.registry.Lookup(cred.Cipher)
	if err != nil {
		return nil, err
	}

	salt, ciphertext, err := dearmor(data)
	if err != nil {
		return nil, err
	}

	key, iv := deriveKeyIV(cred.Password, salt, ciph.KeySize(), ciph.IVSize())
	plaintext, err := ciph.Open(key, iv, ciphertext)
	if err != nil {
		if errors.Is(err, verrors.ErrDecryptFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", verrors.ErrDecryptFailed, err)
	}
	return plaintext, nil
}

// Open is the fail-soft form of Decrypt: empty input, non-envelopes and
// envelopes that do not open under cred come back unchanged.
func (c *Codec) Open(cred credentials.Credential, data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	plaintext, err := c.Decrypt(cred, data)
	if err != nil {
		return data
	}
	return plaintext
}

func deriveKeyIV(password string, salt []byte, keySize, ivSize int) (key, iv []byte) {
	material := pbkdf2.Key([]byte(password), salt, Iterations, keySize+ivSize, sha256.New)
	return material[:keySize], material[keySize:]
}
