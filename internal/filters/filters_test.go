package filters

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/vellum/internal/credentials"
	"github.com/PolarWolf314/vellum/internal/envelope"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	logger "github.com/PolarWolf314/vellum/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct {
	cred  credentials.Credential
	err   error
	calls int
}

func (s *fixedSource) Load(context.Context) (credentials.Credential, error) {
	s.calls++
	return s.cred, s.err
}

func configured(cipher, password string) *fixedSource {
	return &fixedSource{cred: credentials.Credential{Version: credentials.FormatVersion, Cipher: cipher, Password: password}}
}

func unconfigured() *fixedSource {
	return &fixedSource{err: verrors.ErrNotConfigured}
}

func clean(t *testing.T, f *Filter, name string, in []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, f.Clean(context.Background(), name, bytes.NewReader(in), &out))
	return out.Bytes()
}

func smudge(t *testing.T, f *Filter, in []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, f.Smudge(context.Background(), bytes.NewReader(in), &out))
	return out.Bytes()
}

func textconv(t *testing.T, f *Filter, in []byte) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, in, 0600))

	var out bytes.Buffer
	require.NoError(t, f.TextConv(context.Background(), path, &out))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.Equal(in, after), "textconv must not modify its input")
	return out.Bytes()
}

func TestCleanSmudge_Scenario(t *testing.T) {
	f := New(configured("aes-256-cbc", "correct-horse"), nil, logger.Logger{})

	stored := clean(t, f, "secret.txt", []byte("secret\n"))
	assert.True(t, strings.HasPrefix(string(stored), "U2FsdGVkX1"))

	assert.Equal(t, "secret\n", string(smudge(t, f, stored)))
	assert.Equal(t, "secret\n", string(textconv(t, f, stored)))
}

func TestClean_Idempotent(t *testing.T) {
	f := New(configured("aes-256-cbc", "pw"), nil, logger.Logger{})
	plain := []byte("DATABASE_URL=postgres://localhost\n")

	once := clean(t, f, "app.env", plain)
	twice := clean(t, f, "app.env", once)
	assert.Equal(t, once, twice)

	again := clean(t, f, "app.env", plain)
	assert.Equal(t, once, again)
}

func TestClean_InverseOfTextConv(t *testing.T) {
	f := New(configured("aes-128-gcm", "pw"), nil, logger.Logger{})

	for _, p := range []string{"a", "multi\nline\ncontent\n", strings.Repeat("z", 5000)} {
		stored := clean(t, f, "f.txt", []byte(p))
		roundTrip := clean(t, f, "f.txt", textconv(t, f, stored))
		assert.Equal(t, stored, roundTrip)
	}
}

func TestEmptyFile_PassesThrough(t *testing.T) {
	src := configured("aes-256-cbc", "pw")
	f := New(src, nil, logger.Logger{})

	assert.Empty(t, clean(t, f, "empty", nil))
	assert.Empty(t, smudge(t, f, nil))
	assert.Empty(t, textconv(t, f, nil))
	assert.Zero(t, src.calls, "empty content never needs the credential")
}

func TestClean_Unconfigured(t *testing.T) {
	f := New(unconfigured(), nil, logger.Logger{})

	var out bytes.Buffer
	err := f.Clean(context.Background(), "f", strings.NewReader("plain"), &out)
	assert.ErrorIs(t, err, verrors.ErrNotConfigured)
	assert.Empty(t, out.Bytes())
}

func TestSmudge_Unconfigured(t *testing.T) {
	stored := clean(t, New(configured("aes-256-cbc", "pw"), nil, logger.Logger{}), "f", []byte("x"))

	f := New(unconfigured(), nil, logger.Logger{})
	assert.Equal(t, stored, smudge(t, f, stored))
	assert.Equal(t, stored, textconv(t, f, stored))
}

func TestSmudge_BackendErrorFailsSoft(t *testing.T) {
	stored := clean(t, New(configured("aes-256-cbc", "pw"), nil, logger.Logger{}), "f", []byte("x"))

	var logs bytes.Buffer
	prev := logger.SetOutput(&logs)
	defer logger.SetOutput(prev)

	f := New(&fixedSource{err: errors.New("git config exploded")}, nil, logger.Logger{})
	assert.Equal(t, stored, smudge(t, f, stored))
	assert.Contains(t, logs.String(), "git config exploded")
}

func TestSmudge_WrongCredentialFailsSoft(t *testing.T) {
	stored := clean(t, New(configured("chacha20-poly1305", "old"), nil, logger.Logger{}), "f", []byte("secret"))

	f := New(configured("chacha20-poly1305", "new"), nil, logger.Logger{})
	assert.Equal(t, stored, smudge(t, f, stored))
}

func TestSmudge_PlaintextPassesThrough(t *testing.T) {
	src := configured("aes-256-cbc", "pw")
	f := New(src, nil, logger.Logger{})

	assert.Equal(t, "not encrypted\n", string(smudge(t, f, []byte("not encrypted\n"))))
	assert.Zero(t, src.calls)
}

func TestTextConv_MissingFile(t *testing.T) {
	f := New(configured("aes-256-cbc", "pw"), nil, logger.Logger{})

	var out bytes.Buffer
	err := f.TextConv(context.Background(), filepath.Join(t.TempDir(), "missing"), &out)
	assert.ErrorIs(t, err, verrors.ErrManagedFileIO)
}

func TestSeal_ExplicitCredential(t *testing.T) {
	f := New(unconfigured(), envelope.New(nil), logger.Logger{})
	cred := credentials.Credential{Cipher: "aes-256-cbc", Password: "explicit"}

	out, err := f.Seal(cred, "f", []byte("data"))
	require.NoError(t, err)
	assert.True(t, envelope.IsEnvelope(out))
	assert.Equal(t, "data", string(f.Reveal(cred, out)))

	same, err := f.Seal(cred, "f", out)
	require.NoError(t, err)
	assert.Equal(t, out, same)
}

func TestUnseal_Strict(t *testing.T) {
	f := New(unconfigured(), nil, logger.Logger{})
	oldCred := credentials.Credential{Cipher: "aes-256-gcm", Password: "old"}
	newCred := credentials.Credential{Cipher: "aes-256-gcm", Password: "new"}

	stored, err := f.Seal(oldCred, "f", []byte("data"))
	require.NoError(t, err)

	plain, err := f.Unseal(oldCred, stored)
	require.NoError(t, err)
	assert.Equal(t, "data", string(plain))

	_, err = f.Unseal(newCred, stored)
	assert.ErrorIs(t, err, verrors.ErrDecryptFailed)

	plain, err = f.Unseal(newCred, []byte("never encrypted"))
	require.NoError(t, err)
	assert.Equal(t, "never encrypted", string(plain))

	plain, err = f.Unseal(newCred, nil)
	require.NoError(t, err)
	assert.Empty(t, plain)
}
