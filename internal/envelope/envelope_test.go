package envelope

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/PolarWolf314/vellum/internal/ciphers"
	"github.com/PolarWolf314/vellum/internal/credentials"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCred(cipher, password string) credentials.Credential {
	return credentials.Credential{Version: credentials.FormatVersion, Cipher: cipher, Password: password}
}

func TestDeriveSalt_MatchesHMACTail(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("config/db.yml:correct-horse"))
	mac.Write([]byte("secret\n"))
	sum := mac.Sum(nil)

	salt := DeriveSalt("config/db.yml", "correct-horse", []byte("secret\n"))
	assert.Equal(t, sum[16:], salt[:])
}

func TestDeriveSalt_ScopedToInputs(t *testing.T) {
	base := DeriveSalt("a.txt", "pw", []byte("content"))

	assert.Equal(t, base, DeriveSalt("a.txt", "pw", []byte("content")))
	assert.NotEqual(t, base, DeriveSalt("b.txt", "pw", []byte("content")))
	assert.NotEqual(t, base, DeriveSalt("a.txt", "pw2", []byte("content")))
	assert.NotEqual(t, base, DeriveSalt("a.txt", "pw", []byte("content!")))
}

func TestEncrypt_Scenario(t *testing.T) {
	codec := New(nil)
	cred := testCred("aes-256-cbc", "correct-horse")

	out, err := codec.Encrypt(cred, "secret.txt", []byte("secret\n"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "U2FsdGVkX1"))
	assert.True(t, IsEnvelope(out))
	assert.True(t, bytes.HasSuffix(out, []byte("\n")))

	plain, err := codec.Decrypt(cred, out)
	require.NoError(t, err)
	assert.Equal(t, "secret\n", string(plain))
}

func TestEncrypt_Deterministic(t *testing.T) {
	codec := New(nil)
	cred := testCred("aes-256-cbc", "pw")

	first, err := codec.Encrypt(cred, "f", []byte("same content"))
	require.NoError(t, err)
	second, err := codec.Encrypt(cred, "f", []byte("same content"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := codec.Encrypt(cred, "f", []byte("other content"))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	renamed, err := codec.Encrypt(cred, "g", []byte("same content"))
	require.NoError(t, err)
	assert.NotEqual(t, first, renamed)
}

func TestEncrypt_EmbedsDerivedSalt(t *testing.T) {
	codec := New(nil)
	cred := testCred("aes-128-cbc", "pw")
	plain := []byte("the plaintext")

	out, err := codec.Encrypt(cred, "dir/file", plain)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(out), "\n", ""))
	require.NoError(t, err)

	want := DeriveSalt("dir/file", "pw", plain)
	assert.Equal(t, Magic, string(raw[:8]))
	assert.Equal(t, want[:], raw[8:24])
}

func TestEncrypt_WrapsLines(t *testing.T) {
	codec := New(nil)
	out, err := codec.Encrypt(testCred("aes-256-cbc", "pw"), "big", bytes.Repeat([]byte("x"), 1000))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 64)
	}
}

func TestEncrypt_Errors(t *testing.T) {
	codec := New(nil)

	_, err := codec.Encrypt(testCred("aes-256-cbc", "pw"), "f", nil)
	assert.ErrorIs(t, err, verrors.ErrEmptyPlaintext)

	_, err = codec.Encrypt(testCred("aes-512-cbc", "pw"), "f", []byte("x"))
	assert.ErrorIs(t, err, verrors.ErrUnsupportedCipher)

	_, err = codec.Encrypt(testCred("aes-256-cbc", ""), "f", []byte("x"))
	assert.ErrorIs(t, err, verrors.ErrEmptyPassword)
}

func TestRoundTrip_AllCiphers(t *testing.T) {
	codec := New(nil)
	rng := rand.New(rand.NewSource(42))

	for _, name := range ciphers.Default.Supported() {
		t.Run(name, func(t *testing.T) {
			cred := testCred(name, "a long and fairly random password")
			for i := 0; i < 5; i++ {
				plain := make([]byte, 1+rng.Intn(300))
				rng.Read(plain)
				filename := fmt.Sprintf("files/%d.bin", i)

				out, err := codec.Encrypt(cred, filename, plain)
				require.NoError(t, err)
				require.True(t, IsEnvelope(out))

				back, err := codec.Decrypt(cred, out)
				require.NoError(t, err)
				assert.Equal(t, plain, back)
			}
		})
	}
}

func TestIsEnvelope(t *testing.T) {
	assert.False(t, IsEnvelope(nil))
	assert.False(t, IsEnvelope([]byte("short")))
	assert.False(t, IsEnvelope([]byte("hello, world! this is plaintext")))
	assert.False(t, IsEnvelope([]byte("U2FsdGVkX1!!garbage")))
	assert.True(t, IsEnvelope([]byte("U2FsdGVkX18=")))
}

func TestDecrypt_NonEnvelopePassesThroughOpen(t *testing.T) {
	codec := New(nil)
	cred := testCred("aes-256-cbc", "pw")

	for _, in := range [][]byte{
		[]byte("plain text\n"),
		{0x00, 0x01, 0x02, 0xff},
		[]byte("U2Fsd"),
	} {
		_, err := codec.Decrypt(cred, in)
		assert.ErrorIs(t, err, verrors.ErrNotEnvelope)
		assert.Equal(t, in, codec.Open(cred, in))
	}
}

func TestOpen_EmptyPassesThrough(t *testing.T) {
	codec := New(nil)
	assert.Empty(t, codec.Open(testCred("aes-256-cbc", "pw"), []byte{}))
}

func TestOpen_WrongCredentialFailsSoft(t *testing.T) {
	codec := New(nil)
	right := testCred("aes-256-gcm", "right")
	wrong := testCred("aes-256-gcm", "wrong")

	out, err := codec.Encrypt(right, "f", []byte("secret\n"))
	require.NoError(t, err)

	_, err = codec.Decrypt(wrong, out)
	assert.ErrorIs(t, err, verrors.ErrDecryptFailed)
	assert.Equal(t, out, codec.Open(wrong, out))
}

func TestDecrypt_Malformed(t *testing.T) {
	codec := New(nil)
	cred := testCred("aes-256-cbc", "pw")

	_, err := codec.Decrypt(cred, []byte("U2FsdGVkX18=\n"))
	assert.ErrorIs(t, err, verrors.ErrMalformedEnvelope)

	_, err = codec.Decrypt(cred, []byte("U2FsdGVkX18=%%%%\n"))
	assert.ErrorIs(t, err, verrors.ErrMalformedEnvelope)
}

func TestDecrypt_UnsupportedCipher(t *testing.T) {
	codec := New(nil)
	out, err := codec.Encrypt(testCred("aes-256-cbc", "pw"), "f", []byte("x"))
	require.NoError(t, err)

	_, err = codec.Decrypt(testCred("nope", "pw"), out)
	assert.ErrorIs(t, err, verrors.ErrUnsupportedCipher)
}
