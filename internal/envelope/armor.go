package envelope

import (
	"bytes"
	"encoding/base64"
	"fmt"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// Magic opens every decoded envelope.
const Magic = "Salted__"

const (
	lineWidth = 64

	// 12 base64 characters decode to 9 bytes, enough to cover Magic.
	prefixChars = 12
)

// IsEnvelope reports whether data starts with an armored Magic prefix.
// Only the leading characters are decoded; no decryption is attempted.
func IsEnvelope(data []byte) bool {
	if len(data) < prefixChars {
		return false
	}

	var head [9]byte
	n, err := base64.StdEncoding.Decode(head[:], data[:prefixChars])
	if err != nil || n < len(Magic) {
		return false
	}
	return string(head[:len(Magic)]) == Magic
}

func armor(raw []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(raw)

	var b bytes.Buffer
	b.Grow(len(encoded) + len(encoded)/lineWidth + 1)
	for len(encoded) > lineWidth {
		b.WriteString(encoded[:lineWidth])
		b.WriteByte('\n')
		encoded = encoded[lineWidth:]
	}
	b.WriteString(encoded)
	b.WriteByte('\n')
	return b.Bytes()
}

// dearmor decodes an envelope and splits it into salt and ciphertext.
func dearmor(data []byte) (salt, ciphertext []byte, err error) {
	compact := bytes.Join(bytes.Fields(data), nil)

	raw := make([]byte, base64.StdEncoding.DecodedLen(len(compact)))
	n, err := base64.StdEncoding.Decode(raw, compact)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", verrors.ErrMalformedEnvelope, err)
	}
	raw = raw[:n]

	if len(raw) <= len(Magic)+SaltSize || string(raw[:len(Magic)]) != Magic {
		return nil, nil, fmt.Errorf("%w: envelope too short (%d bytes)", verrors.ErrMalformedEnvelope, len(raw))
	}

	return raw[len(Magic) : len(Magic)+SaltSize], raw[len(Magic)+SaltSize:], nil
}
