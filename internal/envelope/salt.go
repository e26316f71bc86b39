package envelope

import (
	"crypto/hmac"
	"crypto/sha256"
)

// SaltSize is the number of salt bytes carried in every envelope.
const SaltSize = 16

// DeriveSalt returns the deterministic salt for plaintext stored under filename.
//
// plaintext must be the exact buffer that is about to be encrypted; reading
// it again from disk could observe a different version of the file.
func DeriveSalt(filename, password string, plaintext []byte) [SaltSize]byte {
	mac := hmac.New(sha256.New, []byte(filename+":"+password))
	mac.Write(plaintext)
	sum := mac.Sum(nil)

	var salt [SaltSize]byte
	copy(salt[:], sum[len(sum)-SaltSize:])
	return salt
}
