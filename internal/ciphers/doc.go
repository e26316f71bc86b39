// Package ciphers exposes the symmetric ciphers vellum can drive through
// its envelope format.
//
// A Provider reports the ciphers it implements. The Registry answers
// membership questions against whatever the provider reports at call time:
//
//	reg := ciphers.NewRegistry(ciphers.StdProvider{})
//	if err := reg.Validate("aes-256-cbc"); err != nil {
//	    // re-prompt or abort, the choice belongs to the caller
//	}
//
// Names are matched exactly and case-sensitively. There is no fuzzy matching
// and no substitution of a "close enough" cipher.
//
// Block ciphers run in CBC mode with PKCS#7 padding. The AEAD ciphers
// (AES-GCM, ChaCha20-Poly1305) authenticate the ciphertext, so opening with
// a wrong key always fails instead of producing garbage.
package ciphers
