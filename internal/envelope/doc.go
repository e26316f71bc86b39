// Package envelope implements the salted, armored ciphertext format that
// vellum stores in git objects.
//
// # Format
//
//	base64( "Salted__" || salt[16] || ciphertext )
//
// The base64 text is wrapped at 64 columns and ends with a newline, so
// stored objects stay printable and diff-friendly.
//
// # Determinism
//
// The salt is not random. DeriveSalt computes HMAC-SHA256 over the plaintext
// keyed with "<filename>:<password>" and keeps the last 16 bytes. Encrypting
// an unchanged file under an unchanged credential therefore produces the same
// bytes every time, and git sees no change. Any change to the plaintext, the
// filename or the password yields a different salt.
//
// Key and IV are derived from the password and salt with PBKDF2-HMAC-SHA256
// using the fixed Iterations count. The count is not stored in the envelope;
// changing it makes every existing envelope unreadable.
//
// # Failure policy
//
// Decrypt is strict and reports why an envelope could not be opened. Open is
// the fail-soft variant used by the smudge and textconv filters: anything it
// cannot decrypt is returned unchanged, so a wrong credential shows up as a
// file that still looks encrypted rather than as corrupted content.
//
// The CBC ciphers, aes-256-cbc included, carry no authentication tag. A wrong
// key is only noticed through invalid PKCS#7 padding, and roughly one wrong
// key in 256 yields valid padding, so Open returns garbage instead of the
// stored form. The AEAD ciphers (aes-128-gcm, aes-256-gcm, chacha20-poly1305)
// reject every wrong key and every modified envelope. Choose one of them when
// reliable wrong-key detection matters.
package envelope
