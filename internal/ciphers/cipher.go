package ciphers

import (
	"bytes"
	"crypto/cipher"
	"fmt"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// Cipher seals and opens content with a key and IV derived by the caller.
type Cipher interface {
	Name() string
	KeySize() int
	IVSize() int
	Seal(key, iv, plaintext []byte) ([]byte, error)
	Open(key, iv, ciphertext []byte) ([]byte, error)
}

// blockCBC runs a block cipher in CBC mode with PKCS#7 padding.
type blockCBC struct {
	name      string
	keySize   int
	blockSize int
	newBlock  func(key []byte) (cipher.Block, error)
}

func (c blockCBC) Name() string { return c.name }
func (c blockCBC) KeySize() int { return c.keySize }
func (c blockCBC) IVSize() int  { return c.blockSize }

func (c blockCBC) Seal(key, iv, plaintext []byte) ([]byte, error) {
	block, err := c.init(key, iv)
	if err != nil {
		return nil, err
	}

	padded := pad(plaintext, c.blockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

func (c blockCBC) Open(key, iv, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%c.blockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the %s block size",
			verrors.ErrDecryptFailed, len(ciphertext), c.name)
	}

	block, err := c.init(key, iv)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return unpad(out, c.blockSize)
}

func (c blockCBC) init(key, iv []byte) (cipher.Block, error) {
	if len(key) != c.keySize {
		return nil, fmt.Errorf("%s: invalid key length %d, expected %d", c.name, len(key), c.keySize)
	}
	if len(iv) != c.blockSize {
		return nil, fmt.Errorf("%s: invalid IV length %d, expected %d", c.name, len(iv), c.blockSize)
	}
	return c.newBlock(key)
}

// pad appends PKCS#7 padding. A full block is added when len(p) is aligned.
func pad(p []byte, blockSize int) []byte {
	n := blockSize - len(p)%blockSize
	return append(bytes.Clone(p), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(p []byte, blockSize int) ([]byte, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty block", verrors.ErrDecryptFailed)
	}
	n := int(p[len(p)-1])
	if n == 0 || n > blockSize || n > len(p) {
		return nil, fmt.Errorf("%w: bad padding", verrors.ErrDecryptFailed)
	}
	for _, b := range p[len(p)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", verrors.ErrDecryptFailed)
		}
	}
	return p[:len(p)-n], nil
}

// aead wraps an authenticated cipher. The IV doubles as the nonce; it is
// derived per salt, so it never repeats for distinct plaintexts.
type aead struct {
	name    string
	keySize int
	newAEAD func(key []byte) (cipher.AEAD, error)
}

func (c aead) Name() string { return c.name }
func (c aead) KeySize() int { return c.keySize }
func (c aead) IVSize() int  { return 12 }

func (c aead) Seal(key, iv, plaintext []byte) ([]byte, error) {
	a, err := c.init(key, iv)
	if err != nil {
		return nil, err
	}
	return a.Seal(nil, iv, plaintext, nil), nil
}

func (c aead) Open(key, iv, ciphertext []byte) ([]byte, error) {
	a, err := c.init(key, iv)
	if err != nil {
		return nil, err
	}
	out, err := a.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrDecryptFailed, err)
	}
	return out, nil
}

func (c aead) init(key, iv []byte) (cipher.AEAD, error) {
	if len(key) != c.keySize {
		return nil, fmt.Errorf("%s: invalid key length %d, expected %d", c.name, len(key), c.keySize)
	}
	a, err := c.newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != a.NonceSize() {
		return nil, fmt.Errorf("%s: invalid nonce length %d, expected %d", c.name, len(iv), a.NonceSize())
	}
	return a, nil
}
