package ciphers

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"
	"golang.org/x/crypto/chacha20poly1305"
)

// Provider reports the ciphers an underlying crypto implementation supports.
type Provider interface {
	Ciphers() []Cipher
}

// StdProvider implements ciphers with the Go standard library and x/crypto.
type StdProvider struct{}

func (StdProvider) Ciphers() []Cipher {
	return []Cipher{
		blockCBC{name: "aes-128-cbc", keySize: 16, blockSize: aes.BlockSize, newBlock: aes.NewCipher},
		blockCBC{name: "aes-192-cbc", keySize: 24, blockSize: aes.BlockSize, newBlock: aes.NewCipher},
		blockCBC{name: "aes-256-cbc", keySize: 32, blockSize: aes.BlockSize, newBlock: aes.NewCipher},
		blockCBC{name: "des-ede3-cbc", keySize: 24, blockSize: des.BlockSize, newBlock: des.NewTripleDESCipher},
		blockCBC{name: "bf-cbc", keySize: 16, blockSize: blowfish.BlockSize, newBlock: newBlowfish},
		blockCBC{name: "cast5-cbc", keySize: 16, blockSize: cast5.BlockSize, newBlock: newCast5},
		aead{name: "aes-128-gcm", keySize: 16, newAEAD: newAESGCM},
		aead{name: "aes-256-gcm", keySize: 32, newAEAD: newAESGCM},
		aead{name: "chacha20-poly1305", keySize: chacha20poly1305.KeySize, newAEAD: chacha20poly1305.New},
	}
}

func newBlowfish(key []byte) (cipher.Block, error) {
	return blowfish.NewCipher(key)
}

func newCast5(key []byte) (cipher.Block, error) {
	return cast5.NewCipher(key)
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
