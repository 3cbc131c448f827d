package crypto

import (
	"fmt"
	"io"

	"git.gammaspectra.live/P2Pool/confidential/types"
	"golang.org/x/crypto/chacha20poly1305"
)

const CipherKeySize = chacha20poly1305.KeySize
const CipherNonceSize = chacha20poly1305.NonceSize

// CipherOverhead bytes added to every plaintext, nonce and authentication tag
const CipherOverhead = CipherNonceSize + chacha20poly1305.Overhead

var ErrCiphertext = fmt.Errorf("cipher rejected ciphertext: %w", types.ErrDecryption)

// Encrypt seals plaintext under key with a random nonce, which is prepended to the ciphertext
func Encrypt(plaintext []byte, key types.Hash, randomReader io.Reader) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}

	dst := make([]byte, CipherNonceSize, len(plaintext)+CipherOverhead)
	if _, err = io.ReadFull(randomReader, dst[:CipherNonceSize]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}

	return aead.Seal(dst, dst[:CipherNonceSize], plaintext, nil), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Any tampering or a wrong key returns ErrCiphertext
func Decrypt(ciphertext []byte, key types.Hash) ([]byte, error) {
	if len(ciphertext) < CipherOverhead {
		return nil, ErrCiphertext
	}

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, ciphertext[:CipherNonceSize], ciphertext[CipherNonceSize:], nil)
	if err != nil {
		return nil, ErrCiphertext
	}
	return plaintext, nil
}
