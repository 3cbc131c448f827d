package crypto

import (
	"bytes"
	"errors"
	"testing"

	"git.gammaspectra.live/P2Pool/confidential/types"
)

func TestCipher(t *testing.T) {
	rng := NewDeterministicTestGenerator()
	key := Keccak256([]byte("key"))
	plaintext := []byte("abcdefghijklmnopqrstuvwxyzabcdef")

	ciphertext, err := Encrypt(plaintext, key, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(ciphertext) != len(plaintext)+CipherOverhead {
		t.Fatalf("unexpected ciphertext length %d", len(ciphertext))
	}

	t.Run("RoundTrip", func(t *testing.T) {
		result, err := Decrypt(ciphertext, key)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(result, plaintext) {
			t.Fatalf("expected %x, got %x", plaintext, result)
		}
	})

	t.Run("WrongKey", func(t *testing.T) {
		_, err := Decrypt(ciphertext, Keccak256([]byte("other key")))
		if !errors.Is(err, types.ErrDecryption) {
			t.Fatalf("expected decryption error, got %v", err)
		}
	})

	t.Run("Tampered", func(t *testing.T) {
		tampered := bytes.Clone(ciphertext)
		tampered[len(tampered)-1] ^= 1
		if _, err := Decrypt(tampered, key); !errors.Is(err, ErrCiphertext) {
			t.Fatalf("expected ErrCiphertext, got %v", err)
		}
	})

	t.Run("Short", func(t *testing.T) {
		if _, err := Decrypt(ciphertext[:CipherOverhead-1], key); !errors.Is(err, ErrCiphertext) {
			t.Fatalf("expected ErrCiphertext, got %v", err)
		}
	})

	t.Run("RandomNonce", func(t *testing.T) {
		other, err := Encrypt(plaintext, key, rng)
		if err != nil {
			t.Fatal(err)
		}
		if bytes.Equal(other, ciphertext) {
			t.Fatal("identical plaintext encrypted identically")
		}
	})
}
