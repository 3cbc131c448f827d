package crypto

import (
	"testing"

	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
)

func TestOneTimeSignature(t *testing.T) {
	rng := NewDeterministicTestGenerator()
	msg := []byte{1, 2, 3, 4, 5, 6}

	pair := NewRandomKeyPair[curve25519.ConstantTimeOperations](rng)
	unrelated := NewRandomKeyPair[curve25519.ConstantTimeOperations](rng)

	signature, err := CreateOneTimeSignature(&pair.PrivateKey, msg, rng)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Valid", func(t *testing.T) {
		if !signature.Verify(&pair.PublicKey, msg) {
			t.Fatal("signature did not verify")
		}
	})

	t.Run("UnrelatedKey", func(t *testing.T) {
		if signature.Verify(&unrelated.PublicKey, msg) {
			t.Fatal("signature verified with unrelated key")
		}
	})

	t.Run("OtherMessage", func(t *testing.T) {
		if signature.Verify(&pair.PublicKey, []byte{1, 2, 3, 4, 5, 7}) {
			t.Fatal("signature verified with other message")
		}
	})

	t.Run("Bytes", func(t *testing.T) {
		decoded, err := NewOneTimeSignatureFromBytes(signature.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !decoded.Verify(&pair.PublicKey, msg) {
			t.Fatal("decoded signature did not verify")
		}

		buf := signature.Bytes()
		for i := range buf[curve25519.PublicKeySize:] {
			buf[curve25519.PublicKeySize+i] = 0xff
		}
		if _, err = NewOneTimeSignatureFromBytes(buf); err == nil {
			t.Fatal("expected error on unreduced response")
		}
	})

	t.Run("FreshBlinding", func(t *testing.T) {
		other, err := CreateOneTimeSignature(&pair.PrivateKey, msg, rng)
		if err != nil {
			t.Fatal(err)
		}
		if other.BlindPoint.Equal(&signature.BlindPoint) == 1 {
			t.Fatal("blinding was reused")
		}
	})
}
