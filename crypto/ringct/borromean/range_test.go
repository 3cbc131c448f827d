package borromean

import (
	"errors"
	"fmt"
	"testing"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/types"
)

func TestRange(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()
	generators := crypto.DefaultGenerators()
	prover := NewProver(generators)

	for _, value := range []uint64{0, 1, 2, 1337, 1 << 31, MaxValue} {
		t.Run(fmt.Sprintf("%d", value), func(t *testing.T) {
			var mask curve25519.Scalar
			curve25519.RandomScalar(&mask, rng)

			var commitment curve25519.ConstantTimePublicKey
			generators.Commit(&commitment, value, &mask)

			proof, err := prover.Prove(value, &mask, rng)
			if err != nil {
				t.Fatal(err)
			}
			if len(proof) != RangeSize {
				t.Fatalf("expected proof size %d, got %d", RangeSize, len(proof))
			}

			if !prover.Verify(proof, &commitment) {
				t.Fatal("range proof did not verify")
			}

			var other curve25519.ConstantTimePublicKey
			generators.Commit(&other, value+1, &mask)
			if prover.Verify(proof, &other) {
				t.Fatal("range proof verified against another commitment")
			}
		})
	}
}

func TestRangeOutOfRange(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()
	prover := NewProver(crypto.DefaultGenerators())

	var mask curve25519.Scalar
	curve25519.RandomScalar(&mask, rng)

	_, err := prover.Prove(MaxValue+1, &mask, rng)
	if !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected ErrValueOutOfRange, got %v", err)
	}
	if !errors.Is(err, types.ErrPrecondition) {
		t.Fatalf("expected precondition error kind, got %v", err)
	}
}

func TestRangeTampered(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()
	generators := crypto.DefaultGenerators()
	prover := NewProver(generators)

	var mask curve25519.Scalar
	curve25519.RandomScalar(&mask, rng)

	var commitment curve25519.ConstantTimePublicKey
	generators.Commit(&commitment, 42, &mask)

	proof, err := prover.Prove(42, &mask, rng)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Truncated", func(t *testing.T) {
		if prover.Verify(proof[:len(proof)-1], &commitment) {
			t.Fatal("truncated proof verified")
		}
	})

	t.Run("Response", func(t *testing.T) {
		tampered := make([]byte, len(proof))
		copy(tampered, proof)
		// first byte of S0[0], stays canonical
		tampered[curve25519.PublicKeySize*Elements] ^= 1
		if prover.Verify(tampered, &commitment) {
			t.Fatal("tampered proof verified")
		}
	})

	t.Run("Generators", func(t *testing.T) {
		other := &crypto.PedersenGenerators{
			Value:    crypto.BiasedHashToPoint(new(curve25519.ConstantTimePublicKey), []byte("other value generator")),
			Blinding: generators.Blinding,
		}
		if NewProver(other).Verify(proof, &commitment) {
			t.Fatal("proof verified under mismatched generators")
		}
	})
}
