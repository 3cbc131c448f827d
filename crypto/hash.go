package crypto

import (
	"hash"
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"golang.org/x/crypto/sha3"
)

type HashReader interface {
	hash.Hash
	io.Reader
}

func newKeccak256() HashReader {
	//nolint:forcetypeassert
	return sha3.NewLegacyKeccak256().(HashReader)
}

// Keccak256 hashes the concatenation of all data
func Keccak256[T ~string | ~[]byte](data ...T) (result types.Hash) {
	h := newKeccak256()
	for _, b := range data {
		_, _ = h.Write([]byte(b))
	}
	_, _ = h.Read(result[:types.HashSize])

	return
}

// HopefulHashToPoint
// Interprets Keccak256(data) directly as a compressed point, this fails for 7/8 of inputs
// Defined as H_p^1 in Carrot
func HopefulHashToPoint[T curve25519.PointOperations](dst *curve25519.PublicKey[T], data []byte) *curve25519.PublicKey[T] {
	if curve25519.DecodeCompressedPoint(dst, Keccak256(data)) == nil {
		return nil
	}

	// Ensure this point lies within the prime-order subgroup
	return dst.MultByCofactor(dst)
}

// BiasedHashToPoint Monero's `hash_to_ec` / `biased_hash_to_ec` function.
//
// This applies Elligator 2 once over Keccak256(data), then clears the cofactor.
// As this only applies Elligator 2 once, it's limited to a subset of points and biased accordingly.
// Used as H_p for key image generators.
func BiasedHashToPoint[T curve25519.PointOperations](dst *curve25519.PublicKey[T], data []byte) *curve25519.PublicKey[T] {
	if curve25519.Elligator2WithUniformBytes(dst, Keccak256(data)) == nil {
		return nil
	}

	// Ensure points lie within the prime-order subgroup
	return dst.MultByCofactor(dst)
}
