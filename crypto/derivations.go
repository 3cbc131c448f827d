package crypto

import (
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"golang.org/x/crypto/blake2b"
)

// ScalarDeriveLegacy H_s(x) = BytesToInt256(Keccak256(x)) mod ℓ
func ScalarDeriveLegacy(c *curve25519.Scalar, data ...[]byte) *curve25519.Scalar {
	return curve25519.BytesToScalar32(c, Keccak256(data...))
}

// SecretDerive keyed blake2b-256 over all data
func SecretDerive(key []byte, data ...[]byte) types.Hash {
	hasher, err := blake2b.New256(key)
	if err != nil {
		panic(err)
	}
	for _, b := range data {
		_, _ = hasher.Write(b)
	}
	var h types.Hash
	hasher.Sum(h[:0])

	return h
}
