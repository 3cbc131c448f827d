package crypto

import (
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/edwards25519"
)

var (
	// GeneratorG generator of 𝔾E, the Ed25519 base point
	// G = {x, 4/5 mod q}
	// Used as base of every key pair and as blinding generator of Pedersen commitments
	GeneratorG = curve25519.NewPublicKey[curve25519.ConstantTimeOperations](edwards25519.NewGeneratorPoint())

	// GeneratorH H_p^1(G)
	// H = 8*to_point(keccak(G))
	// note: to_point(keccak(G)) is known to succeed for the canonical value of G
	//
	// Used for values within Pedersen commitments
	GeneratorH = HopefulHashToPoint(new(curve25519.ConstantTimePublicKey), GeneratorG.Slice())
)

// PedersenGenerators the two independent generators of a Pedersen commitment
// Value is G1, Blinding is G2
type PedersenGenerators struct {
	Value    *curve25519.ConstantTimePublicKey
	Blinding *curve25519.ConstantTimePublicKey
}

var defaultGenerators = &PedersenGenerators{
	Value:    GeneratorH,
	Blinding: GeneratorG,
}

// DefaultGenerators returns the shared generator set, H for values and G for blinding factors.
// The returned value must not be modified.
func DefaultGenerators() *PedersenGenerators {
	return defaultGenerators
}

// Commit C = value*Value + blinding*Blinding
func (g *PedersenGenerators) Commit(dst *curve25519.ConstantTimePublicKey, value uint64, blinding *curve25519.Scalar) *curve25519.ConstantTimePublicKey {
	var v curve25519.Scalar
	curve25519.ScalarFromUint64(&v, value)
	return dst.DoubleScalarMult(&v, g.Value, blinding, g.Blinding)
}
