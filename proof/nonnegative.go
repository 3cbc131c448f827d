package proof

import (
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/crypto/ringct/borromean"
	"git.gammaspectra.live/P2Pool/confidential/token"
	"git.gammaspectra.live/P2Pool/confidential/types"
)

// RangeProver range proof backend. Proving and verifying instances must share generator parameters
type RangeProver interface {
	// BitWidth number of bits the committed value is proven to fit in
	BitWidth() int
	Prove(value uint64, blinding *curve25519.Scalar, randomReader io.Reader) ([]byte, error)
	// Verify returns false for malformed proofs as well as rejected ones
	Verify(proof []byte, commitment *curve25519.ConstantTimePublicKey) bool
}

var _ RangeProver = (*borromean.Prover)(nil)

// NonnegativeProof proves a Token commits to a value in [0, 2^BitWidth)
type NonnegativeProof struct {
	BitWidth int         `json:"bit_width"`
	Proof    types.Bytes `json:"proof"`
}

func NewNonnegativeProof(prover RangeProver, secret *token.TokenSecret, randomReader io.Reader) (*NonnegativeProof, error) {
	proof, err := prover.Prove(secret.Balance, &secret.Blinding, randomReader)
	if err != nil {
		return nil, err
	}
	return &NonnegativeProof{
		BitWidth: prover.BitWidth(),
		Proof:    proof,
	}, nil
}

func (p *NonnegativeProof) Verify(prover RangeProver, t *token.Token) bool {
	if p.BitWidth != prover.BitWidth() {
		return false
	}
	return prover.Verify(p.Proof, &t.Commitment)
}
