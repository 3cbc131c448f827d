package borromean

import (
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
)

// Prover range proof backend over fixed generators, proofs are exchanged in their binary form
type Prover struct {
	generators *crypto.PedersenGenerators
}

func NewProver(generators *crypto.PedersenGenerators) *Prover {
	return &Prover{generators: generators}
}

func (p *Prover) BitWidth() int {
	return Elements
}

func (p *Prover) Prove(value uint64, blinding *curve25519.Scalar, randomReader io.Reader) ([]byte, error) {
	r, err := ProveRange[curve25519.ConstantTimeOperations](p.generators, value, blinding, randomReader)
	if err != nil {
		return nil, err
	}
	return r.AppendBinary(make([]byte, 0, r.BufferLength()))
}

// Verify returns false for malformed proofs as well as for proofs that do not match commitment
func (p *Prover) Verify(proof []byte, commitment *curve25519.ConstantTimePublicKey) bool {
	var r Range[curve25519.VarTimeOperations]
	if err := r.FromBytes(proof); err != nil {
		return false
	}
	return r.Verify(p.generators, curve25519.To[curve25519.VarTimeOperations](commitment))
}
