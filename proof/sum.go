package proof

import (
	"fmt"
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/token"
	"git.gammaspectra.live/P2Pool/confidential/types"
)

const SumProofSize = curve25519.PrivateKeySize * 5

var ErrInvalidSumProof = fmt.Errorf("invalid sum proof: %w", types.ErrParse)

// SumProof proves value(C) = value(Ca) + value(Cb) without revealing any of the openings
type SumProof struct {
	ThetaA curve25519.Scalar
	ThetaB curve25519.Scalar
	Theta1 curve25519.Scalar
	Theta2 curve25519.Scalar
	Theta3 curve25519.Scalar
}

func sumProofChallenge(out *curve25519.Scalar, c, ca, cb *curve25519.Point) *curve25519.Scalar {
	t := crypto.NewTranscript("sum_proof")
	t.AppendPoint("Ca", ca)
	t.AppendPoint("Cb", cb)
	t.AppendPoint("C", c)
	return t.ChallengeScalar(out, "x")
}

// NewSumProof proves input = output1 + output2
//
//	θa = α - va*x, θb = β - vb*x
//	θ1 = r1 - bla*x, θ2 = r2 - blb*x, θ3 = (r1 + r2) - blc*x
func NewSumProof(gens *crypto.PedersenGenerators, input, output1, output2 *token.TokenSecret, randomReader io.Reader) (*SumProof, error) {
	var alpha, beta, r1, r2 curve25519.Scalar
	for _, s := range []*curve25519.Scalar{&alpha, &beta, &r1, &r2} {
		if curve25519.RandomScalar(s, randomReader) == nil {
			return nil, crypto.ErrRandomSource
		}
	}

	c := input.Token(gens)
	ca := output1.Token(gens)
	cb := output2.Token(gens)

	var x curve25519.Scalar
	sumProofChallenge(&x, c.Commitment.P(), ca.Commitment.P(), cb.Commitment.P())

	var va, vb, tmp curve25519.Scalar
	curve25519.ScalarFromUint64(&va, output1.Balance)
	curve25519.ScalarFromUint64(&vb, output2.Balance)

	p := &SumProof{}
	p.ThetaA.Subtract(&alpha, tmp.Multiply(&va, &x))
	p.ThetaB.Subtract(&beta, tmp.Multiply(&vb, &x))
	p.Theta1.Subtract(&r1, tmp.Multiply(&output1.Blinding, &x))
	p.Theta2.Subtract(&r2, tmp.Multiply(&output2.Blinding, &x))
	p.Theta3.Add(&r1, &r2)
	p.Theta3.Subtract(&p.Theta3, tmp.Multiply(&input.Blinding, &x))
	return p, nil
}

// Verify checks
//
//	(θa+θb)*G1 + θ3*G2 + x*C == (θa*G1 + θ1*G2 + x*Ca) + (θb*G1 + θ2*G2 + x*Cb)
func (p *SumProof) Verify(gens *crypto.PedersenGenerators, c, ca, cb *curve25519.ConstantTimePublicKey) bool {
	var x curve25519.Scalar
	sumProofChallenge(&x, c.P(), ca.P(), cb.P())

	g1 := curve25519.To[curve25519.VarTimeOperations](gens.Value)
	g2 := curve25519.To[curve25519.VarTimeOperations](gens.Blinding)

	var thetaAB curve25519.Scalar
	thetaAB.Add(&p.ThetaA, &p.ThetaB)

	var lhs, left, right, rhs curve25519.VarTimePublicKey
	lhs.MultiScalarMult(
		[]*curve25519.Scalar{&thetaAB, &p.Theta3, &x},
		[]*curve25519.VarTimePublicKey{g1, g2, curve25519.To[curve25519.VarTimeOperations](c)},
	)
	left.MultiScalarMult(
		[]*curve25519.Scalar{&p.ThetaA, &p.Theta1, &x},
		[]*curve25519.VarTimePublicKey{g1, g2, curve25519.To[curve25519.VarTimeOperations](ca)},
	)
	right.MultiScalarMult(
		[]*curve25519.Scalar{&p.ThetaB, &p.Theta2, &x},
		[]*curve25519.VarTimePublicKey{g1, g2, curve25519.To[curve25519.VarTimeOperations](cb)},
	)
	rhs.Add(&left, &right)

	return lhs.Equal(&rhs) == 1
}

func (p *SumProof) scalars() [5]*curve25519.Scalar {
	return [5]*curve25519.Scalar{&p.ThetaA, &p.ThetaB, &p.Theta1, &p.Theta2, &p.Theta3}
}

// Bytes θa ‖ θb ‖ θ1 ‖ θ2 ‖ θ3, canonical encodings
func (p *SumProof) Bytes() []byte {
	buf := make([]byte, 0, SumProofSize)
	for _, s := range p.scalars() {
		buf = append(buf, s.Bytes()...)
	}
	return buf
}

func SumProofFromBytes(buf []byte) (*SumProof, error) {
	if len(buf) != SumProofSize {
		return nil, ErrInvalidSumProof
	}
	p := &SumProof{}
	for i, s := range p.scalars() {
		if _, err := s.SetCanonicalBytes(buf[i*curve25519.PrivateKeySize : (i+1)*curve25519.PrivateKeySize]); err != nil {
			return nil, ErrInvalidSumProof
		}
	}
	return p, nil
}

func (p SumProof) MarshalJSON() ([]byte, error) {
	return types.Bytes(p.Bytes()).MarshalJSON()
}

func (p *SumProof) UnmarshalJSON(b []byte) error {
	var buf types.Bytes
	if err := buf.UnmarshalJSON(b); err != nil {
		return err
	}
	decoded, err := SumProofFromBytes(buf)
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}
