package crypto

import (
	"fmt"
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/types"
)

const OneTimeSignatureSize = curve25519.PublicKeySize + curve25519.PrivateKeySize

var ErrInvalidSignature = fmt.Errorf("invalid one-time signature: %w", types.ErrParse)

// OneTimeSignature Schnorr signature with an explicit random blinding per signature
//
// s = b - h*x, where B = b*G and h = H(P || B || msg)
type OneTimeSignature struct {
	// BlindPoint B
	BlindPoint curve25519.ConstantTimePublicKey `json:"blind_point"`
	// Response s
	Response curve25519.PrivateKeyBytes `json:"response"`
}

func oneTimeSignatureChallenge(out *curve25519.Scalar, publicKey, blindPoint *curve25519.Point, msg []byte) *curve25519.Scalar {
	t := NewTranscript("ct_sign")
	t.AppendPoint("public_key", publicKey)
	t.AppendPoint("blind_point", blindPoint)
	t.AppendMessage("msg", msg)
	return t.ChallengeScalar(out, "h")
}

// CreateOneTimeSignature signs msg with key. Reusing the blinding across two messages leaks the key, so it is never derived from msg.
func CreateOneTimeSignature(key *curve25519.Scalar, msg []byte, randomReader io.Reader) (OneTimeSignature, error) {
	var b, h, s curve25519.Scalar
	if curve25519.RandomScalar(&b, randomReader) == nil {
		return OneTimeSignature{}, ErrRandomSource
	}

	var signature OneTimeSignature
	signature.BlindPoint.ScalarBaseMult(&b)

	publicKey := new(curve25519.ConstantTimePublicKey).ScalarBaseMult(key)

	oneTimeSignatureChallenge(&h, publicKey.P(), signature.BlindPoint.P(), msg)

	// s = b - h * x
	s.Subtract(&b, h.Multiply(&h, key))
	signature.Response = curve25519.PrivateKeyBytesFromScalar(&s)

	return signature, nil
}

// Verify checks s*G + h*P == B
func (s *OneTimeSignature) Verify(publicKey *curve25519.ConstantTimePublicKey, msg []byte) bool {
	response := s.Response.Scalar()
	if response == nil {
		return false
	}

	var h curve25519.Scalar
	oneTimeSignatureChallenge(&h, publicKey.P(), s.BlindPoint.P(), msg)

	var expected curve25519.VarTimePublicKey
	expected.DoubleScalarBaseMult(&h, curve25519.To[curve25519.VarTimeOperations](publicKey), response)

	return expected.P().Equal(s.BlindPoint.P()) == 1
}

func (s *OneTimeSignature) Bytes() []byte {
	buf := make([]byte, 0, OneTimeSignatureSize)
	buf = append(buf, s.BlindPoint.Slice()...)
	buf = append(buf, s.Response[:]...)
	return buf
}

func NewOneTimeSignatureFromBytes(buf []byte) (*OneTimeSignature, error) {
	if len(buf) != OneTimeSignatureSize {
		return nil, ErrInvalidSignature
	}
	var signature OneTimeSignature
	if _, err := signature.BlindPoint.SetBytes(buf[:curve25519.PublicKeySize]); err != nil {
		return nil, ErrInvalidSignature
	}
	copy(signature.Response[:], buf[curve25519.PublicKeySize:])
	if signature.Response.Scalar() == nil {
		return nil, ErrInvalidSignature
	}
	return &signature, nil
}
