package borromean

import (
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
)

// Elements bit width of the range proof
const Elements = 32

// Signatures Borromean ring signatures, one 2-member ring per bit
type Signatures[T curve25519.PointOperations] struct {
	S0 [Elements]curve25519.Scalar
	S1 [Elements]curve25519.Scalar
	EE curve25519.Scalar
}

// Verify checks every ring i over {A[i], B[i]}, with base the blinding generator
func (s *Signatures[T]) Verify(base *curve25519.PublicKey[T], A, B *[Elements]curve25519.PublicKey[T]) bool {
	var LL, LV curve25519.PublicKey[T]
	var tmpScalar, LLScalar curve25519.Scalar

	var transcript [curve25519.PublicKeySize * Elements]byte

	for i := range Elements {
		LL.DoubleScalarMult(&s.EE, &A[i], &s.S0[i], base)
		crypto.ScalarDeriveLegacy(&LLScalar, LL.Slice())
		LV.DoubleScalarMult(&LLScalar, &B[i], &s.S1[i], base)

		copy(transcript[i*curve25519.PublicKeySize:], LV.Slice())
	}
	return crypto.ScalarDeriveLegacy(&tmpScalar, transcript[:]).Equal(&s.EE) == 1
}

// signBorromean produces ring signatures where for each i the secret x[i] opens A[i] when bit i is 0, or B[i] when bit i is 1
// Equivalent to Monero's genBorromean
func signBorromean[T curve25519.PointOperations](base *curve25519.PublicKey[T], x *[Elements]curve25519.Scalar, A, B *[Elements]curve25519.PublicKey[T], bits *[Elements]bool, randomReader io.Reader) (*Signatures[T], error) {
	var s Signatures[T]
	var alpha [Elements]curve25519.Scalar
	var L1 [Elements]curve25519.PublicKey[T]
	var L curve25519.PublicKey[T]
	var c curve25519.Scalar

	for i := range Elements {
		if curve25519.RandomScalar(&alpha[i], randomReader) == nil {
			return nil, crypto.ErrRandomSource
		}

		if bits[i] {
			L1[i].ScalarMult(&alpha[i], base)
			continue
		}

		L.ScalarMult(&alpha[i], base)
		if curve25519.RandomScalar(&s.S1[i], randomReader) == nil {
			return nil, crypto.ErrRandomSource
		}
		crypto.ScalarDeriveLegacy(&c, L.Slice())
		L1[i].DoubleScalarMult(&s.S1[i], base, &c, &B[i])
	}

	var transcript [curve25519.PublicKeySize * Elements]byte
	for i := range Elements {
		copy(transcript[i*curve25519.PublicKeySize:], L1[i].Slice())
	}
	crypto.ScalarDeriveLegacy(&s.EE, transcript[:])

	var tmp curve25519.Scalar
	for i := range Elements {
		if !bits[i] {
			// s0 = alpha - x * ee
			s.S0[i].Subtract(&alpha[i], tmp.Multiply(&x[i], &s.EE))
			continue
		}

		if curve25519.RandomScalar(&s.S0[i], randomReader) == nil {
			return nil, crypto.ErrRandomSource
		}
		L.DoubleScalarMult(&s.S0[i], base, &s.EE, &A[i])
		crypto.ScalarDeriveLegacy(&c, L.Slice())
		// s1 = alpha - x * cc
		s.S1[i].Subtract(&alpha[i], tmp.Multiply(&x[i], &c))
	}

	return &s, nil
}
