package borromean

import (
	"errors"
	"fmt"
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/types"
)

// RangeSize serialized size of a Range: bit commitments, S0, S1 and EE
const RangeSize = curve25519.PublicKeySize*Elements + curve25519.PrivateKeySize*(Elements*2+1)

// MaxValue largest value a range proof can be produced for
const MaxValue = 1<<Elements - 1

var ErrValueOutOfRange = fmt.Errorf("value does not fit in %d bits: %w", Elements, types.ErrPrecondition)
var ErrInvalidRange = fmt.Errorf("invalid range proof: %w", types.ErrParse)

// Range A range proof premised on Borromean ring signatures.
type Range[T curve25519.PointOperations] struct {
	Signatures Signatures[T]
	// Commitments Bit commitments
	Commitments [Elements]curve25519.PublicKey[T]
}

// Verify checks the bit commitments sum to commitment and each one commits to 0 or 2**i
func (s *Range[T]) Verify(generators *crypto.PedersenGenerators, commitment *curve25519.PublicKey[T]) bool {
	var sum curve25519.PublicKey[T]

	// initialize first sum element
	sum.Set(&s.Commitments[0])
	for i := range s.Commitments[1:] {
		sum.Add(&sum, &s.Commitments[i+1])
	}
	if sum.Equal(commitment) == 0 {
		return false
	}

	pow2 := valueGeneratorPow2(generators)

	var commitmentsSubOne [Elements]curve25519.PublicKey[T]
	for i := range s.Commitments {
		commitmentsSubOne[i].Subtract(&s.Commitments[i], curve25519.FromPoint[T](pow2[i]))
	}

	return s.Signatures.Verify(curve25519.FromPoint[T](generators.Blinding.P()), &s.Commitments, &commitmentsSubOne)
}

// ProveRange commits to value bit by bit so the bit commitments add up to value*Value + mask*Blinding
func ProveRange[T curve25519.PointOperations](generators *crypto.PedersenGenerators, value uint64, mask *curve25519.Scalar, randomReader io.Reader) (*Range[T], error) {
	if value > MaxValue {
		return nil, ErrValueOutOfRange
	}

	pow2 := valueGeneratorPow2(generators)
	base := curve25519.FromPoint[T](generators.Blinding.P())

	var r Range[T]
	var masks [Elements]curve25519.Scalar
	var bits [Elements]bool
	var commitmentsSubOne [Elements]curve25519.PublicKey[T]

	var lastMask curve25519.Scalar
	lastMask.Set(mask)
	for i := range Elements {
		if i == Elements-1 {
			masks[i].Set(&lastMask)
		} else {
			if curve25519.RandomScalar(&masks[i], randomReader) == nil {
				return nil, crypto.ErrRandomSource
			}
			lastMask.Subtract(&lastMask, &masks[i])
		}

		bits[i] = (value>>i)&1 == 1

		r.Commitments[i].ScalarMult(&masks[i], base)
		if bits[i] {
			commitmentsSubOne[i].Set(&r.Commitments[i])
			r.Commitments[i].Add(&r.Commitments[i], curve25519.FromPoint[T](pow2[i]))
		} else {
			commitmentsSubOne[i].Subtract(&r.Commitments[i], curve25519.FromPoint[T](pow2[i]))
		}
	}

	signatures, err := signBorromean(base, &masks, &r.Commitments, &commitmentsSubOne, &bits, randomReader)
	if err != nil {
		return nil, err
	}
	r.Signatures = *signatures

	return &r, nil
}

func (s *Range[T]) BufferLength() int {
	return RangeSize
}

func (s *Range[T]) AppendBinary(preAllocatedBuf []byte) (data []byte, err error) {
	buf := preAllocatedBuf
	for i := range s.Commitments {
		buf = append(buf, s.Commitments[i].Slice()...)
	}
	for i := range s.Signatures.S0 {
		buf = append(buf, s.Signatures.S0[i].Bytes()...)
	}
	for i := range s.Signatures.S1 {
		buf = append(buf, s.Signatures.S1[i].Bytes()...)
	}
	buf = append(buf, s.Signatures.EE.Bytes()...)
	return buf, nil
}

func (s *Range[T]) FromBytes(buf []byte) error {
	if len(buf) != RangeSize {
		return ErrInvalidRange
	}

	readScalar := func(dst *curve25519.Scalar) error {
		if _, err := dst.SetCanonicalBytes(buf[:curve25519.PrivateKeySize]); err != nil {
			return errors.Join(ErrInvalidRange, err)
		}
		buf = buf[curve25519.PrivateKeySize:]
		return nil
	}

	for i := range s.Commitments {
		if _, err := s.Commitments[i].SetBytes(buf[:curve25519.PublicKeySize]); err != nil {
			return errors.Join(ErrInvalidRange, err)
		}
		buf = buf[curve25519.PublicKeySize:]
	}
	for i := range s.Signatures.S0 {
		if err := readScalar(&s.Signatures.S0[i]); err != nil {
			return err
		}
	}
	for i := range s.Signatures.S1 {
		if err := readScalar(&s.Signatures.S1[i]); err != nil {
			return err
		}
	}
	return readScalar(&s.Signatures.EE)
}
