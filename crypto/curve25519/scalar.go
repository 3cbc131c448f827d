package curve25519

import (
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/edwards25519" //nolint:depguard
)

type Scalar = edwards25519.Scalar

// limit = basepointOrder * 15, basepointOrder fits 15 times in 32 bytes (iow, 15 basepointOrder is the highest multiple of basepointOrder that fits in 32 bytes)
var limit = [32]byte{0xe3, 0x6a, 0x67, 0x72, 0x8b, 0xce, 0x13, 0x29, 0x8f, 0x30, 0x82, 0x8c, 0x0b, 0xa4, 0x10, 0x39, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0}

var zeroScalar = new(Scalar)

// ScalarIsLimit32 true when a is below 15 * l, so reducing it keeps a uniform distribution
func ScalarIsLimit32[T ~[PrivateKeySize]byte](a T) bool {
	for n := 31; n >= 0; n-- {
		if a[n] < limit[n] {
			return true
		} else if a[n] > limit[n] {
			return false
		}
	}

	return false
}

// BytesToScalar32 Reduces a 256-bit little endian integer modulo basepointOrder
// Equivalent to sc_reduce32
func BytesToScalar32[T ~[PrivateKeySize]byte](out *Scalar, buf T) *Scalar {
	var wide [64]byte
	copy(wide[:], buf[:])
	if _, err := out.SetUniformBytes(wide[:]); err != nil {
		panic(err)
	}
	return out
}

// BytesToScalar64 Reduces a 512-bit little endian integer modulo basepointOrder
func BytesToScalar64[T ~[PrivateKeySize * 2]byte](out *Scalar, buf T) *Scalar {
	if _, err := out.SetUniformBytes(buf[:]); err != nil {
		panic(err)
	}
	return out
}

// ScalarFromUint64 Sets out to the integer x, always canonical
func ScalarFromUint64(out *Scalar, x uint64) *Scalar {
	var buf [PrivateKeySize]byte
	binary.LittleEndian.PutUint64(buf[:], x)
	if _, err := out.SetCanonicalBytes(buf[:]); err != nil {
		panic(err)
	}
	return out
}
