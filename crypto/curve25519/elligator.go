package curve25519

import (
	"git.gammaspectra.live/P2Pool/edwards25519/field"
)

// Elligator2WithUniformBytes maps 32 uniform bytes to an Ed25519 point, not cofactor cleared
// Equivalent to ge_fromfe_frombytes_vartime, runs in constant time
func Elligator2WithUniformBytes[T PointOperations, S ~[PublicKeySize]byte](dst *PublicKey[T], buf S) *PublicKey[T] {
	/*
	   Curve25519 is a Montgomery curve with equation `v^2 = u^3 + 486662 u^2 + u`.

	   A Curve25519 point `(u, v)` may be mapped to an Ed25519 point `(x, y)` with the map
	   `(sqrt(-(A + 2)) u / v, (u - 1) / (u + 1))`.
	*/

	// All 256 bits are taken, the top bit adds 2^255 = 19 mod p. This is not a wide reduction,
	// the bias is negligible given the shape of the prime.
	var r, o, upsilon, tmp1, tmp2, tmp3 field.Element
	if _, err := r.SetBytes(buf[:]); err != nil {
		return nil
	}
	r.Select(tmp1.Add(&r, _NINETEEN), &r, int(buf[PublicKeySize-1]>>7))

	// Per Section 5.5, take `u = 2`. This is the smallest quadratic non-residue in the field
	urSquare := tmp1.Square(&r)
	urSquareDouble := tmp1.Add(urSquare, urSquare)

	// non-zero, as (p - 1) / 2 is not a square mod p
	onePlusUrSquare := tmp1.Add(_ONE, urSquareDouble)
	onePlusUrSquareInverted := tmp1.Invert(onePlusUrSquare)

	upsilon.Multiply(_NEGATIVE_A, onePlusUrSquareInverted)

	// When epsilon = -1 the other u coordinate is -upsilon - A, cheaper than upsilon * u * r^2
	otherCandidate := o.Subtract(tmp1.Negate(&upsilon), _A)

	// upsilon is a valid u coordinate iff upsilon^3 + A * upsilon^2 + upsilon is a square
	_, epsilon := tmp3.SqrtRatio(
		tmp3.Add(
			tmp3.Multiply(
				tmp1.Add(&upsilon, _A),
				tmp2.Square(&upsilon),
			),
			&upsilon,
		),
		_ONE,
	)

	// select upsilon when epsilon is 1 (isSquare)
	u := r.Select(&upsilon, otherCandidate, epsilon)

	// Choosing the odd y coordinate when upsilon was chosen is equivalent to the negative square root for v
	return DecodeMontgomeryPoint(dst, u, epsilon)
}
