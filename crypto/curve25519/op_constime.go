package curve25519

// ConstantTimeOperations Implements Constant time operations for Edwards25519 points
//
// Safe to use with private data or scalars
type ConstantTimeOperations struct{}

func (e ConstantTimeOperations) Add(v *Point, p, q *Point) *Point {
	return v.Add(p, q)
}

func (e ConstantTimeOperations) Subtract(v *Point, p, q *Point) *Point {
	return v.Subtract(p, q)
}

func (e ConstantTimeOperations) Negate(v *Point, p *Point) *Point {
	return v.Negate(p)
}

func (e ConstantTimeOperations) ScalarBaseMult(v *Point, x *Scalar) *Point {
	return v.ScalarBaseMult(x)
}

func (e ConstantTimeOperations) ScalarMult(v *Point, x *Scalar, q *Point) *Point {
	return v.ScalarMult(x, q)
}

func (e ConstantTimeOperations) DoubleScalarBaseMult(v *Point, a *Scalar, A *Point, b *Scalar) *Point {
	aA := new(Point).ScalarMult(a, A)
	bG := new(Point).ScalarBaseMult(b)
	return v.Add(aA, bG)
}

func (e ConstantTimeOperations) DoubleScalarMult(v *Point, a *Scalar, A *Point, b *Scalar, B *Point) *Point {
	return v.MultiScalarMult([]*Scalar{a, b}, []*Point{A, B})
}

func (e ConstantTimeOperations) MultiScalarMult(v *Point, scalars []*Scalar, points []*Point) *Point {
	return v.MultiScalarMult(scalars, points)
}

func (e ConstantTimeOperations) IsSmallOrder(v *Point) bool {
	return new(Point).MultByCofactor(v).Equal(identityPoint) == 1
}

// IsTorsionFree checks (l - 1) * v + v == identity, l * v only vanishes for points in the prime-order subgroup
func (e ConstantTimeOperations) IsTorsionFree(v *Point) bool {
	p := new(Point).ScalarMult(minusOneScalar, v)
	return p.Add(p, v).Equal(identityPoint) == 1
}

var _ PointOperations = ConstantTimeOperations{}
