package curve25519

type PointOperations interface {
	Add(v *Point, p, q *Point) *Point
	Subtract(v *Point, p, q *Point) *Point
	Negate(v *Point, p *Point) *Point

	ScalarBaseMult(v *Point, x *Scalar) *Point
	ScalarMult(v *Point, x *Scalar, q *Point) *Point

	// DoubleScalarBaseMult v = a*A + b*G
	DoubleScalarBaseMult(v *Point, a *Scalar, A *Point, b *Scalar) *Point
	// DoubleScalarMult v = a*A + b*B
	DoubleScalarMult(v *Point, a *Scalar, A *Point, b *Scalar, B *Point) *Point

	MultiScalarMult(v *Point, scalars []*Scalar, points []*Point) *Point

	IsSmallOrder(v *Point) bool
	IsTorsionFree(v *Point) bool
}
