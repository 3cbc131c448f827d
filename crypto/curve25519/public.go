package curve25519

import (
	"errors"
	"unsafe"

	fasthex "github.com/tmthrgd/go-hex"
)

const PublicKeySize = 32

var ZeroPublicKeyBytes = PublicKeyBytes{}

var ErrInvalidPoint = errors.New("invalid point encoding")

type VarTimePublicKey = PublicKey[VarTimeOperations]
type ConstantTimePublicKey = PublicKey[ConstantTimeOperations]

// PublicKey An Edwards25519 point with the operation set T used for all arithmetic on it.
// The zero value is not a valid point, initialize with Identity, Set or any arithmetic method.
type PublicKey[T PointOperations] struct {
	p Point
}

func To[T2 PointOperations, T1 PointOperations](u *PublicKey[T1]) *PublicKey[T2] {
	return (*PublicKey[T2])(unsafe.Pointer(u))
}

func FromPoint[T PointOperations](u *Point) *PublicKey[T] {
	return (*PublicKey[T])(unsafe.Pointer(u))
}

func NewPublicKey[T PointOperations](u *Point) *PublicKey[T] {
	n := new(PublicKey[T])
	n.p.Set(u)
	return n
}

func (v *PublicKey[T]) op() T {
	var t T
	return t
}

func (v *PublicKey[T]) Identity() *PublicKey[T] {
	v.p.Set(identityPoint)
	return v
}

func (v *PublicKey[T]) Set(u *PublicKey[T]) *PublicKey[T] {
	v.p.Set(&u.p)
	return v
}

func (v *PublicKey[T]) Add(p, q *PublicKey[T]) *PublicKey[T] {
	v.op().Add(&v.p, &p.p, &q.p)
	return v
}

func (v *PublicKey[T]) Subtract(p, q *PublicKey[T]) *PublicKey[T] {
	v.op().Subtract(&v.p, &p.p, &q.p)
	return v
}

func (v *PublicKey[T]) Negate(p *PublicKey[T]) *PublicKey[T] {
	v.op().Negate(&v.p, &p.p)
	return v
}

func (v *PublicKey[T]) ScalarBaseMult(x *Scalar) *PublicKey[T] {
	v.op().ScalarBaseMult(&v.p, x)
	return v
}

func (v *PublicKey[T]) ScalarMult(x *Scalar, q *PublicKey[T]) *PublicKey[T] {
	v.op().ScalarMult(&v.p, x, &q.p)
	return v
}

func (v *PublicKey[T]) MultByCofactor(q *PublicKey[T]) *PublicKey[T] {
	v.p.MultByCofactor(&q.p)
	return v
}

// DoubleScalarBaseMult v = a*A + b*G
func (v *PublicKey[T]) DoubleScalarBaseMult(a *Scalar, A *PublicKey[T], b *Scalar) *PublicKey[T] {
	v.op().DoubleScalarBaseMult(&v.p, a, &A.p, b)
	return v
}

// DoubleScalarMult v = a*A + b*B
func (v *PublicKey[T]) DoubleScalarMult(a *Scalar, A *PublicKey[T], b *Scalar, B *PublicKey[T]) *PublicKey[T] {
	v.op().DoubleScalarMult(&v.p, a, &A.p, b, &B.p)
	return v
}

func (v *PublicKey[T]) MultiScalarMult(scalars []*Scalar, points []*PublicKey[T]) *PublicKey[T] {
	p := make([]*Point, len(points))
	for i := range points {
		p[i] = &points[i].p
	}
	v.op().MultiScalarMult(&v.p, scalars, p)
	return v
}

// Sum sets v to the sum of all points, or identity if none are given
func (v *PublicKey[T]) Sum(points ...*PublicKey[T]) *PublicKey[T] {
	var sum Point
	sum.Set(identityPoint)
	for _, p := range points {
		v.op().Add(&sum, &sum, &p.p)
	}
	v.p.Set(&sum)
	return v
}

func (v *PublicKey[T]) Equal(u *PublicKey[T]) int {
	return v.p.Equal(&u.p)
}

func (v *PublicKey[T]) IsIdentity() bool {
	return v.p.Equal(identityPoint) == 1
}

func (v *PublicKey[T]) IsSmallOrder() bool {
	return v.op().IsSmallOrder(&v.p)
}

func (v *PublicKey[T]) IsTorsionFree() bool {
	return v.op().IsTorsionFree(&v.p)
}

// SetBytes decodes a canonical compressed point
func (v *PublicKey[T]) SetBytes(buf []byte) (*PublicKey[T], error) {
	if len(buf) != PublicKeySize {
		return nil, ErrInvalidPoint
	}
	if DecodeCompressedPoint(v, PublicKeyBytes(buf)) == nil {
		return nil, ErrInvalidPoint
	}
	return v, nil
}

func (v *PublicKey[T]) Bytes() PublicKeyBytes {
	return PublicKeyBytes(v.p.Bytes())
}

func (v *PublicKey[T]) Slice() []byte {
	return v.p.Bytes()
}

func (v *PublicKey[T]) String() string {
	return fasthex.EncodeToString(v.Slice())
}

func (v *PublicKey[T]) P() *Point {
	return &v.p
}

func (v PublicKey[T]) MarshalJSON() ([]byte, error) {
	b := v.Bytes()
	return b.MarshalJSON()
}

func (v *PublicKey[T]) UnmarshalJSON(b []byte) error {
	var k PublicKeyBytes
	if err := k.UnmarshalJSON(b); err != nil {
		return err
	}
	if DecodeCompressedPoint(v, k) == nil {
		return ErrInvalidPoint
	}
	return nil
}

type PublicKeyBytes [PublicKeySize]byte

func (k *PublicKeyBytes) Slice() []byte {
	return (*k)[:]
}

// Point returns nil when the bytes are not a canonical point encoding
func (k *PublicKeyBytes) Point() *ConstantTimePublicKey {
	return DecodeCompressedPoint(new(ConstantTimePublicKey), *k)
}

func (k *PublicKeyBytes) String() string {
	return fasthex.EncodeToString(k.Slice())
}

func (k *PublicKeyBytes) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != PublicKeySize*2+2 {
		return errors.New("wrong key size")
	}

	if _, err := fasthex.Decode(k[:], b[1:len(b)-1]); err != nil {
		return err
	} else {
		return nil
	}
}

func (k PublicKeyBytes) MarshalJSON() ([]byte, error) {
	var buf [PublicKeySize*2 + 2]byte
	buf[0] = '"'
	buf[PublicKeySize*2+1] = '"'
	fasthex.Encode(buf[1:], k[:])
	return buf[:], nil
}
