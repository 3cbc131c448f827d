package crypto

import (
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
)

type KeyPair[T curve25519.PointOperations] struct {
	PrivateKey curve25519.Scalar
	PublicKey  curve25519.PublicKey[T]
}

func NewKeyPairFromPrivate[T curve25519.PointOperations](privateKey *curve25519.Scalar) *KeyPair[T] {
	k := &KeyPair[T]{}
	k.PrivateKey.Set(privateKey)
	k.PublicKey.ScalarBaseMult(privateKey)
	return k
}

func NewRandomKeyPair[T curve25519.PointOperations](randomReader io.Reader) *KeyPair[T] {
	return NewKeyPairFromPrivate[T](curve25519.RandomScalar(new(curve25519.Scalar), randomReader))
}
