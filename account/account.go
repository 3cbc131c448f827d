package account

import (
	"fmt"
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/types"
)

var ErrNotOwner = fmt.Errorf("one time account does not belong to you: %w", types.ErrAuthorization)

// symmetricKeyDomain keys the blake2b hash producing the symmetric key from the shared point
var symmetricKeyDomain = []byte("confidential_symmetric_key")

type KeyPair = crypto.KeyPair[curve25519.ConstantTimeOperations]

// BlindPair ephemeral key pair of a single derivation. Only its public half, the blinding point, is published
type BlindPair = crypto.KeyPair[curve25519.ConstantTimeOperations]

// Account long-term identity, a single key pair
type Account struct {
	keys KeyPair
}

func NewAccount(randomReader io.Reader) (*Account, error) {
	var k curve25519.Scalar
	if curve25519.RandomScalar(&k, randomReader) == nil {
		return nil, crypto.ErrRandomSource
	}
	return NewAccountFromPrivateKey(&k), nil
}

func NewAccountFromPrivateKey(k *curve25519.Scalar) *Account {
	return &Account{
		keys: *crypto.NewKeyPairFromPrivate[curve25519.ConstantTimeOperations](k),
	}
}

func (a *Account) PublicKey() *curve25519.ConstantTimePublicKey {
	return &a.keys.PublicKey
}

func (a *Account) PrivateKey() *curve25519.Scalar {
	return &a.keys.PrivateKey
}

func (a *Account) Address() Address {
	return NewAddress(&a.keys.PublicKey)
}

// Derive a one-time account receiving to this account
func (a *Account) Derive(randomReader io.Reader) (*OneTimeAccount, *BlindPair, types.Hash, error) {
	return DeriveOneTimeAccount(&a.keys.PublicKey, randomReader)
}

// DeriveOneTimeAccount stealth derivation towards publicKey A
//
//	R = r*G
//	P = H_s(r*A)*A
//	key = H(r*P)
func DeriveOneTimeAccount(publicKey *curve25519.ConstantTimePublicKey, randomReader io.Reader) (*OneTimeAccount, *BlindPair, types.Hash, error) {
	var r curve25519.Scalar
	if curve25519.RandomScalar(&r, randomReader) == nil {
		return nil, nil, types.ZeroHash, crypto.ErrRandomSource
	}
	blind := crypto.NewKeyPairFromPrivate[curve25519.ConstantTimeOperations](&r)

	var shared curve25519.ConstantTimePublicKey
	shared.ScalarMult(&r, publicKey)

	var derivation curve25519.Scalar
	crypto.ScalarDeriveLegacy(&derivation, shared.Slice())

	oneTime := &OneTimeAccount{}
	oneTime.PublicKey.ScalarMult(&derivation, publicKey)

	return oneTime, blind, SymmetricKeyFromPrivate(&r, &oneTime.PublicKey), nil
}

// SymmetricKeyFromPrivate H(k*R). Sender side uses (r, P), receiver side uses (k, R)
func SymmetricKeyFromPrivate(k *curve25519.Scalar, point *curve25519.ConstantTimePublicKey) types.Hash {
	var shared curve25519.ConstantTimePublicKey
	shared.ScalarMult(k, point)
	return crypto.SecretDerive(symmetricKeyDomain, shared.Slice())
}

// OneTimeAccount stealth public key of a single output
type OneTimeAccount struct {
	PublicKey curve25519.ConstantTimePublicKey
}

// Recover the one-time private key k = H_s(a*R)*a, failing with ErrNotOwner when k*G != P
func (o *OneTimeAccount) Recover(account *Account, blindPoint *curve25519.ConstantTimePublicKey) (*curve25519.Scalar, error) {
	var shared curve25519.ConstantTimePublicKey
	shared.ScalarMult(account.PrivateKey(), blindPoint)

	var k curve25519.Scalar
	crypto.ScalarDeriveLegacy(&k, shared.Slice())
	k.Multiply(&k, account.PrivateKey())

	var candidate curve25519.ConstantTimePublicKey
	candidate.ScalarBaseMult(&k)
	if candidate.Equal(&o.PublicKey) != 1 {
		return nil, ErrNotOwner
	}
	return &k, nil
}

func (o *OneTimeAccount) Bytes() curve25519.PublicKeyBytes {
	return o.PublicKey.Bytes()
}

func (o OneTimeAccount) MarshalJSON() ([]byte, error) {
	return o.PublicKey.MarshalJSON()
}

func (o *OneTimeAccount) UnmarshalJSON(b []byte) error {
	return o.PublicKey.UnmarshalJSON(b)
}
