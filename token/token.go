package token

import (
	"encoding/binary"
	"fmt"
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/types"
)

const balanceSize = 8

var ErrInvalidSecret = fmt.Errorf("decrypted token secret is malformed: %w", types.ErrDecryption)

// Token Pedersen commitment to a balance
type Token struct {
	Commitment curve25519.ConstantTimePublicKey `json:"commitment"`
}

// TokenSecret opening of a Token. Never published in the clear
type TokenSecret struct {
	Blinding curve25519.Scalar
	Balance  uint64
}

// EncryptoTokenSecret TokenSecret with balance and blinding encrypted independently
type EncryptoTokenSecret struct {
	Balance  types.Bytes `json:"balance"`
	Blinding types.Bytes `json:"blinding"`
}

// Mint commits to balance under a fresh blinding factor
func Mint(gens *crypto.PedersenGenerators, balance uint64, randomReader io.Reader) (*Token, *TokenSecret, error) {
	secret := &TokenSecret{
		Balance: balance,
	}
	if curve25519.RandomScalar(&secret.Blinding, randomReader) == nil {
		return nil, nil, crypto.ErrRandomSource
	}
	return secret.Token(gens), secret, nil
}

// Token recomputes the commitment balance*G1 + blinding*G2
func (s *TokenSecret) Token(gens *crypto.PedersenGenerators) *Token {
	t := &Token{}
	gens.Commit(&t.Commitment, s.Balance, &s.Blinding)
	return t
}

// Opens reports whether s is an opening of t
func (s *TokenSecret) Opens(gens *crypto.PedersenGenerators, t *Token) bool {
	return s.Token(gens).Commitment.Equal(&t.Commitment) == 1
}

func (s *TokenSecret) Encrypt(key types.Hash, randomReader io.Reader) (*EncryptoTokenSecret, error) {
	var balance [balanceSize]byte
	binary.LittleEndian.PutUint64(balance[:], s.Balance)

	var err error
	e := &EncryptoTokenSecret{}
	if e.Balance, err = crypto.Encrypt(balance[:], key, randomReader); err != nil {
		return nil, err
	}
	if e.Blinding, err = crypto.Encrypt(s.Blinding.Bytes(), key, randomReader); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *EncryptoTokenSecret) Decrypt(key types.Hash) (*TokenSecret, error) {
	balance, err := crypto.Decrypt(e.Balance, key)
	if err != nil {
		return nil, err
	}
	if len(balance) != balanceSize {
		return nil, ErrInvalidSecret
	}

	blinding, err := crypto.Decrypt(e.Blinding, key)
	if err != nil {
		return nil, err
	}

	s := &TokenSecret{
		Balance: binary.LittleEndian.Uint64(balance),
	}
	if _, err = s.Blinding.SetCanonicalBytes(blinding); err != nil {
		return nil, ErrInvalidSecret
	}
	return s, nil
}
