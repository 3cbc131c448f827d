package token

import (
	"errors"
	"testing"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"github.com/stretchr/testify/require"
)

func TestMint(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()
	gens := crypto.DefaultGenerators()

	t.Run("Hiding", func(t *testing.T) {
		first, _, err := Mint(gens, 100, rng)
		require.NoError(t, err)
		second, _, err := Mint(gens, 100, rng)
		require.NoError(t, err)
		require.NotEqual(t, first.Commitment.Bytes(), second.Commitment.Bytes())
	})

	t.Run("Binding", func(t *testing.T) {
		tok, secret, err := Mint(gens, 100, rng)
		require.NoError(t, err)
		require.True(t, secret.Opens(gens, tok))

		other := *secret
		other.Balance = 101
		require.False(t, other.Opens(gens, tok))
	})

	t.Run("Zero", func(t *testing.T) {
		tok, secret, err := Mint(gens, 0, rng)
		require.NoError(t, err)
		require.True(t, secret.Opens(gens, tok))
	})
}

func TestTokenSecretEncryption(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()
	gens := crypto.DefaultGenerators()

	var key, wrongKey types.Hash
	_, _ = rng.Read(key[:])
	_, _ = rng.Read(wrongKey[:])

	for _, balance := range []uint64{0, 1, 1337, 1<<32 - 1, 1<<64 - 1} {
		_, secret, err := Mint(gens, balance, rng)
		require.NoError(t, err)

		encrypted, err := secret.Encrypt(key, rng)
		require.NoError(t, err)

		decrypted, err := encrypted.Decrypt(key)
		require.NoError(t, err)
		require.Equal(t, secret.Balance, decrypted.Balance)
		require.Equal(t, 1, secret.Blinding.Equal(&decrypted.Blinding))

		_, err = encrypted.Decrypt(wrongKey)
		require.ErrorIs(t, err, types.ErrDecryption)
	}

	t.Run("Tampered", func(t *testing.T) {
		_, secret, err := Mint(gens, 42, rng)
		require.NoError(t, err)
		encrypted, err := secret.Encrypt(key, rng)
		require.NoError(t, err)

		encrypted.Blinding[len(encrypted.Blinding)-1] ^= 1
		_, err = encrypted.Decrypt(key)
		require.True(t, errors.Is(err, crypto.ErrCiphertext))
	})

	t.Run("Malformed", func(t *testing.T) {
		shortBalance, err := crypto.Encrypt([]byte{1, 2, 3}, key, rng)
		require.NoError(t, err)
		blinding, err := crypto.Encrypt(make([]byte, 32), key, rng)
		require.NoError(t, err)

		_, err = (&EncryptoTokenSecret{Balance: shortBalance, Blinding: blinding}).Decrypt(key)
		require.ErrorIs(t, err, ErrInvalidSecret)

		balance, err := crypto.Encrypt(make([]byte, balanceSize), key, rng)
		require.NoError(t, err)
		unreduced := make([]byte, 32)
		for i := range unreduced {
			unreduced[i] = 0xff
		}
		badBlinding, err := crypto.Encrypt(unreduced, key, rng)
		require.NoError(t, err)

		_, err = (&EncryptoTokenSecret{Balance: balance, Blinding: badBlinding}).Decrypt(key)
		require.ErrorIs(t, err, ErrInvalidSecret)
	})
}
