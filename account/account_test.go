package account_test

import (
	"errors"
	"testing"

	"git.gammaspectra.live/P2Pool/confidential/account"
	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"git.gammaspectra.live/P2Pool/confidential/utils"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/require"
)

func TestStealthAddressing(t *testing.T) {
	spec.Run(t, "Derive", func(t *testing.T, when spec.G, it spec.S) {
		var (
			rng   *crypto.DeterministicTestGenerator
			alice *account.Account
			bob   *account.Account
		)

		it.Before(func() {
			var err error
			rng = crypto.NewDeterministicTestGenerator()
			alice, err = account.NewAccount(rng)
			require.NoError(t, err)
			bob, err = account.NewAccount(rng)
			require.NoError(t, err)
		})

		it("recovers the one-time private key", func() {
			oneTime, blind, _, err := alice.Derive(rng)
			require.NoError(t, err)

			k, err := oneTime.Recover(alice, &blind.PublicKey)
			require.NoError(t, err)

			var p curve25519.ConstantTimePublicKey
			p.ScalarBaseMult(k)
			require.Equal(t, 1, p.Equal(&oneTime.PublicKey))
		})

		it("rejects recovery by another account", func() {
			oneTime, blind, _, err := alice.Derive(rng)
			require.NoError(t, err)

			_, err = oneTime.Recover(bob, &blind.PublicKey)
			require.ErrorIs(t, err, account.ErrNotOwner)
			require.ErrorIs(t, err, types.ErrAuthorization)
		})

		it("agrees on the symmetric key", func() {
			oneTime, blind, key, err := alice.Derive(rng)
			require.NoError(t, err)

			k, err := oneTime.Recover(alice, &blind.PublicKey)
			require.NoError(t, err)
			require.Equal(t, key, account.SymmetricKeyFromPrivate(k, &blind.PublicKey))
		})

		it("produces unlinkable one-time accounts", func() {
			first, _, _, err := alice.Derive(rng)
			require.NoError(t, err)
			second, _, _, err := alice.Derive(rng)
			require.NoError(t, err)

			require.NotEqual(t, first.Bytes(), second.Bytes())
			require.NotEqual(t, alice.PublicKey().Bytes(), first.Bytes())
		})

		when("given a bare public key", func() {
			it("derives an account the owner can recover", func() {
				oneTime, blind, _, err := account.DeriveOneTimeAccount(bob.PublicKey(), rng)
				require.NoError(t, err)

				_, err = oneTime.Recover(bob, &blind.PublicKey)
				require.NoError(t, err)
			})
		})

		when("the random source fails", func() {
			it("returns ErrRandomSource", func() {
				_, _, _, err := alice.Derive(failingReader{})
				require.ErrorIs(t, err, crypto.ErrRandomSource)
			})
		})
	}, spec.Report(report.Log{}), spec.Parallel(), spec.Random())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

func TestAddress(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()
	a, err := account.NewAccount(rng)
	if err != nil {
		t.Fatal(err)
	}

	addr := a.Address()
	if addr != account.Address(crypto.Keccak256(a.PublicKey().Slice())) {
		t.Fatal("address is not the hash of the public key")
	}

	t.Run("Base58", func(t *testing.T) {
		parsed, err := account.ParseAddress(addr.String())
		if err != nil {
			t.Fatal(err)
		}
		if parsed != addr {
			t.Fatalf("expected %s, got %s", addr, parsed)
		}
	})

	t.Run("Checksum", func(t *testing.T) {
		s := []byte(addr.String())
		// swap a character in the hash part
		if s[3] == '1' {
			s[3] = '2'
		} else {
			s[3] = '1'
		}
		if _, err := account.FromBase58(s); !errors.Is(err, types.ErrParse) {
			t.Fatalf("expected parse error, got %v", err)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		buf, err := utils.MarshalJSON(addr)
		if err != nil {
			t.Fatal(err)
		}
		var decoded account.Address
		if err = utils.UnmarshalJSON(buf, &decoded); err != nil {
			t.Fatal(err)
		}
		if decoded != addr {
			t.Fatalf("expected %s, got %s", addr, decoded)
		}
	})
}
