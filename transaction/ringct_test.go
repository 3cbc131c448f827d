package transaction_test

import (
	"fmt"
	"testing"

	"git.gammaspectra.live/P2Pool/confidential/account"
	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/transaction"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"git.gammaspectra.live/P2Pool/confidential/utils"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/require"
)

func mintInputs(t *testing.T, cfg *transaction.Config, owner *account.Account, rng *crypto.DeterministicTestGenerator, balances ...uint64) []transaction.ConfidentialTransaction {
	inputs := make([]transaction.ConfidentialTransaction, 0, len(balances))
	for _, balance := range balances {
		tx, err := transaction.Mint(cfg, owner, balance, rng)
		require.NoError(t, err)
		inputs = append(inputs, *tx)
	}
	return inputs
}

func TestRingCT(t *testing.T) {
	spec.Run(t, "Transfer", func(t *testing.T, when spec.G, it spec.S) {
		var (
			rng               *crypto.DeterministicTestGenerator
			cfg               *transaction.Config
			alice, bob, carol *account.Account
			ring              *transaction.RingCT
		)

		it.Before(func() {
			rng = crypto.NewDeterministicTestGenerator()
			cfg = transaction.DefaultConfig()
			alice = newAccount(t, rng)
			bob = newAccount(t, rng)
			carol = newAccount(t, rng)

			ring = &transaction.RingCT{
				Owner:  alice,
				Inputs: mintInputs(t, cfg, alice, rng, 60, 40),
				Outputs: []transaction.Recipient{
					{Account: bob, Amount: 70},
					{Account: carol, Amount: 30},
				},
			}
			for range 3 {
				ring.Decoys = append(ring.Decoys, mintInputs(t, cfg, newAccount(t, rng), rng, 5, 500))
			}
		})

		it("verifies a balanced transfer", func() {
			sig, err := ring.Transfer(cfg, rng)
			require.NoError(t, err)

			ok, err := sig.Verify(cfg)
			require.NoError(t, err)
			require.True(t, ok)

			require.Len(t, sig.Inputs, len(ring.Decoys)+1)
			require.Len(t, sig.KeyImages(), len(ring.Inputs))

			_, secret, err := sig.Outputs[0].Open(bob)
			require.NoError(t, err)
			require.Equal(t, uint64(70), secret.Balance)

			_, secret, err = sig.Outputs[1].Open(carol)
			require.NoError(t, err)
			require.Equal(t, uint64(30), secret.Balance)
		})

		it("produces the same key images when an input is spent twice", func() {
			first, err := ring.Transfer(cfg, rng)
			require.NoError(t, err)
			second, err := ring.Transfer(cfg, rng)
			require.NoError(t, err)

			require.Equal(t, first.KeyImages(), second.KeyImages())
		})

		for _, decoys := range []int{1, 2, 7} {
			it(fmt.Sprintf("verifies with %d decoy sets", decoys), func() {
				ring.Decoys = ring.Decoys[:0]
				for range decoys {
					ring.Decoys = append(ring.Decoys, mintInputs(t, cfg, newAccount(t, rng), rng, 1, 2))
				}
				sig, err := ring.Transfer(cfg, rng)
				require.NoError(t, err)

				ok, err := sig.Verify(cfg)
				require.NoError(t, err)
				require.True(t, ok)
			})
		}

		when("preconditions do not hold", func() {
			it("rejects a decoy set of the wrong size", func() {
				ring.Decoys[1] = ring.Decoys[1][:1]
				_, err := ring.Transfer(cfg, rng)
				require.ErrorIs(t, err, transaction.ErrDecoyShape)
			})

			it("rejects a ring without decoys", func() {
				ring.Decoys = nil
				_, err := ring.Transfer(cfg, rng)
				require.ErrorIs(t, err, transaction.ErrNoDecoys)
			})

			it("rejects unbalanced amounts", func() {
				ring.Outputs[1].Amount = 31
				_, err := ring.Transfer(cfg, rng)
				require.ErrorIs(t, err, transaction.ErrUnbalanced)
				require.ErrorIs(t, err, types.ErrPrecondition)
			})

			it("rejects inputs of another owner", func() {
				ring.Owner = bob
				_, err := ring.Transfer(cfg, rng)
				require.ErrorIs(t, err, types.ErrAuthorization)
			})

			it("rejects a ring without owner", func() {
				ring.Owner = nil
				_, err := ring.Transfer(cfg, rng)
				require.ErrorIs(t, err, transaction.ErrNoOwner)
				require.ErrorIs(t, err, types.ErrPrecondition)
			})

			it("rejects an output without account", func() {
				ring.Outputs[0].Account = nil
				_, err := ring.Transfer(cfg, rng)
				require.ErrorIs(t, err, transaction.ErrInvalidRecipient)
				require.ErrorIs(t, err, types.ErrPrecondition)
			})
		})

		when("the signature is tampered with", func() {
			var sig *transaction.RingSignature

			it.Before(func() {
				var err error
				sig, err = ring.Transfer(cfg, rng)
				require.NoError(t, err)
			})

			it("rejects a replaced output", func() {
				replacement, err := transaction.Mint(cfg, bob, 70, rng)
				require.NoError(t, err)
				sig.Outputs[0] = *replacement

				ok, err := sig.Verify(cfg)
				require.NoError(t, err)
				require.False(t, ok)
			})

			it("rejects a listed input that is not in the ring", func() {
				other := mintInputs(t, cfg, alice, rng, 60)
				sig.Inputs[len(sig.Inputs)-1][0] = other[0]

				ok, err := sig.Verify(cfg)
				require.NoError(t, err)
				require.False(t, ok)
			})

			it("rejects a ring member that does not balance", func() {
				// same one-time account, other commitment
				replacement := mintInputs(t, cfg, alice, rng, 7)[0]
				sig.Inputs[0][1].Token = replacement.Token

				ok, err := sig.Verify(cfg)
				require.NoError(t, err)
				require.False(t, ok)
			})

			it("fails on inputs that do not match the ring shape", func() {
				sig.Inputs = sig.Inputs[1:]

				ok, err := sig.Verify(cfg)
				require.ErrorIs(t, err, transaction.ErrInvalidRingShape)
				require.False(t, ok)
			})
		})

		it("round trips through JSON", func() {
			sig, err := ring.Transfer(cfg, rng)
			require.NoError(t, err)

			buf, err := utils.MarshalJSON(sig)
			require.NoError(t, err)

			var decoded transaction.RingSignature
			require.NoError(t, utils.UnmarshalJSON(buf, &decoded))

			ok, err := decoded.Verify(cfg)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, sig.KeyImages(), decoded.KeyImages())
		})
	}, spec.Report(report.Terminal{}))
}
