package ledger

import (
	"sync"
	"testing"

	"git.gammaspectra.live/P2Pool/confidential/account"
	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/transaction"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"github.com/stretchr/testify/require"
)

func randomImage(rng *crypto.DeterministicTestGenerator) KeyImage {
	return curve25519.RandomPoint(new(curve25519.ConstantTimePublicKey), rng).Bytes()
}

func TestMemoryLedger(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()
	l := NewMemoryLedger()

	a, b, c := randomImage(rng), randomImage(rng), randomImage(rng)

	require.NoError(t, l.Record(a, b))
	require.True(t, l.Contains(a))
	require.True(t, l.Contains(b))
	require.False(t, l.Contains(c))

	t.Run("Atomic", func(t *testing.T) {
		err := l.Record(c, a)
		require.ErrorIs(t, err, ErrKeyImageSpent)
		require.ErrorIs(t, err, types.ErrVerification)
		require.False(t, l.Contains(c))
		require.Equal(t, 2, l.Count())
	})

	t.Run("DuplicateInCall", func(t *testing.T) {
		require.ErrorIs(t, l.Record(c, c), ErrKeyImageSpent)
		require.False(t, l.Contains(c))
	})

	t.Run("Concurrent", func(t *testing.T) {
		images := make([]KeyImage, 64)
		for i := range images {
			images[i] = randomImage(rng)
		}

		var wg sync.WaitGroup
		var lock sync.Mutex
		var recorded int
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for _, image := range images {
					if l.Record(image) == nil {
						lock.Lock()
						recorded++
						lock.Unlock()
					}
				}
			}()
		}
		wg.Wait()
		require.Equal(t, len(images), recorded)
	})
}

func TestCheckAndRecord(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()
	cfg := transaction.DefaultConfig()

	alice, err := account.NewAccount(rng)
	require.NoError(t, err)
	bob, err := account.NewAccount(rng)
	require.NoError(t, err)
	decoyOwner, err := account.NewAccount(rng)
	require.NoError(t, err)

	input, err := transaction.Mint(cfg, alice, 50, rng)
	require.NoError(t, err)
	decoy, err := transaction.Mint(cfg, decoyOwner, 20, rng)
	require.NoError(t, err)

	ring := &transaction.RingCT{
		Owner:   alice,
		Inputs:  []transaction.ConfidentialTransaction{*input},
		Outputs: []transaction.Recipient{{Account: bob, Amount: 50}},
		Decoys:  [][]transaction.ConfidentialTransaction{{*decoy}},
	}

	l := NewMemoryLedger()

	sig, err := ring.Transfer(cfg, rng)
	require.NoError(t, err)

	// an output swapped after signing must not burn the key images
	other, err := transaction.Mint(cfg, bob, 50, rng)
	require.NoError(t, err)
	tampered := *sig
	tampered.Outputs = []transaction.ConfidentialTransaction{*other}
	require.ErrorIs(t, CheckAndRecord(cfg, l, &tampered), ErrInvalidSpend)
	require.Equal(t, 0, l.Count())

	require.NoError(t, CheckAndRecord(cfg, l, sig))
	require.Equal(t, len(sig.KeyImages()), l.Count())

	// spending the same input in a fresh signature links to the recorded image
	replay, err := ring.Transfer(cfg, rng)
	require.NoError(t, err)
	require.ErrorIs(t, CheckAndRecord(cfg, l, replay), ErrKeyImageSpent)
}
