package ledger

import (
	"fmt"
	"sync"

	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/transaction"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"github.com/dolthub/swiss"
)

type KeyImage = curve25519.PublicKeyBytes

var ErrKeyImageSpent = fmt.Errorf("key image already spent: %w", types.ErrVerification)
var ErrInvalidSpend = fmt.Errorf("ring signature does not verify: %w", types.ErrVerification)

// KeyImageLedger history of spent key images
type KeyImageLedger interface {
	Contains(image KeyImage) bool
	// Record stores all images, or none if any of them is already present
	Record(images ...KeyImage) error
}

// MemoryLedger in-memory KeyImageLedger, safe for concurrent use
type MemoryLedger struct {
	lock   sync.RWMutex
	images *swiss.Map[KeyImage, struct{}]
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		images: swiss.NewMap[KeyImage, struct{}](64),
	}
}

func (l *MemoryLedger) Contains(image KeyImage) bool {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.images.Has(image)
}

func (l *MemoryLedger) Record(images ...KeyImage) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	for i, image := range images {
		if l.images.Has(image) {
			return ErrKeyImageSpent
		}
		// duplicates within the same call
		for _, other := range images[:i] {
			if other == image {
				return ErrKeyImageSpent
			}
		}
	}

	for _, image := range images {
		l.images.Put(image, struct{}{})
	}
	return nil
}

func (l *MemoryLedger) Count() int {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.images.Count()
}

var _ KeyImageLedger = &MemoryLedger{}

// CheckAndRecord verifies signature and then records its key images, failing if any input was already spent.
// Nothing is recorded for a signature that does not verify.
func CheckAndRecord(cfg *transaction.Config, l KeyImageLedger, signature *transaction.RingSignature) error {
	ok, err := signature.Verify(cfg)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidSpend
	}
	return l.Record(signature.KeyImages()...)
}
