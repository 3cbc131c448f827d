package crypto

import (
	"sync"

	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"github.com/floatdrop/lru"
)

const keyImageGeneratorCacheSize = 4096

var keyImageGeneratorCache = lru.New[curve25519.PublicKeyBytes, curve25519.ConstantTimePublicKey](keyImageGeneratorCacheSize)
var keyImageGeneratorCacheLock sync.Mutex

// KeyImageGenerator H_p(P), the generator a key image of P is computed against.
// Results are cached, ring members are hashed again on every signature they appear in.
func KeyImageGenerator[T curve25519.PointOperations](dst *curve25519.PublicKey[T], publicKey *curve25519.PublicKey[T]) *curve25519.PublicKey[T] {
	key := publicKey.Bytes()

	keyImageGeneratorCacheLock.Lock()
	if v := keyImageGeneratorCache.Get(key); v != nil {
		dst.P().Set(v.P())
		keyImageGeneratorCacheLock.Unlock()
		return dst
	}
	keyImageGeneratorCacheLock.Unlock()

	var generator curve25519.ConstantTimePublicKey
	if BiasedHashToPoint(&generator, key[:]) == nil {
		return nil
	}

	keyImageGeneratorCacheLock.Lock()
	keyImageGeneratorCache.Set(key, generator)
	keyImageGeneratorCacheLock.Unlock()

	dst.P().Set(generator.P())
	return dst
}

// GetKeyImage I = x * H_p(P)
func GetKeyImage[T curve25519.PointOperations](dst *curve25519.PublicKey[T], pair *KeyPair[T]) *curve25519.PublicKey[T] {
	var generator curve25519.PublicKey[T]
	KeyImageGenerator(&generator, &pair.PublicKey)
	return dst.ScalarMult(&pair.PrivateKey, &generator)
}
