package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"git.gammaspectra.live/P2Pool/confidential/types"
)

var ErrRandomSource = errors.New("random source failed")

// RandomReader default source of randomness for all provers
var RandomReader io.Reader = rand.Reader

// LockedReader serializes reads so a single reader can be shared by concurrent provers
type LockedReader struct {
	lock   sync.Mutex
	reader io.Reader
}

func NewLockedReader(reader io.Reader) *LockedReader {
	if r, ok := reader.(*LockedReader); ok {
		return r
	}
	return &LockedReader{reader: reader}
}

func (r *LockedReader) Read(p []byte) (n int, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.reader.Read(p)
}

// DeterministicTestGenerator Keccak256 counter mode stream, for tests only
type DeterministicTestGenerator struct {
	seed    types.Hash
	counter uint64
	buf     []byte
}

func NewDeterministicTestGenerator() *DeterministicTestGenerator {
	return NewDeterministicTestGeneratorFromSeed([]byte("confidential deterministic test generator"))
}

func NewDeterministicTestGeneratorFromSeed(seed []byte) *DeterministicTestGenerator {
	return &DeterministicTestGenerator{
		seed: Keccak256(seed),
	}
}

func (g *DeterministicTestGenerator) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(g.buf) == 0 {
			var counter [8]byte
			binary.LittleEndian.PutUint64(counter[:], g.counter)
			g.counter++
			block := Keccak256(g.seed[:], counter[:])
			g.buf = block[:]
		}
		c := copy(p[n:], g.buf)
		g.buf = g.buf[c:]
		n += c
	}
	return n, nil
}
