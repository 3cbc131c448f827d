package mlsag

import (
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
)

// RingPosition One member of the ring, either the Signer or a Decoy
type RingPosition[T curve25519.PointOperations] interface {
	// PublicKeys the key vector of this member, same length on every member of a ring
	PublicKeys() []curve25519.PublicKey[T]

	isRingPosition()
}

// Signer the real spender: its key pairs and the per-key commitment scalars alpha
type Signer[T curve25519.PointOperations] struct {
	keys  []crypto.KeyPair[T]
	alpha []curve25519.Scalar
}

func NewSigner[T curve25519.PointOperations](keys []crypto.KeyPair[T], randomReader io.Reader) (*Signer[T], error) {
	s := &Signer[T]{
		keys:  keys,
		alpha: make([]curve25519.Scalar, len(keys)),
	}
	for i := range s.alpha {
		if curve25519.RandomScalar(&s.alpha[i], randomReader) == nil {
			return nil, crypto.ErrRandomSource
		}
	}
	return s, nil
}

func (s *Signer[T]) PublicKeys() []curve25519.PublicKey[T] {
	keys := make([]curve25519.PublicKey[T], len(s.keys))
	for i := range s.keys {
		keys[i].Set(&s.keys[i].PublicKey)
	}
	return keys
}

// KeyImages x * H_p(P) for every key of the signer
func (s *Signer[T]) KeyImages() []curve25519.PublicKey[T] {
	images := make([]curve25519.PublicKey[T], len(s.keys))
	for i := range s.keys {
		crypto.GetKeyImage(&images[i], &s.keys[i])
	}
	return images
}

// challenge c = H(msg, alpha*G, alpha*H_p(P) for every key)
func (s *Signer[T]) challenge(out *curve25519.Scalar, msg []byte) *curve25519.Scalar {
	t := crypto.NewTranscript("mlsag")
	t.AppendMessage("msg", msg)

	var L, R, generator curve25519.PublicKey[T]
	for i := range s.keys {
		crypto.KeyImageGenerator(&generator, &s.keys[i].PublicKey)
		L.ScalarBaseMult(&s.alpha[i])
		R.ScalarMult(&s.alpha[i], &generator)
		t.AppendPoint("L", L.P())
		t.AppendPoint("R", R.P())
	}
	return t.ChallengeScalar(out, "c")
}

// responses s = alpha - c*x, closing the ring
func (s *Signer[T]) responses(c *curve25519.Scalar) []curve25519.Scalar {
	responses := make([]curve25519.Scalar, len(s.keys))
	var tmp curve25519.Scalar
	for i := range s.keys {
		responses[i].Subtract(&s.alpha[i], tmp.Multiply(c, &s.keys[i].PrivateKey))
	}
	return responses
}

func (s *Signer[T]) isRingPosition() {}

// Decoy a ring member that is not the spender, with pre-sampled random responses
type Decoy[T curve25519.PointOperations] struct {
	keys      []curve25519.PublicKey[T]
	responses []curve25519.Scalar
}

func NewDecoy[T curve25519.PointOperations](keys []curve25519.PublicKey[T], randomReader io.Reader) (*Decoy[T], error) {
	d := &Decoy[T]{
		keys:      keys,
		responses: make([]curve25519.Scalar, len(keys)),
	}
	for i := range d.responses {
		if curve25519.RandomScalar(&d.responses[i], randomReader) == nil {
			return nil, crypto.ErrRandomSource
		}
	}
	return d, nil
}

func (d *Decoy[T]) PublicKeys() []curve25519.PublicKey[T] {
	return d.keys
}

func (d *Decoy[T]) isRingPosition() {}

var _ RingPosition[curve25519.ConstantTimeOperations] = &Signer[curve25519.ConstantTimeOperations]{}
var _ RingPosition[curve25519.ConstantTimeOperations] = &Decoy[curve25519.ConstantTimeOperations]{}
