package crypto

import (
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"github.com/gtank/merlin"
)

// Transcript Fiat-Shamir transcript over merlin/STROBE, domain separated by its label
type Transcript struct {
	t *merlin.Transcript
}

func NewTranscript(label string) *Transcript {
	return &Transcript{t: merlin.NewTranscript(label)}
}

func (t *Transcript) AppendMessage(label string, message []byte) {
	t.t.AppendMessage([]byte(label), message)
}

// AppendPoint appends the canonical compressed form of p
func (t *Transcript) AppendPoint(label string, p *curve25519.Point) {
	t.t.AppendMessage([]byte(label), p.Bytes())
}

// ChallengeScalar extracts 64 bytes and reduces them to a scalar
func (t *Transcript) ChallengeScalar(out *curve25519.Scalar, label string) *curve25519.Scalar {
	buf := t.t.ExtractBytes([]byte(label), curve25519.PrivateKeySize*2)
	return curve25519.BytesToScalar64(out, [curve25519.PrivateKeySize * 2]byte(buf))
}
