package mlsag

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/types"
	"git.gammaspectra.live/P2Pool/confidential/utils"
)

// MinRingSize a ring needs at least one decoy besides the signer
const MinRingSize = 2

// MaxRingSize MaxKeySize bounds for decoding untrusted signatures
const MaxRingSize = 1024
const MaxKeySize = 256

var ErrInvalidRing = fmt.Errorf("invalid ring: %w", types.ErrPrecondition)
var ErrInvalidSigner = fmt.Errorf("ring needs exactly one signer: %w", types.ErrPrecondition)

var ErrInvalidAmountOfKeyImages = fmt.Errorf("invalid amount of key images: %w", types.ErrVerification)
var ErrInvalidResponses = fmt.Errorf("invalid responses: %w", types.ErrVerification)
var ErrInvalidKeyImage = fmt.Errorf("invalid key image: %w", types.ErrVerification)
var ErrInvalidChallenge = fmt.Errorf("ring challenge does not close: %w", types.ErrVerification)

var ErrInvalidEncoding = fmt.Errorf("invalid signature encoding: %w", types.ErrParse)

var _ utils.Serializable = &Signature[curve25519.ConstantTimeOperations]{}
var _ utils.Serializable = &Signature[curve25519.VarTimeOperations]{}

// Signature Multilayer linkable ring signature over vectors of keys
// https://www.getmonero.org/resources/research-lab/pubs/MRL-0005.pdf
type Signature[T curve25519.PointOperations] struct {
	// PublicKeys key vector of every ring member, in ring order
	PublicKeys [][]curve25519.PublicKey[T]
	// KeyImages one per key of the signer
	KeyImages []curve25519.PublicKey[T]
	// C0 challenge entering the first ring member
	C0 curve25519.Scalar
	// Responses one vector per ring member, same order as PublicKeys
	Responses [][]curve25519.Scalar
}

// challenge c' = H(msg, s*G + c*P, s*H_p(P) + c*I for every key)
func challenge[T curve25519.PointOperations](out *curve25519.Scalar, msg []byte, keys []curve25519.PublicKey[T], responses []curve25519.Scalar, c *curve25519.Scalar, keyImages []curve25519.PublicKey[T]) *curve25519.Scalar {
	t := crypto.NewTranscript("mlsag")
	t.AppendMessage("msg", msg)

	var L, R, generator curve25519.PublicKey[T]
	for j := range keys {
		crypto.KeyImageGenerator(&generator, &keys[j])
		L.DoubleScalarBaseMult(c, &keys[j], &responses[j])
		R.DoubleScalarMult(&responses[j], &generator, c, &keyImages[j])
		t.AppendPoint("L", L.P())
		t.AppendPoint("R", R.P())
	}
	return t.ChallengeScalar(out, "c")
}

// Sign produces a signature over msg. The chain starts after the signer, walks every decoy in ring order wrapping
// around, and the signer responses close it. With the signer as last member, C0 is the signer commitment challenge.
func Sign[T curve25519.PointOperations](msg []byte, positions []RingPosition[T]) (*Signature[T], error) {
	if len(positions) < MinRingSize {
		return nil, ErrInvalidRing
	}

	keySize := len(positions[0].PublicKeys())
	if keySize == 0 {
		return nil, ErrInvalidRing
	}

	signerIndex := -1
	var signer *Signer[T]
	for i, p := range positions {
		if len(p.PublicKeys()) != keySize {
			return nil, ErrInvalidRing
		}
		if s, ok := p.(*Signer[T]); ok {
			if signer != nil {
				return nil, ErrInvalidSigner
			}
			signer, signerIndex = s, i
		}
	}
	if signer == nil {
		return nil, ErrInvalidSigner
	}

	ringSize := len(positions)
	signature := &Signature[T]{
		PublicKeys: make([][]curve25519.PublicKey[T], ringSize),
		KeyImages:  signer.KeyImages(),
		Responses:  make([][]curve25519.Scalar, ringSize),
	}

	var c curve25519.Scalar
	signer.challenge(&c, msg)

	// sequential, every challenge depends on the previous one
	for step := 1; step <= ringSize; step++ {
		i := (signerIndex + step) % ringSize
		if i == 0 {
			signature.C0.Set(&c)
		}
		switch p := positions[i].(type) {
		case *Decoy[T]:
			signature.PublicKeys[i] = p.PublicKeys()
			signature.Responses[i] = p.responses
			challenge(&c, msg, p.keys, p.responses, &c, signature.KeyImages)
		case *Signer[T]:
			signature.PublicKeys[i] = p.PublicKeys()
			signature.Responses[i] = p.responses(&c)
		}
	}

	return signature, nil
}

// RingSize number of ring members
func (s *Signature[T]) RingSize() int {
	return len(s.PublicKeys)
}

// KeySize length of every member key vector
func (s *Signature[T]) KeySize() int {
	return len(s.KeyImages)
}

// Verify walks the ring from C0 and checks the last challenge equals C0
func (s *Signature[T]) Verify(msg []byte) error {
	if len(s.PublicKeys) < MinRingSize {
		return ErrInvalidRing
	}
	if len(s.Responses) != len(s.PublicKeys) {
		return ErrInvalidResponses
	}

	keySize := len(s.KeyImages)
	if keySize == 0 {
		return ErrInvalidAmountOfKeyImages
	}

	for i := range s.PublicKeys {
		if len(s.PublicKeys[i]) != keySize {
			return ErrInvalidAmountOfKeyImages
		}
		if len(s.Responses[i]) != keySize {
			return ErrInvalidResponses
		}
	}

	for i := range s.KeyImages {
		if s.KeyImages[i].IsIdentity() || !s.KeyImages[i].IsTorsionFree() {
			return ErrInvalidKeyImage
		}
	}

	var c curve25519.Scalar
	c.Set(&s.C0)
	for i := range s.PublicKeys {
		challenge(&c, msg, s.PublicKeys[i], s.Responses[i], &c, s.KeyImages)
	}

	if c.Equal(&s.C0) == 0 {
		return ErrInvalidChallenge
	}

	return nil
}

// KeyImageBytes compressed key images, as tracked by a ledger
func (s *Signature[T]) KeyImageBytes() []curve25519.PublicKeyBytes {
	images := make([]curve25519.PublicKeyBytes, len(s.KeyImages))
	for i := range s.KeyImages {
		images[i] = s.KeyImages[i].Bytes()
	}
	return images
}

func (s *Signature[T]) BufferLength() int {
	n := utils.UVarInt64Size(len(s.PublicKeys)) + utils.UVarInt64Size(len(s.KeyImages))
	n += len(s.PublicKeys) * len(s.KeyImages) * (curve25519.PublicKeySize + curve25519.PrivateKeySize)
	n += len(s.KeyImages) * curve25519.PublicKeySize
	return n + curve25519.PrivateKeySize
}

// AppendBinary ring size, key size, public keys, key images, C0, responses
func (s *Signature[T]) AppendBinary(preAllocatedBuf []byte) (data []byte, err error) {
	buf := preAllocatedBuf
	buf = binary.AppendUvarint(buf, uint64(len(s.PublicKeys)))
	buf = binary.AppendUvarint(buf, uint64(len(s.KeyImages)))
	for i := range s.PublicKeys {
		if len(s.PublicKeys[i]) != len(s.KeyImages) {
			return nil, ErrInvalidAmountOfKeyImages
		}
		for j := range s.PublicKeys[i] {
			buf = append(buf, s.PublicKeys[i][j].Slice()...)
		}
	}
	for i := range s.KeyImages {
		buf = append(buf, s.KeyImages[i].Slice()...)
	}
	buf = append(buf, s.C0.Bytes()...)
	if len(s.Responses) != len(s.PublicKeys) {
		return nil, ErrInvalidResponses
	}
	for i := range s.Responses {
		if len(s.Responses[i]) != len(s.KeyImages) {
			return nil, ErrInvalidResponses
		}
		for j := range s.Responses[i] {
			buf = append(buf, s.Responses[i][j].Bytes()...)
		}
	}
	return buf, nil
}

func (s *Signature[T]) FromReader(reader utils.ReaderAndByteReader) (err error) {
	ringSize, err := utils.ReadCount(reader, MaxRingSize)
	if err != nil {
		return errors.Join(ErrInvalidEncoding, err)
	}
	keySize, err := utils.ReadCount(reader, MaxKeySize)
	if err != nil {
		return errors.Join(ErrInvalidEncoding, err)
	}

	var pk curve25519.PublicKeyBytes
	readPoint := func(dst *curve25519.PublicKey[T]) error {
		if _, err := io.ReadFull(reader, pk[:]); err != nil {
			return errors.Join(ErrInvalidEncoding, err)
		}
		if curve25519.DecodeCompressedPoint(dst, pk) == nil {
			return errors.Join(ErrInvalidEncoding, curve25519.ErrInvalidPoint)
		}
		return nil
	}
	var sk curve25519.PrivateKeyBytes
	readScalar := func(dst *curve25519.Scalar) error {
		if _, err := io.ReadFull(reader, sk[:]); err != nil {
			return errors.Join(ErrInvalidEncoding, err)
		}
		if _, err := dst.SetCanonicalBytes(sk[:]); err != nil {
			return errors.Join(ErrInvalidEncoding, err)
		}
		return nil
	}

	s.PublicKeys = make([][]curve25519.PublicKey[T], ringSize)
	for i := range s.PublicKeys {
		s.PublicKeys[i] = make([]curve25519.PublicKey[T], keySize)
		for j := range s.PublicKeys[i] {
			if err = readPoint(&s.PublicKeys[i][j]); err != nil {
				return err
			}
		}
	}
	s.KeyImages = make([]curve25519.PublicKey[T], keySize)
	for i := range s.KeyImages {
		if err = readPoint(&s.KeyImages[i]); err != nil {
			return err
		}
	}
	if err = readScalar(&s.C0); err != nil {
		return err
	}
	s.Responses = make([][]curve25519.Scalar, ringSize)
	for i := range s.Responses {
		s.Responses[i] = make([]curve25519.Scalar, keySize)
		for j := range s.Responses[i] {
			if err = readScalar(&s.Responses[i][j]); err != nil {
				return err
			}
		}
	}
	return nil
}

type signatureJSON struct {
	PublicKeys [][]curve25519.PublicKeyBytes  `json:"public_keys"`
	KeyImages  []curve25519.PublicKeyBytes    `json:"key_images"`
	C0         curve25519.PrivateKeyBytes     `json:"c0"`
	Responses  [][]curve25519.PrivateKeyBytes `json:"responses"`
}

func (s Signature[T]) MarshalJSON() ([]byte, error) {
	v := signatureJSON{
		PublicKeys: make([][]curve25519.PublicKeyBytes, len(s.PublicKeys)),
		KeyImages:  s.KeyImageBytes(),
		C0:         curve25519.PrivateKeyBytesFromScalar(&s.C0),
		Responses:  make([][]curve25519.PrivateKeyBytes, len(s.Responses)),
	}
	for i := range s.PublicKeys {
		v.PublicKeys[i] = make([]curve25519.PublicKeyBytes, len(s.PublicKeys[i]))
		for j := range s.PublicKeys[i] {
			v.PublicKeys[i][j] = s.PublicKeys[i][j].Bytes()
		}
	}
	for i := range s.Responses {
		v.Responses[i] = make([]curve25519.PrivateKeyBytes, len(s.Responses[i]))
		for j := range s.Responses[i] {
			v.Responses[i][j] = curve25519.PrivateKeyBytesFromScalar(&s.Responses[i][j])
		}
	}
	return utils.MarshalJSON(v)
}

func (s *Signature[T]) UnmarshalJSON(b []byte) error {
	var v signatureJSON
	if err := utils.UnmarshalJSON(b, &v); err != nil {
		return err
	}

	toPoints := func(in []curve25519.PublicKeyBytes) ([]curve25519.PublicKey[T], error) {
		out := make([]curve25519.PublicKey[T], len(in))
		for i := range in {
			if curve25519.DecodeCompressedPoint(&out[i], in[i]) == nil {
				return nil, errors.Join(ErrInvalidEncoding, curve25519.ErrInvalidPoint)
			}
		}
		return out, nil
	}
	toScalars := func(in []curve25519.PrivateKeyBytes) ([]curve25519.Scalar, error) {
		out := make([]curve25519.Scalar, len(in))
		for i := range in {
			if _, err := out[i].SetCanonicalBytes(in[i][:]); err != nil {
				return nil, errors.Join(ErrInvalidEncoding, err)
			}
		}
		return out, nil
	}

	var err error
	s.PublicKeys = make([][]curve25519.PublicKey[T], len(v.PublicKeys))
	for i := range v.PublicKeys {
		if s.PublicKeys[i], err = toPoints(v.PublicKeys[i]); err != nil {
			return err
		}
	}
	if s.KeyImages, err = toPoints(v.KeyImages); err != nil {
		return err
	}
	if _, err = s.C0.SetCanonicalBytes(v.C0[:]); err != nil {
		return errors.Join(ErrInvalidEncoding, err)
	}
	s.Responses = make([][]curve25519.Scalar, len(v.Responses))
	for i := range v.Responses {
		if s.Responses[i], err = toScalars(v.Responses[i]); err != nil {
			return err
		}
	}
	return nil
}
