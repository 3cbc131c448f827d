package curve25519

import (
	"errors"

	fasthex "github.com/tmthrgd/go-hex"
)

const PrivateKeySize = 32

var ZeroPrivateKeyBytes = PrivateKeyBytes{}

type PrivateKeyBytes [PrivateKeySize]byte

func PrivateKeyBytesFromScalar(s *Scalar) (k PrivateKeyBytes) {
	copy(k[:], s.Bytes())
	return k
}

func (k *PrivateKeyBytes) Slice() []byte {
	return (*k)[:]
}

// Scalar returns nil when the bytes are not canonically reduced
func (k *PrivateKeyBytes) Scalar() *Scalar {
	secret, err := new(Scalar).SetCanonicalBytes((*k)[:])
	if err != nil {
		return nil
	}
	return secret
}

func (k *PrivateKeyBytes) String() string {
	return fasthex.EncodeToString(k.Slice())
}

func (k *PrivateKeyBytes) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != PrivateKeySize*2+2 {
		return errors.New("wrong key size")
	}

	if _, err := fasthex.Decode(k[:], b[1:len(b)-1]); err != nil {
		return err
	} else {
		return nil
	}
}

func (k PrivateKeyBytes) MarshalJSON() ([]byte, error) {
	var buf [PrivateKeySize*2 + 2]byte
	buf[0] = '"'
	buf[PrivateKeySize*2+1] = '"'
	fasthex.Encode(buf[1:], k[:])
	return buf[:], nil
}
