package types

import (
	"errors"

	fasthex "github.com/tmthrgd/go-hex"
)

const HashSize = 32

var errHashSize = errors.New("wrong hash size")

//nolint:recvcheck
type Hash [HashSize]byte

var ZeroHash Hash

// HashFromString decodes exactly HashSize hex encoded bytes
func HashFromString(s string) (h Hash, err error) {
	if len(s) != HashSize*2 {
		return h, errHashSize
	}
	_, err = fasthex.Decode(h[:], []byte(s))
	return h, err
}

// HashFromBytes returns ZeroHash when buf is not HashSize long
func HashFromBytes(buf []byte) (h Hash) {
	if len(buf) == HashSize {
		copy(h[:], buf)
	}
	return h
}

func (h Hash) String() string {
	return fasthex.EncodeToString(h[:])
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return quotedHex(h[:]), nil
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	if len(b) != HashSize*2+2 {
		return errHashSize
	}
	data, err := unquote(b)
	if err != nil {
		return err
	}
	_, err = fasthex.Decode(h[:], data)
	return err
}

// Bytes variable length byte slice encoded as hex in JSON
//
//nolint:recvcheck
type Bytes []byte

func (b Bytes) String() string {
	return fasthex.EncodeToString(b)
}

func (b Bytes) MarshalJSON() ([]byte, error) {
	return quotedHex(b), nil
}

func (b *Bytes) UnmarshalJSON(buf []byte) error {
	data, err := unquote(buf)
	if err != nil {
		return err
	}
	if len(data)%2 != 0 {
		return errors.New("odd hex length")
	}
	*b = make(Bytes, len(data)/2)
	_, err = fasthex.Decode(*b, data)
	return err
}

func quotedHex(data []byte) []byte {
	buf := make([]byte, len(data)*2+2)
	buf[0], buf[len(buf)-1] = '"', '"'
	fasthex.Encode(buf[1:], data)
	return buf
}

func unquote(buf []byte) ([]byte, error) {
	if len(buf) < 2 || buf[0] != '"' || buf[len(buf)-1] != '"' {
		return nil, errors.New("expected hex string")
	}
	return buf[1 : len(buf)-1], nil
}
