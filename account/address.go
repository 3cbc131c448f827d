package account

import (
	"bytes"
	"fmt"

	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/confidential/types"
	base58 "git.gammaspectra.live/P2Pool/monero-base58"
)

const ChecksumLength = 4

const addressRawLength = types.HashSize + ChecksumLength

// encodedAddressLength four full 8-byte blocks and a 4-byte tail
const encodedAddressLength = 4*11 + 6

var ErrInvalidAddress = fmt.Errorf("invalid address: %w", types.ErrParse)

// Address Keccak256 of an account public key
type Address types.Hash

type Checksum [ChecksumLength]byte

func NewAddress(publicKey *curve25519.ConstantTimePublicKey) Address {
	return Address(crypto.Keccak256(publicKey.Slice()))
}

func (a Address) Checksum() (sum Checksum) {
	h := crypto.Keccak256(a[:])
	copy(sum[:], h[:ChecksumLength])
	return sum
}

// ToBase58 hash followed by the first bytes of its own Keccak256
func (a Address) ToBase58() []byte {
	sum := a.Checksum()
	buf := make([]byte, 0, encodedAddressLength)
	return base58.EncodeMoneroBase58PreAllocated(buf, a[:], sum[:])
}

func (a Address) String() string {
	return string(a.ToBase58())
}

func FromBase58(address []byte) (Address, error) {
	preAllocatedBuf := make([]byte, 0, addressRawLength)
	raw := base58.DecodeMoneroBase58PreAllocated(preAllocatedBuf, address)

	if len(raw) != addressRawLength {
		return Address{}, ErrInvalidAddress
	}

	a := Address(types.HashFromBytes(raw[:types.HashSize]))
	sum := a.Checksum()
	if !bytes.Equal(sum[:], raw[types.HashSize:]) {
		return Address{}, ErrInvalidAddress
	}
	return a, nil
}

func ParseAddress(address string) (Address, error) {
	return FromBase58([]byte(address))
}

func (a Address) MarshalJSON() ([]byte, error) {
	sum := a.Checksum()
	buf := make([]byte, 1, encodedAddressLength+2)
	buf[0] = '"'
	buf = base58.EncodeMoneroBase58PreAllocated(buf, a[:], sum[:])
	return append(buf, '"'), nil
}

func (a *Address) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return ErrInvalidAddress
	}
	addr, err := FromBase58(b[1 : len(b)-1])
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
