package utils

import (
	"encoding/binary"
	"errors"
	"io"
)

var ErrVarIntOverflow = errors.New("varint overflows a 64-bit integer")

var ErrNonCanonicalEncoding = errors.New("varint has non canonical encoding")

var ErrVarIntTooLarge = errors.New("varint value too large")

// ReadCanonicalUvarint reads an unsigned varint, refusing encodings with trailing zero groups so every value has
// exactly one encoding. [io.EOF] is returned only if no bytes were read.
func ReadCanonicalUvarint(r io.ByteReader) (uint64, error) {
	var x uint64
	var s uint
	for i := 0; i < binary.MaxVarintLen64; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return x, err
		}
		if i > 0 && b == 0 {
			return x, ErrNonCanonicalEncoding
		}
		if b < 0x80 {
			if i == binary.MaxVarintLen64-1 && b > 1 {
				return x, ErrVarIntOverflow
			}
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return x, ErrVarIntOverflow
}

// ReadCount reads a canonical element count and refuses values above limit
func ReadCount(reader io.ByteReader, limit uint64) (int, error) {
	n, err := ReadCanonicalUvarint(reader)
	if err != nil {
		return 0, err
	}
	if n > limit {
		return 0, ErrVarIntTooLarge
	}
	return int(n), nil
}

func UVarInt64Size[T uint64 | int](v T) (n int) {
	x := uint64(v)
	for n = 1; x >= 0x80; n++ {
		x >>= 7
	}
	return n
}
