package utils

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestReadCount(t *testing.T) {
	for _, tc := range []struct {
		name  string
		data  []byte
		limit uint64
		value int
		err   error
	}{
		{"Zero", []byte{0}, 10, 0, nil},
		{"Small", []byte{5}, 10, 5, nil},
		{"TwoBytes", []byte{0x80, 0x01}, 1024, 128, nil},
		{"AboveLimit", []byte{11}, 10, 0, ErrVarIntTooLarge},
		{"NonCanonical", []byte{0x81, 0x00}, 10, 0, ErrNonCanonicalEncoding},
		{"Truncated", []byte{0x80}, 10, 0, io.ErrUnexpectedEOF},
		{"Empty", []byte{}, 10, 0, io.EOF},
	} {
		t.Run(tc.name, func(t *testing.T) {
			value, err := ReadCount(bytes.NewReader(tc.data), tc.limit)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected error %v, got %v", tc.err, err)
			}
			if err == nil && value != tc.value {
				t.Fatalf("expected %d, got %d", tc.value, value)
			}
		})
	}
}

func TestUVarInt64Size(t *testing.T) {
	var buf [binary.MaxVarintLen64]byte
	for _, v := range []uint64{0, 1, 127, 128, 16383, 16384, 1<<63 - 1, 1<<64 - 1} {
		if n := len(binary.AppendUvarint(buf[:0], v)); n != UVarInt64Size(v) {
			t.Fatalf("size of %d: expected %d, got %d", v, n, UVarInt64Size(v))
		}
	}
}

func FuzzReadCanonicalUvarint(f *testing.F) {
	f.Add([]byte{0x80, 0x01})
	f.Fuzz(func(t *testing.T, data []byte) {
		var buf [binary.MaxVarintLen64]byte
		reader := bytes.NewReader(data)
		value, err := ReadCanonicalUvarint(reader)
		if err != nil || reader.Len() != 0 {
			t.SkipNow()
		}
		encoded := binary.AppendUvarint(buf[:0], value)
		if !bytes.Equal(encoded, data) {
			t.Fatalf("canonical encoding mismatch: have %x, want %x", encoded, data)
		}
	})
}
