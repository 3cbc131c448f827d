package utils

import (
	"io"
)

type ReaderAndByteReader interface {
	io.Reader
	io.ByteReader
}

type Serializable interface {
	AppendBinary(preAllocatedBuf []byte) (data []byte, err error)
	FromReader(reader ReaderAndByteReader) (err error)
	BufferLength() (n int)
}
