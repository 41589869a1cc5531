// Package padding implements the PKCS#7 padding scheme: 1..blockSize bytes
// are appended, each equal to the number of bytes added.
package padding

import (
	"bytes"
	"errors"
)

var ErrInvalidPadding = errors.New("invalid padding")

// Pad returns a copy of buf with PKCS#7 padding added. A buffer that is
// already a multiple of blockSize gets a full block of padding.
func Pad(buf []byte, blockSize int) []byte {
	n := blockSize - len(buf)%blockSize

	out := make([]byte, len(buf), len(buf)+n)
	copy(out, buf)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// Unpad returns buf with its PKCS#7 padding removed.
func Unpad(buf []byte, blockSize int) ([]byte, error) {
	if len(buf) == 0 || len(buf)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}

	b := buf[len(buf)-1]
	n := int(b)
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}
	for _, x := range buf[len(buf)-n:] {
		if x != b {
			return nil, ErrInvalidPadding
		}
	}

	return buf[:len(buf)-n], nil
}

func Valid(buf []byte, blockSize int) bool {
	_, err := Unpad(buf, blockSize)
	return err == nil
}
