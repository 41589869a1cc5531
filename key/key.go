package key

import (
	"crypto/rand"
	"fmt"
)

type Key interface {
	Bytes() []byte
	Len() int
}

type aesKey struct {
	material []byte
}

func (k *aesKey) Bytes() []byte {
	b := make([]byte, len(k.material))
	copy(b, k.material)
	return b
}

func (k *aesKey) Len() int {
	return len(k.material)
}

// Random returns a key of size bytes read from crypto/rand.
func Random(size int) (Key, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("could not generate key: %w", err)
	}

	return &aesKey{material: b}, nil
}

// Bit128 is Random(16) for callers that can't handle an error, like test setup.
func Bit128() Key {
	k, err := Random(16)
	if err != nil {
		panic(err)
	}
	return k
}

func New(material []byte) (Key, error) {
	if err := checkSize(len(material)); err != nil {
		return nil, err
	}

	b := make([]byte, len(material))
	copy(b, material)
	return &aesKey{material: b}, nil
}

func checkSize(n int) error {
	switch n {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("unsupported key size %d", n)
	}
}
