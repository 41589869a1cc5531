package oracle

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mario-areias/padding-oracle/key"
	"github.com/mario-areias/padding-oracle/padding"
)

// Local can be thought of as a server that decrypts its input but never returns
// the plain text to its caller. For example, a web server that decrypts a cookie
// to check for user permissions. The only thing it leaks is whether the padding
// was valid.
type Local struct {
	block cipher.Block

	// Delay is slept before every answer to mimic a remote round trip.
	Delay time.Duration

	probes atomic.Int64
}

func NewLocal(k key.Key) (*Local, error) {
	block, err := aes.NewCipher(k.Bytes())
	if err != nil {
		return nil, fmt.Errorf("could not create cipher: %w", err)
	}
	return &Local{block: block}, nil
}

func (l *Local) BlockSize() int {
	return l.block.BlockSize()
}

// Encrypt pads plaintext and encrypts it in CBC mode under a random IV. The IV
// is returned as the first block.
func (l *Local) Encrypt(plaintext []byte) ([]byte, error) {
	iv := make([]byte, l.block.BlockSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("could not generate iv: %w", err)
	}
	return l.EncryptWithIV(plaintext, iv)
}

func (l *Local) EncryptWithIV(plaintext, iv []byte) ([]byte, error) {
	n := l.block.BlockSize()
	if len(iv) != n {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", n, len(iv))
	}

	padded := padding.Pad(plaintext, n)
	out := make([]byte, n+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(l.block, iv).CryptBlocks(out[n:], padded)
	return out, nil
}

// Probe decrypts ciphertext, using its first block as the IV, and reports
// whether the result is validly padded.
func (l *Local) Probe(ctx context.Context, ciphertext []byte) (bool, error) {
	l.probes.Add(1)

	if l.Delay > 0 {
		t := time.NewTimer(l.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false, &ProbeError{Err: ctx.Err()}
		case <-t.C:
		}
	}

	n := l.block.BlockSize()
	if len(ciphertext) < 2*n || len(ciphertext)%n != 0 {
		return false, nil
	}

	// ignoring decrypted output because the caller shouldn't have access to it
	plain := make([]byte, len(ciphertext)-n)
	cipher.NewCBCDecrypter(l.block, ciphertext[:n]).CryptBlocks(plain, ciphertext[n:])
	return padding.Valid(plain, n), nil
}

// Probes returns how many times Probe has been called.
func (l *Local) Probes() int64 {
	return l.probes.Load()
}
