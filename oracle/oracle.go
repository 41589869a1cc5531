// Package oracle defines the padding oracle port and the collaborators that
// implement it: a simulated oracle holding a real key, and an HTTP client for
// a remote endpoint.
package oracle

import (
	"context"
	"fmt"
)

// An Oracle answers whether a ciphertext decrypts to validly padded plaintext
// and nothing else. Probe must not retain ciphertext after it returns.
//
// A transport failure is reported as an error (usually *ProbeError), never as
// an invalid pad.
type Oracle interface {
	Probe(ctx context.Context, ciphertext []byte) (bool, error)
}

// Func adapts an ordinary function to the Oracle interface.
type Func func(ctx context.Context, ciphertext []byte) (bool, error)

func (f Func) Probe(ctx context.Context, ciphertext []byte) (bool, error) {
	return f(ctx, ciphertext)
}

// ProbeError is a probe that got neither a valid nor an invalid answer.
type ProbeError struct {
	Err error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("oracle probe failed: %s", e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
