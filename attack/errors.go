package attack

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the caller's context ends the attack. It is
// never an oracle fault.
var ErrCancelled = errors.New("attack cancelled")

// InvalidLengthError is returned before any probing for a ciphertext that is
// not at least an IV and one block of whole blocks.
type InvalidLengthError struct {
	Length    int
	BlockSize int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid ciphertext length %d: need a multiple of %d and at least %d bytes",
		e.Length, e.BlockSize, 2*e.BlockSize)
}

// OracleExhaustedError means no candidate was accepted at a position. Err is
// set when the cause was a transport failure that outlasted the retries.
type OracleExhaustedError struct {
	Block    int
	Position int
	Phase    Phase
	Err      error
}

func (e *OracleExhaustedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("block %d position %d: oracle exhausted: %s", e.Block, e.Position, e.Err)
	}
	return fmt.Sprintf("block %d position %d: no %s candidate accepted by the oracle", e.Block, e.Position, e.Phase)
}

func (e *OracleExhaustedError) Unwrap() error {
	return e.Err
}

// BlockError names the ciphertext block that failed so the caller can retry it
// alone with Attacker.DecryptBlock.
type BlockError struct {
	Block int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %s", e.Block, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}
