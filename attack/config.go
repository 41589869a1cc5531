package attack

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

const (
	DefaultBlockSize     = 16
	DefaultMaxRetries    = 3
	DefaultRetryInterval = 50 * time.Millisecond
)

// Config tunes an Attacker. Zero values are replaced by defaults in New.
type Config struct {
	BlockSize int

	// CandidateOrder is the character alphabet, most likely byte first. It is
	// used exactly as given, so a byte missing from it can't be recovered.
	CandidateOrder []byte

	// Concurrency is how many blocks are decoded at once.
	Concurrency int

	// ProbeTimeout bounds a single oracle query. Zero means no bound.
	ProbeTimeout time.Duration

	// MaxRetries is how many times a failed probe is retried. Negative
	// disables retries.
	MaxRetries    int
	RetryInterval time.Duration

	Logger *slog.Logger
}

func (c Config) withDefaults() (Config, error) {
	if c.BlockSize == 0 {
		c.BlockSize = DefaultBlockSize
	}
	if c.BlockSize < 2 || c.BlockSize > 255 {
		return c, fmt.Errorf("block size %d out of range 2..255", c.BlockSize)
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	if c.ProbeTimeout < 0 {
		return c, fmt.Errorf("negative probe timeout %s", c.ProbeTimeout)
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = DefaultRetryInterval
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c, nil
}
