package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/staking"
)

const (
	defaultMaxAttempts = 3
	defaultPoolSize    = 8
)

type SummaryClient interface {
	Summary(ctx context.Context, pool solana.PublicKey, mint solana.PublicKey) (*staking.StakeSummary, error)
}

// Target is a staked mint in a pool whose metrics are exported.
type Target struct {
	Pool solana.PublicKey
	Mint solana.PublicKey
}

// ParseTarget parses a target of the form <pool>:<mint>.
func ParseTarget(s string) (Target, error) {
	poolStr, mintStr, ok := strings.Cut(s, ":")
	if !ok {
		return Target{}, fmt.Errorf("invalid target %q, expected <pool>:<mint>", s)
	}
	pool, err := solana.PublicKeyFromBase58(poolStr)
	if err != nil {
		return Target{}, fmt.Errorf("invalid target pool %q: %w", poolStr, err)
	}
	mint, err := solana.PublicKeyFromBase58(mintStr)
	if err != nil {
		return Target{}, fmt.Errorf("invalid target mint %q: %w", mintStr, err)
	}
	return Target{Pool: pool, Mint: mint}, nil
}

type Config struct {
	Logger   *slog.Logger
	Staking  SummaryClient
	Targets  []Target
	Interval time.Duration
	Clock    clockwork.Clock

	// NewRetryBackOff returns the backoff pacing retries of one poll. It is called once per
	// poll since polls run concurrently. Retries stop after MaxAttempts or once Interval has
	// elapsed, whichever comes first.
	NewRetryBackOff func() backoff.BackOff
	MaxAttempts     uint

	// PoolSize bounds how many targets are polled concurrently.
	PoolSize int
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Staking == nil {
		return errors.New("staking client is required")
	}
	if len(c.Targets) == 0 {
		return errors.New("at least one target is required")
	}
	if c.Interval <= 0 {
		return errors.New("interval must be greater than 0")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.NewRetryBackOff == nil {
		c.NewRetryBackOff = func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		}
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.PoolSize <= 0 {
		c.PoolSize = defaultPoolSize
	}
	return nil
}
