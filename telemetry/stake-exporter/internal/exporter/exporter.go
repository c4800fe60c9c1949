package exporter

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v5"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/stakepool"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/staking"
)

type Exporter struct {
	log  *slog.Logger
	cfg  *Config
	pool pond.ResultPool[pollResult]
}

type pollResult struct {
	target  Target
	summary *staking.StakeSummary
	err     error
}

func New(cfg *Config) (*Exporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Exporter{
		log:  cfg.Logger,
		cfg:  cfg,
		pool: pond.NewResultPool[pollResult](cfg.PoolSize),
	}, nil
}

// Run polls every target once immediately and then on every interval until ctx is done.
func (e *Exporter) Run(ctx context.Context) error {
	e.log.Info("Starting stake exporter", "targets", len(e.cfg.Targets), "interval", e.cfg.Interval)
	defer e.pool.StopAndWait()

	ticker := e.cfg.Clock.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	e.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			e.log.Info("Shutting down stake exporter")
			return nil
		case <-ticker.Chan():
			e.tick(ctx)
		}
	}
}

func (e *Exporter) tick(ctx context.Context) {
	start := e.cfg.Clock.Now()
	defer func() {
		MetricPollDuration.Observe(e.cfg.Clock.Since(start).Seconds())
	}()

	group := e.pool.NewGroupContext(ctx)
	for _, target := range e.cfg.Targets {
		group.Submit(func() pollResult {
			summary, err := e.poll(ctx, target)
			return pollResult{target: target, summary: summary, err: err}
		})
	}

	results, err := group.Wait()
	if err != nil {
		e.log.Warn("Poll interrupted", "error", err)
		return
	}

	for _, r := range results {
		if r.err != nil {
			MetricErrors.WithLabelValues(errorTypeSummary).Inc()
			e.log.Error("Failed to poll stake summary", "pool", r.target.Pool, "mint", r.target.Mint, "error", r.err)
			continue
		}
		e.record(r.target, r.summary)
	}
}

func (e *Exporter) poll(ctx context.Context, target Target) (*staking.StakeSummary, error) {
	attempt := 0
	return backoff.Retry(ctx, func() (*staking.StakeSummary, error) {
		if attempt > 0 {
			e.log.Warn("Failed to get stake summary, retrying", "pool", target.Pool, "mint", target.Mint, "attempt", attempt)
		}
		attempt++
		summary, err := e.cfg.Staking.Summary(ctx, target.Pool, target.Mint)
		if err != nil {
			// A missing stake entry will not appear by retrying.
			if errors.Is(err, stakepool.ErrAccountNotFound) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return summary, nil
	},
		backoff.WithBackOff(e.cfg.NewRetryBackOff()),
		backoff.WithMaxTries(e.cfg.MaxAttempts),
		backoff.WithMaxElapsedTime(e.cfg.Interval),
	)
}

func (e *Exporter) record(target Target, s *staking.StakeSummary) {
	pool, mint := target.Pool.String(), target.Mint.String()

	MetricTotalStakeSeconds.WithLabelValues(pool, mint).Set(s.TotalStakeSeconds.Seconds())
	MetricActiveStakeSeconds.WithLabelValues(pool, mint).Set(s.ActiveStakeSeconds.Seconds())
	MetricUnclaimedRewards.WithLabelValues(pool, mint).Set(float64(s.UnclaimedRewards))
	MetricClaimedRewards.WithLabelValues(pool, mint).Set(float64(s.ClaimedRewards))
	hasDistributor := 0.0
	if s.HasRewardDistributor {
		hasDistributor = 1
	}
	MetricHasRewardDistributor.WithLabelValues(pool, mint).Set(hasDistributor)

	e.log.Debug("Recorded stake summary",
		"pool", pool,
		"mint", mint,
		"totalStakeSeconds", s.TotalStakeSeconds,
		"activeStakeSeconds", s.ActiveStakeSeconds,
		"unclaimedRewards", s.UnclaimedRewards,
		"claimedRewards", s.ClaimedRewards,
	)
}
