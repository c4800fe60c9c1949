package staking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/rewarddistributor"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/stakepool"
	"golang.org/x/sync/errgroup"
)

// StakePoolClient is the subset of the stake pool SDK used to build summaries.
type StakePoolClient interface {
	Now() time.Time
	FetchStakeEntry(ctx context.Context, pool solana.PublicKey, mint solana.PublicKey) (*stakepool.StakeEntry, error)
	FetchStakeEntriesForPool(ctx context.Context, pool solana.PublicKey) ([]stakepool.KeyedStakeEntry, error)
}

// RewardDistributorClient is the subset of the reward distributor SDK used to build summaries.
type RewardDistributorClient interface {
	FetchRewardDistributor(ctx context.Context, stakePool solana.PublicKey) (*rewarddistributor.RewardDistributor, error)
}

// StakeSummary is the derived view of a single staked mint.
type StakeSummary struct {
	Pool                 solana.PublicKey
	Mint                 solana.PublicKey
	Staker               solana.PublicKey
	TotalStakeSeconds    time.Duration
	ActiveStakeSeconds   time.Duration
	UnclaimedRewards     uint64
	ClaimedRewards       uint64
	HasRewardDistributor bool
}

// PoolSummary aggregates every stake entry of a pool.
type PoolSummary struct {
	Pool                 solana.PublicKey
	Entries              []StakeSummary
	Staked               int
	TotalStakeSeconds    time.Duration
	ActiveStakeSeconds   time.Duration
	UnclaimedRewards     uint64
	ClaimedRewards       uint64
	HasRewardDistributor bool
}

type Client struct {
	log               *slog.Logger
	stakePool         StakePoolClient
	rewardDistributor RewardDistributorClient
}

func New(log *slog.Logger, stakePool StakePoolClient, rewardDistributor RewardDistributorClient) *Client {
	return &Client{
		log:               log,
		stakePool:         stakePool,
		rewardDistributor: rewardDistributor,
	}
}

// Summary fetches the stake entry of a mint and the pool's reward distributor concurrently
// and derives the stake metrics from them.
func (c *Client) Summary(ctx context.Context, pool solana.PublicKey, mint solana.PublicKey) (*StakeSummary, error) {
	var (
		entry       *stakepool.StakeEntry
		distributor *rewarddistributor.RewardDistributor
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entry, err = c.stakePool.FetchStakeEntry(gctx, pool, mint)
		if err != nil {
			return fmt.Errorf("failed to fetch stake entry: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		distributor, err = c.fetchRewardDistributor(gctx, pool)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := summarize(entry, c.stakePool.Now(), distributor)
	summary.Pool = pool
	summary.Mint = mint
	return &summary, nil
}

// PoolSummary derives the stake metrics of every entry in a pool. Reward totals are
// pool-wide and are reported once on the aggregate.
func (c *Client) PoolSummary(ctx context.Context, pool solana.PublicKey) (*PoolSummary, error) {
	var (
		entries     []stakepool.KeyedStakeEntry
		distributor *rewarddistributor.RewardDistributor
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = c.stakePool.FetchStakeEntriesForPool(gctx, pool)
		if err != nil {
			return fmt.Errorf("failed to fetch stake entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		distributor, err = c.fetchRewardDistributor(gctx, pool)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := c.stakePool.Now()
	out := &PoolSummary{
		Pool:    pool,
		Entries: make([]StakeSummary, 0, len(entries)),
	}
	for i := range entries {
		s := summarize(&entries[i].StakeEntry, now, distributor)
		s.Pool = pool
		s.Mint = entries[i].OriginalMint
		out.Entries = append(out.Entries, s)

		if entries[i].IsStaked() {
			out.Staked++
		}
		out.TotalStakeSeconds += s.TotalStakeSeconds
		out.ActiveStakeSeconds += s.ActiveStakeSeconds
	}
	if distributor != nil {
		out.HasRewardDistributor = true
		out.UnclaimedRewards = rewarddistributor.UnclaimedRewards(distributor)
		out.ClaimedRewards = rewarddistributor.ClaimedRewards(distributor)
	}

	c.log.Debug("Built pool summary", "pool", pool, "entries", len(out.Entries), "staked", out.Staked)
	return out, nil
}

// fetchRewardDistributor returns nil without error when the pool has no distributor.
func (c *Client) fetchRewardDistributor(ctx context.Context, pool solana.PublicKey) (*rewarddistributor.RewardDistributor, error) {
	distributor, err := c.rewardDistributor.FetchRewardDistributor(ctx, pool)
	if err != nil {
		if errors.Is(err, rewarddistributor.ErrAccountNotFound) {
			c.log.Debug("No reward distributor for pool", "pool", pool)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch reward distributor: %w", err)
	}
	return distributor, nil
}

func summarize(entry *stakepool.StakeEntry, now time.Time, distributor *rewarddistributor.RewardDistributor) StakeSummary {
	s := StakeSummary{
		Staker:             entry.LastStaker,
		TotalStakeSeconds:  stakepool.TotalStakeSeconds(entry),
		ActiveStakeSeconds: stakepool.ActiveStakeSeconds(entry, now),
	}
	if distributor != nil {
		s.HasRewardDistributor = true
		s.UnclaimedRewards = rewarddistributor.UnclaimedRewards(distributor)
		s.ClaimedRewards = rewarddistributor.ClaimedRewards(distributor)
	}
	return s
}
