package staking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/rewarddistributor"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/stakepool"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/staking"
	"github.com/stretchr/testify/require"
)

var now = time.Unix(1_700_000_600, 0)

func TestSDK_Staking_Summary_HappyPath(t *testing.T) {
	t.Parallel()

	pool := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	staker := solana.NewWallet().PublicKey()

	sp := &mockStakePoolClient{
		NowFunc: func() time.Time { return now },
		FetchStakeEntryFunc: func(_ context.Context, gotPool, gotMint solana.PublicKey) (*stakepool.StakeEntry, error) {
			require.Equal(t, pool, gotPool)
			require.Equal(t, mint, gotMint)
			return &stakepool.StakeEntry{
				Pool:              pool,
				OriginalMint:      mint,
				LastStaker:        staker,
				LastStakedAt:      now.Unix() - 600,
				TotalStakeSeconds: 10_000,
			}, nil
		},
	}
	rd := &mockRewardDistributorClient{
		FetchRewardDistributorFunc: func(_ context.Context, gotPool solana.PublicKey) (*rewarddistributor.RewardDistributor, error) {
			require.Equal(t, pool, gotPool)
			return &rewarddistributor.RewardDistributor{RewardsIssued: 250, MaxSupply: u64(1_000)}, nil
		},
	}

	client := staking.New(log, sp, rd)
	got, err := client.Summary(context.Background(), pool, mint)
	require.NoError(t, err)
	require.Equal(t, &staking.StakeSummary{
		Pool:                 pool,
		Mint:                 mint,
		Staker:               staker,
		TotalStakeSeconds:    10_000 * time.Second,
		ActiveStakeSeconds:   600 * time.Second,
		UnclaimedRewards:     750,
		ClaimedRewards:       250,
		HasRewardDistributor: true,
	}, got)
}

func TestSDK_Staking_Summary_NoRewardDistributor(t *testing.T) {
	t.Parallel()

	sp := &mockStakePoolClient{
		NowFunc: func() time.Time { return now },
		FetchStakeEntryFunc: func(context.Context, solana.PublicKey, solana.PublicKey) (*stakepool.StakeEntry, error) {
			return &stakepool.StakeEntry{TotalStakeSeconds: 30, LastStakedAt: now.Unix() - 5}, nil
		},
	}
	rd := &mockRewardDistributorClient{
		FetchRewardDistributorFunc: func(context.Context, solana.PublicKey) (*rewarddistributor.RewardDistributor, error) {
			return nil, rewarddistributor.ErrAccountNotFound
		},
	}

	client := staking.New(log, sp, rd)
	got, err := client.Summary(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	require.False(t, got.HasRewardDistributor)
	require.Zero(t, got.UnclaimedRewards)
	require.Zero(t, got.ClaimedRewards)
	require.Equal(t, 30*time.Second, got.TotalStakeSeconds)
	// no staker recorded
	require.Zero(t, got.ActiveStakeSeconds)
}

func TestSDK_Staking_Summary_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		entryErr       error
		distributorErr error
		wantErr        string
	}{
		{name: "stake entry missing", entryErr: stakepool.ErrAccountNotFound, wantErr: "failed to fetch stake entry"},
		{name: "distributor rpc failure", distributorErr: errors.New("rpc down"), wantErr: "failed to fetch reward distributor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sp := &mockStakePoolClient{
				NowFunc: func() time.Time { return now },
				FetchStakeEntryFunc: func(context.Context, solana.PublicKey, solana.PublicKey) (*stakepool.StakeEntry, error) {
					if tt.entryErr != nil {
						return nil, tt.entryErr
					}
					return &stakepool.StakeEntry{}, nil
				},
			}
			rd := &mockRewardDistributorClient{
				FetchRewardDistributorFunc: func(context.Context, solana.PublicKey) (*rewarddistributor.RewardDistributor, error) {
					if tt.distributorErr != nil {
						return nil, tt.distributorErr
					}
					return &rewarddistributor.RewardDistributor{}, nil
				},
			}

			client := staking.New(log, sp, rd)
			_, err := client.Summary(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
			require.ErrorContains(t, err, tt.wantErr)
			if tt.entryErr != nil {
				require.ErrorIs(t, err, tt.entryErr)
			}
		})
	}
}

func TestSDK_Staking_PoolSummary(t *testing.T) {
	t.Parallel()

	pool := solana.NewWallet().PublicKey()
	stakedMint := solana.NewWallet().PublicKey()
	idleMint := solana.NewWallet().PublicKey()

	sp := &mockStakePoolClient{
		NowFunc: func() time.Time { return now },
		FetchStakeEntriesForPoolFunc: func(_ context.Context, gotPool solana.PublicKey) ([]stakepool.KeyedStakeEntry, error) {
			require.Equal(t, pool, gotPool)
			return []stakepool.KeyedStakeEntry{
				{
					Address: solana.NewWallet().PublicKey(),
					StakeEntry: stakepool.StakeEntry{
						Pool:              pool,
						OriginalMint:      stakedMint,
						LastStaker:        solana.NewWallet().PublicKey(),
						LastStakedAt:      now.Unix() - 100,
						TotalStakeSeconds: 1_000,
					},
				},
				{
					Address: solana.NewWallet().PublicKey(),
					StakeEntry: stakepool.StakeEntry{
						Pool:              pool,
						OriginalMint:      idleMint,
						TotalStakeSeconds: 500,
					},
				},
			}, nil
		},
	}
	rd := &mockRewardDistributorClient{
		FetchRewardDistributorFunc: func(context.Context, solana.PublicKey) (*rewarddistributor.RewardDistributor, error) {
			return &rewarddistributor.RewardDistributor{RewardsIssued: 40}, nil
		},
	}

	client := staking.New(log, sp, rd)
	got, err := client.PoolSummary(context.Background(), pool)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	require.Equal(t, 1, got.Staked)
	require.Equal(t, 1_500*time.Second, got.TotalStakeSeconds)
	require.Equal(t, 100*time.Second, got.ActiveStakeSeconds)
	require.True(t, got.HasRewardDistributor)
	require.Equal(t, uint64(40), got.ClaimedRewards)
	require.Zero(t, got.UnclaimedRewards)
	require.Equal(t, stakedMint, got.Entries[0].Mint)
	require.Equal(t, idleMint, got.Entries[1].Mint)
}
