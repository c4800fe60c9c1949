package rewarddistributor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

type Client struct {
	log       *slog.Logger
	rpc       RPCClient
	programID solana.PublicKey
}

func New(log *slog.Logger, rpc RPCClient, programID solana.PublicKey) *Client {
	return &Client{
		log:       log,
		rpc:       rpc,
		programID: programID,
	}
}

func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// FetchRewardDistributor fetches the RewardDistributor account of a stake pool.
func (c *Client) FetchRewardDistributor(ctx context.Context, stakePool solana.PublicKey) (*RewardDistributor, error) {
	pda, _, err := DeriveRewardDistributorPDA(c.programID, stakePool)
	if err != nil {
		return nil, fmt.Errorf("failed to derive PDA: %w", err)
	}

	data, err := c.getAccountData(ctx, pda)
	if err != nil {
		return nil, err
	}

	distributor, err := DeserializeRewardDistributor(data)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize reward distributor: %w", err)
	}
	return distributor, nil
}

// FetchRewardEntry fetches the RewardEntry of a stake entry under a distributor.
func (c *Client) FetchRewardEntry(ctx context.Context, rewardDistributor solana.PublicKey, stakeEntry solana.PublicKey) (*RewardEntry, error) {
	pda, _, err := DeriveRewardEntryPDA(c.programID, rewardDistributor, stakeEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to derive PDA: %w", err)
	}

	data, err := c.getAccountData(ctx, pda)
	if err != nil {
		return nil, err
	}

	entry, err := DeserializeRewardEntry(data)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize reward entry: %w", err)
	}
	return entry, nil
}

// GetUnclaimedRewards returns the rewards a stake pool's distributor can still issue.
func (c *Client) GetUnclaimedRewards(ctx context.Context, stakePool solana.PublicKey) (uint64, error) {
	distributor, err := c.FetchRewardDistributor(ctx, stakePool)
	if err != nil {
		return 0, err
	}
	return UnclaimedRewards(distributor), nil
}

// GetClaimedRewards returns the rewards a stake pool's distributor has issued so far.
func (c *Client) GetClaimedRewards(ctx context.Context, stakePool solana.PublicKey) (uint64, error) {
	distributor, err := c.FetchRewardDistributor(ctx, stakePool)
	if err != nil {
		return 0, err
	}
	return ClaimedRewards(distributor), nil
}

func (c *Client) getAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	info, err := c.rpc.GetAccountInfo(ctx, account)
	if err != nil {
		if errors.Is(err, solanarpc.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account data: %w", err)
	}
	if info == nil || info.Value == nil {
		return nil, ErrAccountNotFound
	}
	return info.Value.Data.GetBinary(), nil
}
