package stakepool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/tokenmanager"
)

var (
	ErrAccountNotFound = errors.New("account not found")

	// ErrNoTokenManager is returned when locked stake accounts are requested from a client
	// that was built without a token manager client.
	ErrNoTokenManager = errors.New("no token manager client configured")
)

// TokenManagerClient is the subset of the token manager SDK used to build locked stake accounts.
type TokenManagerClient interface {
	ProgramID() solana.PublicKey
	RemainingAccountsForKind(mint solana.PublicKey, kind tokenmanager.Kind) ([]*solana.AccountMeta, error)
	FindOrInitAssociatedTokenAccount(ctx context.Context, tx *solana.TransactionBuilder, payer, mint, owner solana.PublicKey) (solana.PublicKey, error)
}

type Client struct {
	log          *slog.Logger
	rpc          RPCClient
	programID    solana.PublicKey
	clock        clockwork.Clock
	tokenManager TokenManagerClient
}

type Option func(*Client)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

func WithTokenManager(tm TokenManagerClient) Option {
	return func(c *Client) {
		c.tokenManager = tm
	}
}

func New(log *slog.Logger, rpc RPCClient, programID solana.PublicKey, opts ...Option) *Client {
	c := &Client{
		log:       log,
		rpc:       rpc,
		programID: programID,
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// Now returns the current time according to the client's clock.
func (c *Client) Now() time.Time {
	return c.clock.Now()
}

// FetchStakePool fetches the StakePool account with the given identifier.
func (c *Client) FetchStakePool(ctx context.Context, identifier uint64) (*StakePool, error) {
	pda, _, err := DeriveStakePoolPDA(c.programID, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to derive PDA: %w", err)
	}
	return c.FetchStakePoolByAddress(ctx, pda)
}

// FetchStakePoolByAddress fetches a StakePool account by its address.
func (c *Client) FetchStakePoolByAddress(ctx context.Context, pool solana.PublicKey) (*StakePool, error) {
	data, err := c.getAccountData(ctx, pool)
	if err != nil {
		return nil, err
	}

	stakePool, err := DeserializeStakePool(data)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize stake pool: %w", err)
	}
	return stakePool, nil
}

// FetchStakeEntry fetches the StakeEntry of a mint in a pool.
func (c *Client) FetchStakeEntry(ctx context.Context, pool solana.PublicKey, mint solana.PublicKey) (*StakeEntry, error) {
	pda, _, err := DeriveStakeEntryPDA(c.programID, pool, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive PDA: %w", err)
	}

	data, err := c.getAccountData(ctx, pda)
	if err != nil {
		return nil, err
	}

	entry, err := DeserializeStakeEntry(data)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize stake entry: %w", err)
	}
	return entry, nil
}

// KeyedStakeEntry is a StakeEntry together with its account address.
type KeyedStakeEntry struct {
	Address solana.PublicKey
	StakeEntry
}

// FetchStakeEntriesForPool fetches every StakeEntry account belonging to a pool.
func (c *Client) FetchStakeEntriesForPool(ctx context.Context, pool solana.PublicKey) ([]KeyedStakeEntry, error) {
	opts := &solanarpc.GetProgramAccountsOpts{
		Filters: []solanarpc.RPCFilter{
			{
				Memcmp: &solanarpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  solana.Base58(StakeEntryDiscriminator[:]),
				},
			},
			{
				Memcmp: &solanarpc.RPCFilterMemcmp{
					Offset: StakeEntryPoolOffset,
					Bytes:  solana.Base58(pool[:]),
				},
			},
		},
	}

	accounts, err := c.rpc.GetProgramAccountsWithOpts(ctx, c.programID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get program accounts: %w", err)
	}

	entries := make([]KeyedStakeEntry, 0, len(accounts))
	for _, acct := range accounts {
		if acct == nil || acct.Account == nil {
			continue
		}
		entry, err := DeserializeStakeEntry(acct.Account.Data.GetBinary())
		if err != nil {
			c.log.Warn("failed to deserialize stake entry account", "pubkey", acct.Pubkey, "error", err)
			continue
		}
		entries = append(entries, KeyedStakeEntry{Address: acct.Pubkey, StakeEntry: *entry})
	}
	return entries, nil
}

// GetTotalStakeSeconds returns the cumulative staked time of a mint in a pool.
func (c *Client) GetTotalStakeSeconds(ctx context.Context, pool solana.PublicKey, mint solana.PublicKey) (time.Duration, error) {
	entry, err := c.FetchStakeEntry(ctx, pool, mint)
	if err != nil {
		return 0, err
	}
	return TotalStakeSeconds(entry), nil
}

// GetActiveStakeSeconds returns how long a mint has been staked by its current staker.
func (c *Client) GetActiveStakeSeconds(ctx context.Context, pool solana.PublicKey, mint solana.PublicKey) (time.Duration, error) {
	entry, err := c.FetchStakeEntry(ctx, pool, mint)
	if err != nil {
		return 0, err
	}
	return ActiveStakeSeconds(entry, c.clock.Now()), nil
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
