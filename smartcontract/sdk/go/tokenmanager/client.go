package tokenmanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
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

// FetchMintCounter fetches the MintCounter account of a mint.
func (c *Client) FetchMintCounter(ctx context.Context, mint solana.PublicKey) (*MintCounter, error) {
	pda, _, err := DeriveMintCounterPDA(c.programID, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive PDA: %w", err)
	}

	account, err := c.rpc.GetAccountInfo(ctx, pda)
	if err != nil {
		if errors.Is(err, solanarpc.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account data: %w", err)
	}
	if account == nil || account.Value == nil {
		return nil, ErrAccountNotFound
	}

	counter, err := DeserializeMintCounter(account.Value.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize mint counter: %w", err)
	}
	return counter, nil
}

// RemainingAccountsForKind returns the accounts the token manager program expects after
// its fixed instruction accounts for a token manager of the given kind.
func (c *Client) RemainingAccountsForKind(mint solana.PublicKey, kind Kind) ([]*solana.AccountMeta, error) {
	switch kind {
	case KindManaged, KindPermissioned:
		mintManager, _, err := DeriveMintManagerPDA(c.programID, mint)
		if err != nil {
			return nil, fmt.Errorf("failed to derive mint manager PDA: %w", err)
		}
		return []*solana.AccountMeta{
			{PublicKey: mintManager, IsSigner: false, IsWritable: true},
		}, nil
	case KindEdition:
		edition, _, err := DeriveEditionPDA(mint)
		if err != nil {
			return nil, fmt.Errorf("failed to derive edition PDA: %w", err)
		}
		return []*solana.AccountMeta{
			{PublicKey: edition, IsSigner: false, IsWritable: false},
			{PublicKey: MetadataProgramID, IsSigner: false, IsWritable: false},
		}, nil
	default:
		return []*solana.AccountMeta{}, nil
	}
}

// FindOrInitAssociatedTokenAccount returns the associated token account of owner for mint.
// When the account does not exist yet, an instruction creating it, funded by payer, is
// appended to tx. The owner may be a PDA.
func (c *Client) FindOrInitAssociatedTokenAccount(
	ctx context.Context,
	tx *solana.TransactionBuilder,
	payer solana.PublicKey,
	mint solana.PublicKey,
	owner solana.PublicKey,
) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive associated token account: %w", err)
	}

	account, err := c.rpc.GetAccountInfo(ctx, ata)
	if err != nil && !errors.Is(err, solanarpc.ErrNotFound) {
		return solana.PublicKey{}, fmt.Errorf("failed to get account data: %w", err)
	}
	if err == nil && account != nil && account.Value != nil {
		return ata, nil
	}

	c.log.Debug("Associated token account not found, appending create instruction", "ata", ata, "owner", owner, "mint", mint)
	tx.AddInstruction(associatedtokenaccount.NewCreateInstruction(payer, owner, mint).Build())
	return ata, nil
}
