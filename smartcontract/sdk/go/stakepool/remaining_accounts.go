package stakepool

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/tokenmanager"
)

// RemainingAccountsForStake returns the accounts a stake instruction of the given type must
// carry after its fixed accounts. Locked stakes go through the token manager program; when
// the token manager's token account for the mint does not exist yet, an instruction creating
// it is appended to tx. Other stake types need no extra accounts and leave tx untouched.
func (c *Client) RemainingAccountsForStake(
	ctx context.Context,
	tx *solana.TransactionBuilder,
	payer solana.PublicKey,
	mint solana.PublicKey,
	stakeType StakeType,
) ([]*solana.AccountMeta, error) {
	if stakeType != StakeTypeLocked {
		return []*solana.AccountMeta{}, nil
	}
	if c.tokenManager == nil {
		return nil, ErrNoTokenManager
	}

	tokenManagerProgramID := c.tokenManager.ProgramID()
	tokenManagerPDA, _, err := tokenmanager.DeriveTokenManagerPDA(tokenManagerProgramID, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive token manager PDA: %w", err)
	}
	mintCounterPDA, _, err := tokenmanager.DeriveMintCounterPDA(tokenManagerProgramID, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive mint counter PDA: %w", err)
	}

	tokenManagerTokenAccount, err := c.tokenManager.FindOrInitAssociatedTokenAccount(ctx, tx, payer, mint, tokenManagerPDA)
	if err != nil {
		return nil, fmt.Errorf("failed to find or init token manager token account: %w", err)
	}

	kindAccounts, err := c.tokenManager.RemainingAccountsForKind(mint, tokenmanager.KindEdition)
	if err != nil {
		return nil, fmt.Errorf("failed to get remaining accounts for kind: %w", err)
	}

	accounts := []*solana.AccountMeta{
		{PublicKey: tokenManagerProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: tokenManagerPDA, IsSigner: false, IsWritable: true},
		{PublicKey: tokenManagerTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: mintCounterPDA, IsSigner: false, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
	}
	return append(accounts, kindAccounts...), nil
}
