package config

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
)

const (
	EnvMainnetBeta = "mainnet-beta"
	EnvMainnet     = "mainnet"
	EnvDevnet      = "devnet"
	EnvLocalnet    = "localnet"

	// EnvVarRPCURL overrides the RPC URL of whichever environment is selected.
	EnvVarRPCURL = "STAKING_LEDGER_RPC_URL"
)

type NetworkConfig struct {
	Moniker                    string
	LedgerRPCURL               string
	StakePoolProgramID         solana.PublicKey
	RewardDistributorProgramID solana.PublicKey
	TokenManagerProgramID      solana.PublicKey
}

func NetworkConfigForEnv(env string) (*NetworkConfig, error) {
	var config *NetworkConfig
	switch env {
	case EnvMainnetBeta, EnvMainnet:
		config = &NetworkConfig{
			Moniker:      EnvMainnetBeta,
			LedgerRPCURL: MainnetSolanaRPCURL,
		}
	case EnvDevnet:
		config = &NetworkConfig{
			Moniker:      EnvDevnet,
			LedgerRPCURL: DevnetSolanaRPCURL,
		}
	case EnvLocalnet:
		config = &NetworkConfig{
			Moniker:      EnvLocalnet,
			LedgerRPCURL: LocalnetSolanaRPCURL,
		}
	default:
		// We intentionally do not include localnet in the error message.
		return nil, fmt.Errorf("invalid environment %q, must be one of: %s, %s", env, EnvMainnetBeta, EnvDevnet)
	}

	if err := config.parseProgramIDs(StakePoolProgramID, RewardDistributorProgramID, TokenManagerProgramID); err != nil {
		return nil, err
	}

	ledgerRPCURL := os.Getenv(EnvVarRPCURL)
	if ledgerRPCURL != "" {
		config.LedgerRPCURL = ledgerRPCURL
	}

	return config, nil
}

func (c *NetworkConfig) parseProgramIDs(stakePool, rewardDistributor, tokenManager string) error {
	var err error
	c.StakePoolProgramID, err = solana.PublicKeyFromBase58(stakePool)
	if err != nil {
		return fmt.Errorf("failed to parse stake pool program ID: %w", err)
	}
	c.RewardDistributorProgramID, err = solana.PublicKeyFromBase58(rewardDistributor)
	if err != nil {
		return fmt.Errorf("failed to parse reward distributor program ID: %w", err)
	}
	c.TokenManagerProgramID, err = solana.PublicKeyFromBase58(tokenManager)
	if err != nil {
		return fmt.Errorf("failed to parse token manager program ID: %w", err)
	}
	return nil
}
