package rewarddistributor

import (
	"github.com/gagliardetto/solana-go"
)

// DeriveRewardDistributorPDA derives the PDA for the RewardDistributor of a stake pool.
// Seeds: ["reward-distributor", stakePool]
func DeriveRewardDistributorPDA(programID solana.PublicKey, stakePool solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(RewardDistributorSeed),
		stakePool[:],
	}
	return solana.FindProgramAddress(seeds, programID)
}

// DeriveRewardEntryPDA derives the PDA for the RewardEntry of a stake entry.
// Seeds: ["reward-entry", rewardDistributor, stakeEntry]
func DeriveRewardEntryPDA(programID solana.PublicKey, rewardDistributor solana.PublicKey, stakeEntry solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(RewardEntrySeed),
		rewardDistributor[:],
		stakeEntry[:],
	}
	return solana.FindProgramAddress(seeds, programID)
}
