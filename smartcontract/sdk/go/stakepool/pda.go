package stakepool

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// DeriveStakePoolPDA derives the PDA for a StakePool account.
// Seeds: ["stake-pool", identifier (u64 LE)]
func DeriveStakePoolPDA(programID solana.PublicKey, identifier uint64) (solana.PublicKey, uint8, error) {
	identifierBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(identifierBytes, identifier)

	seeds := [][]byte{
		[]byte(StakePoolSeed),
		identifierBytes,
	}
	return solana.FindProgramAddress(seeds, programID)
}

// DeriveStakeEntryPDA derives the PDA for the StakeEntry of a mint in a pool.
// Seeds: ["stake-entry", pool, mint]
func DeriveStakeEntryPDA(programID solana.PublicKey, pool solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(StakeEntrySeed),
		pool[:],
		mint[:],
	}
	return solana.FindProgramAddress(seeds, programID)
}
