package tokenmanager

import (
	"github.com/gagliardetto/solana-go"
)

// DeriveTokenManagerPDA derives the PDA for the TokenManager account of a mint.
// Seeds: ["token-manager", mint]
func DeriveTokenManagerPDA(programID solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(TokenManagerSeed),
		mint[:],
	}
	return solana.FindProgramAddress(seeds, programID)
}

// DeriveMintCounterPDA derives the PDA for the MintCounter account of a mint.
// Seeds: ["mint-counter", mint]
func DeriveMintCounterPDA(programID solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(MintCounterSeed),
		mint[:],
	}
	return solana.FindProgramAddress(seeds, programID)
}

// DeriveMintManagerPDA derives the PDA for the MintManager account of a mint.
// Seeds: ["mint-manager", mint]
func DeriveMintManagerPDA(programID solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(MintManagerSeed),
		mint[:],
	}
	return solana.FindProgramAddress(seeds, programID)
}

// DeriveMetadataPDA derives the token metadata account of a mint.
// Seeds: ["metadata", metadataProgram, mint] under the token metadata program.
func DeriveMetadataPDA(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(MetadataSeed),
		MetadataProgramID[:],
		mint[:],
	}
	return solana.FindProgramAddress(seeds, MetadataProgramID)
}

// DeriveEditionPDA derives the master edition account of a mint.
// Seeds: ["metadata", metadataProgram, mint, "edition"] under the token metadata program.
func DeriveEditionPDA(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(MetadataSeed),
		MetadataProgramID[:],
		mint[:],
		[]byte(EditionSeed),
	}
	return solana.FindProgramAddress(seeds, MetadataProgramID)
}
