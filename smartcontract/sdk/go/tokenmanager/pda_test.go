package tokenmanager_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/tokenmanager"
	"github.com/stretchr/testify/require"
)

func TestSDK_TokenManager_DeriveTokenManagerPDA(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	pda1, bump1, err := tokenmanager.DeriveTokenManagerPDA(programID, mint)
	require.NoError(t, err)
	require.False(t, pda1.IsZero(), "PDA should not be zero")

	// Same inputs produce same PDA (determinism)
	pda2, bump2, err := tokenmanager.DeriveTokenManagerPDA(programID, mint)
	require.NoError(t, err)
	require.Equal(t, pda1, pda2, "PDA should be deterministic")
	require.Equal(t, bump1, bump2, "Bump should be deterministic")

	expected, _, err := solana.FindProgramAddress([][]byte{[]byte("token-manager"), mint[:]}, programID)
	require.NoError(t, err)
	require.Equal(t, expected, pda1)
}

func TestSDK_TokenManager_DerivePDAs_DistinctPerSeed(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	tokenManager, _, err := tokenmanager.DeriveTokenManagerPDA(programID, mint)
	require.NoError(t, err)
	mintCounter, _, err := tokenmanager.DeriveMintCounterPDA(programID, mint)
	require.NoError(t, err)
	mintManager, _, err := tokenmanager.DeriveMintManagerPDA(programID, mint)
	require.NoError(t, err)

	require.NotEqual(t, tokenManager, mintCounter)
	require.NotEqual(t, tokenManager, mintManager)
	require.NotEqual(t, mintCounter, mintManager)
}

func TestSDK_TokenManager_DeriveEditionPDA(t *testing.T) {
	t.Parallel()

	mint := solana.NewWallet().PublicKey()

	edition, _, err := tokenmanager.DeriveEditionPDA(mint)
	require.NoError(t, err)
	metadata, _, err := tokenmanager.DeriveMetadataPDA(mint)
	require.NoError(t, err)
	require.NotEqual(t, edition, metadata)

	expected, _, err := solana.FindProgramAddress([][]byte{
		[]byte("metadata"),
		tokenmanager.MetadataProgramID[:],
		mint[:],
		[]byte("edition"),
	}, tokenmanager.MetadataProgramID)
	require.NoError(t, err)
	require.Equal(t, expected, edition)
}
