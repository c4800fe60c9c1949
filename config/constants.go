package config

const (
	// Program IDs. The staking programs are deployed at the same address on every cluster.
	StakePoolProgramID         = "stkBL96RZkjY5ine4TvPihGqW8UHJfch2cokjAPzV8i"
	RewardDistributorProgramID = "rwdNPNPS6zNAtgTnBMWRa5j5fgU6i2uuy5Ay8RBNVsL"
	TokenManagerProgramID      = "mgr99QFMYByTqGPWmNqunV7vBLmWWXdSrHUfV8Jf3JM"

	// Mainnet constants.
	MainnetSolanaRPCURL = "https://api.mainnet-beta.solana.com"

	// Devnet constants.
	DevnetSolanaRPCURL = "https://api.devnet.solana.com"

	// Localnet constants.
	LocalnetSolanaRPCURL = "http://127.0.0.1:8899"
)
