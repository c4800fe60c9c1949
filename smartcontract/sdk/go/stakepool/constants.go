package stakepool

// StakeType selects how a staked token is held while staked.
type StakeType uint8

const (
	// StakeTypeTransfer moves the token into a stake-pool owned account.
	StakeTypeTransfer StakeType = 1
	// StakeTypeLocked leaves the token in the staker's wallet, frozen by a token manager.
	StakeTypeLocked StakeType = 2
)

func (s StakeType) String() string {
	switch s {
	case StakeTypeTransfer:
		return "transfer"
	case StakeTypeLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// PDA seeds for the stake pool program.
const (
	StakePoolSeed  = "stake-pool"
	StakeEntrySeed = "stake-entry"
)

// Account layout offsets, including the 8-byte discriminator.
const (
	StakeEntryPoolOffset = 8 + 1
)
