package rewarddistributor

// Kind selects where issued rewards come from.
type Kind uint8

const (
	// KindMint mints rewards from a mint the distributor is authority of.
	KindMint Kind = 1
	// KindTreasury transfers rewards out of a pre-funded token account.
	KindTreasury Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindMint:
		return "mint"
	case KindTreasury:
		return "treasury"
	default:
		return "unknown"
	}
}

// PDA seeds for the reward distributor program
const (
	RewardDistributorSeed = "reward-distributor"
	RewardEntrySeed       = "reward-entry"
)
