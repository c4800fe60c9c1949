package rewarddistributor

// UnclaimedRewards returns the rewards still available under the distributor's max supply.
// Distributors without a max supply report zero. The result saturates at zero when more
// than the max supply has been issued.
func UnclaimedRewards(d *RewardDistributor) uint64 {
	if d.MaxSupply == nil {
		return 0
	}
	if d.RewardsIssued >= *d.MaxSupply {
		return 0
	}
	return *d.MaxSupply - d.RewardsIssued
}

// ClaimedRewards returns the cumulative rewards issued by the distributor.
func ClaimedRewards(d *RewardDistributor) uint64 {
	return d.RewardsIssued
}
