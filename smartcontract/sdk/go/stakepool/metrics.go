package stakepool

import (
	"time"
)

// TotalStakeSeconds returns the cumulative staked time recorded on the entry.
func TotalStakeSeconds(entry *StakeEntry) time.Duration {
	return time.Duration(entry.TotalStakeSeconds) * time.Second
}

// ActiveStakeSeconds returns how long the entry has been staked by its current staker.
// A LastStakedAt of zero is read as now. Entries with no staker, or a LastStakedAt
// ahead of now, report zero.
func ActiveStakeSeconds(entry *StakeEntry, now time.Time) time.Duration {
	if !entry.IsStaked() {
		return 0
	}
	nowUnix := now.Unix()
	lastStakedAt := entry.LastStakedAt
	if lastStakedAt == 0 {
		lastStakedAt = nowUnix
	}
	if lastStakedAt > nowUnix {
		return 0
	}
	return time.Duration(nowUnix-lastStakedAt) * time.Second
}
