package stakepool

import (
	"fmt"

	"github.com/malbeclabs/staking/smartcontract/sdk/go/anchor"
)

// DeserializeStakePool deserializes account data into a StakePool.
// It validates the Anchor discriminator before decoding.
func DeserializeStakePool(data []byte) (*StakePool, error) {
	body, err := anchor.StripDiscriminator(data, StakePoolDiscriminator)
	if err != nil {
		return nil, err
	}

	var pool StakePool
	if err := pool.Deserialize(body); err != nil {
		return nil, fmt.Errorf("failed to deserialize stake pool: %w", err)
	}
	return &pool, nil
}

// DeserializeStakeEntry deserializes account data into a StakeEntry.
// It validates the Anchor discriminator before decoding.
func DeserializeStakeEntry(data []byte) (*StakeEntry, error) {
	body, err := anchor.StripDiscriminator(data, StakeEntryDiscriminator)
	if err != nil {
		return nil, err
	}

	var entry StakeEntry
	if err := entry.Deserialize(body); err != nil {
		return nil, fmt.Errorf("failed to deserialize stake entry: %w", err)
	}
	return &entry, nil
}
