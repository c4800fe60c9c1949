package rewarddistributor

import (
	"fmt"
	"io"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/anchor"
	"github.com/near/borsh-go"
)

var (
	RewardDistributorDiscriminator = anchor.AccountDiscriminator("RewardDistributor")
	RewardEntryDiscriminator       = anchor.AccountDiscriminator("RewardEntry")
)

type RewardDistributor struct {
	Bump                  uint8            // 1 byte
	StakePool             solana.PublicKey // 32 bytes
	Kind                  Kind             // 1 byte
	Authority             solana.PublicKey // 32 bytes
	RewardMint            solana.PublicKey // 32 bytes
	RewardAmount          uint64           // 8 bytes LE
	RewardDurationSeconds uint64           // 8 bytes LE
	RewardsIssued         uint64           // 8 bytes LE
	MaxSupply             *uint64          // 1-byte option tag + 8 bytes LE
	DefaultMultiplier     uint64           // 8 bytes LE
	MultiplierDecimals    uint8            // 1 byte
}

func (d *RewardDistributor) Serialize(w io.Writer) error {
	if _, err := w.Write(RewardDistributorDiscriminator[:]); err != nil {
		return err
	}
	enc := bin.NewBorshEncoder(w)
	if err := enc.Encode(d.Bump); err != nil {
		return err
	}
	if err := enc.Encode(d.StakePool); err != nil {
		return err
	}
	if err := enc.Encode(uint8(d.Kind)); err != nil {
		return err
	}
	if err := enc.Encode(d.Authority); err != nil {
		return err
	}
	if err := enc.Encode(d.RewardMint); err != nil {
		return err
	}
	if err := enc.Encode(d.RewardAmount); err != nil {
		return err
	}
	if err := enc.Encode(d.RewardDurationSeconds); err != nil {
		return err
	}
	if err := enc.Encode(d.RewardsIssued); err != nil {
		return err
	}
	if d.MaxSupply == nil {
		if err := enc.Encode(uint8(0)); err != nil {
			return err
		}
	} else {
		if err := enc.Encode(uint8(1)); err != nil {
			return err
		}
		if err := enc.Encode(*d.MaxSupply); err != nil {
			return err
		}
	}
	if err := enc.Encode(d.DefaultMultiplier); err != nil {
		return err
	}
	if err := enc.Encode(d.MultiplierDecimals); err != nil {
		return err
	}
	return nil
}

// Deserialize reads the account body, without the discriminator.
func (d *RewardDistributor) Deserialize(data []byte) error {
	dec := bin.NewBorshDecoder(data)
	if err := dec.Decode(&d.Bump); err != nil {
		return err
	}
	if err := dec.Decode(&d.StakePool); err != nil {
		return err
	}
	var kind uint8
	if err := dec.Decode(&kind); err != nil {
		return err
	}
	d.Kind = Kind(kind)
	if err := dec.Decode(&d.Authority); err != nil {
		return err
	}
	if err := dec.Decode(&d.RewardMint); err != nil {
		return err
	}
	if err := dec.Decode(&d.RewardAmount); err != nil {
		return err
	}
	if err := dec.Decode(&d.RewardDurationSeconds); err != nil {
		return err
	}
	if err := dec.Decode(&d.RewardsIssued); err != nil {
		return err
	}
	var hasMaxSupply uint8
	if err := dec.Decode(&hasMaxSupply); err != nil {
		return err
	}
	if hasMaxSupply == 1 {
		var maxSupply uint64
		if err := dec.Decode(&maxSupply); err != nil {
			return err
		}
		d.MaxSupply = &maxSupply
	}
	if err := dec.Decode(&d.DefaultMultiplier); err != nil {
		return err
	}
	if err := dec.Decode(&d.MultiplierDecimals); err != nil {
		return err
	}
	return nil
}

// RewardEntry tracks the rewards a single stake entry has received from a distributor.
type RewardEntry struct {
	Bump                  uint8
	StakeEntry            solana.PublicKey
	RewardDistributor     solana.PublicKey
	RewardSecondsReceived uint64
	Multiplier            uint64
}

func (e *RewardEntry) Serialize(w io.Writer) error {
	data, err := borsh.Serialize(*e)
	if err != nil {
		return err
	}
	if _, err := w.Write(RewardEntryDiscriminator[:]); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func DeserializeRewardDistributor(data []byte) (*RewardDistributor, error) {
	body, err := anchor.StripDiscriminator(data, RewardDistributorDiscriminator)
	if err != nil {
		return nil, err
	}

	var distributor RewardDistributor
	if err := distributor.Deserialize(body); err != nil {
		return nil, fmt.Errorf("failed to deserialize reward distributor: %w", err)
	}
	return &distributor, nil
}

func DeserializeRewardEntry(data []byte) (*RewardEntry, error) {
	body, err := anchor.StripDiscriminator(data, RewardEntryDiscriminator)
	if err != nil {
		return nil, err
	}

	var entry RewardEntry
	if err := borsh.Deserialize(&entry, body); err != nil {
		return nil, fmt.Errorf("failed to deserialize reward entry: %w", err)
	}
	return &entry, nil
}
