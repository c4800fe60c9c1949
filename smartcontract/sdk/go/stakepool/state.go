package stakepool

import (
	"io"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/anchor"
)

var (
	StakePoolDiscriminator  = anchor.AccountDiscriminator("StakePool")
	StakeEntryDiscriminator = anchor.AccountDiscriminator("StakeEntry")
)

type StakePool struct {
	Bump                  uint8              // 1 byte
	Identifier            uint64             // 8 bytes LE
	Authority             solana.PublicKey   // 32 bytes
	RequiresCreators      []solana.PublicKey // 4-byte count + N*32 bytes
	RequiresCollections   []solana.PublicKey // 4-byte count + N*32 bytes
	RequiresAuthorization bool               // 1 byte
	OverlayText           string             // 4-byte length prefix + UTF-8 bytes
	ImageURI              string             // 4-byte length prefix + UTF-8 bytes
	ResetOnStake          bool               // 1 byte
	TotalStaked           uint32             // 4 bytes LE
}

func (p *StakePool) Serialize(w io.Writer) error {
	if _, err := w.Write(StakePoolDiscriminator[:]); err != nil {
		return err
	}
	enc := bin.NewBorshEncoder(w)
	if err := enc.Encode(p.Bump); err != nil {
		return err
	}
	if err := enc.Encode(p.Identifier); err != nil {
		return err
	}
	if err := enc.Encode(p.Authority); err != nil {
		return err
	}
	if err := enc.Encode(p.RequiresCreators); err != nil {
		return err
	}
	if err := enc.Encode(p.RequiresCollections); err != nil {
		return err
	}
	if err := enc.Encode(p.RequiresAuthorization); err != nil {
		return err
	}
	if err := enc.Encode(p.OverlayText); err != nil {
		return err
	}
	if err := enc.Encode(p.ImageURI); err != nil {
		return err
	}
	if err := enc.Encode(p.ResetOnStake); err != nil {
		return err
	}
	if err := enc.Encode(p.TotalStaked); err != nil {
		return err
	}
	return nil
}

// Deserialize reads the account body, without the discriminator.
func (p *StakePool) Deserialize(data []byte) error {
	dec := bin.NewBorshDecoder(data)
	if err := dec.Decode(&p.Bump); err != nil {
		return err
	}
	if err := dec.Decode(&p.Identifier); err != nil {
		return err
	}
	if err := dec.Decode(&p.Authority); err != nil {
		return err
	}
	if err := dec.Decode(&p.RequiresCreators); err != nil {
		return err
	}
	if err := dec.Decode(&p.RequiresCollections); err != nil {
		return err
	}
	if err := dec.Decode(&p.RequiresAuthorization); err != nil {
		return err
	}
	if err := dec.Decode(&p.OverlayText); err != nil {
		return err
	}
	if err := dec.Decode(&p.ImageURI); err != nil {
		return err
	}
	if err := dec.Decode(&p.ResetOnStake); err != nil {
		return err
	}
	if err := dec.Decode(&p.TotalStaked); err != nil {
		return err
	}
	return nil
}

type StakeEntry struct {
	Bump                uint8             // 1 byte
	Pool                solana.PublicKey  // 32 bytes
	OriginalMint        solana.PublicKey  // 32 bytes
	OriginalMintClaimed bool              // 1 byte
	LastStaker          solana.PublicKey  // 32 bytes, zero when unstaked
	LastStakedAt        int64             // 8 bytes LE, unix seconds
	TotalStakeSeconds   int64             // 8 bytes LE
	StakeMintClaimed    bool              // 1 byte
	Kind                uint8             // 1 byte
	StakeMint           *solana.PublicKey // 1-byte option tag + 32 bytes
}

func (e *StakeEntry) Serialize(w io.Writer) error {
	if _, err := w.Write(StakeEntryDiscriminator[:]); err != nil {
		return err
	}
	enc := bin.NewBorshEncoder(w)
	if err := enc.Encode(e.Bump); err != nil {
		return err
	}
	if err := enc.Encode(e.Pool); err != nil {
		return err
	}
	if err := enc.Encode(e.OriginalMint); err != nil {
		return err
	}
	if err := enc.Encode(e.OriginalMintClaimed); err != nil {
		return err
	}
	if err := enc.Encode(e.LastStaker); err != nil {
		return err
	}
	if err := enc.Encode(e.LastStakedAt); err != nil {
		return err
	}
	if err := enc.Encode(e.TotalStakeSeconds); err != nil {
		return err
	}
	if err := enc.Encode(e.StakeMintClaimed); err != nil {
		return err
	}
	if err := enc.Encode(e.Kind); err != nil {
		return err
	}
	if e.StakeMint == nil {
		return enc.Encode(uint8(0))
	}
	if err := enc.Encode(uint8(1)); err != nil {
		return err
	}
	return enc.Encode(*e.StakeMint)
}

// Deserialize reads the account body, without the discriminator.
func (e *StakeEntry) Deserialize(data []byte) error {
	dec := bin.NewBorshDecoder(data)
	if err := dec.Decode(&e.Bump); err != nil {
		return err
	}
	if err := dec.Decode(&e.Pool); err != nil {
		return err
	}
	if err := dec.Decode(&e.OriginalMint); err != nil {
		return err
	}
	if err := dec.Decode(&e.OriginalMintClaimed); err != nil {
		return err
	}
	if err := dec.Decode(&e.LastStaker); err != nil {
		return err
	}
	if err := dec.Decode(&e.LastStakedAt); err != nil {
		return err
	}
	if err := dec.Decode(&e.TotalStakeSeconds); err != nil {
		return err
	}
	if err := dec.Decode(&e.StakeMintClaimed); err != nil {
		return err
	}
	if err := dec.Decode(&e.Kind); err != nil {
		return err
	}
	var hasStakeMint uint8
	if err := dec.Decode(&hasStakeMint); err != nil {
		return err
	}
	if hasStakeMint == 1 {
		var stakeMint solana.PublicKey
		if err := dec.Decode(&stakeMint); err != nil {
			return err
		}
		e.StakeMint = &stakeMint
	}
	return nil
}

// IsStaked reports whether a staker is currently recorded on the entry.
func (e *StakeEntry) IsStaked() bool {
	return !e.LastStaker.IsZero()
}
