package tokenmanager

import (
	"io"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/staking/smartcontract/sdk/go/anchor"
)

var MintCounterDiscriminator = anchor.AccountDiscriminator("MintCounter")

// MintCounter tracks how many token managers have been issued for a mint.
type MintCounter struct {
	Bump  uint8            // 1 byte
	Mint  solana.PublicKey // 32 bytes
	Count uint64           // 8 bytes LE
}

// Serialize writes the account including its discriminator.
func (m *MintCounter) Serialize(w io.Writer) error {
	if _, err := w.Write(MintCounterDiscriminator[:]); err != nil {
		return err
	}
	enc := bin.NewBorshEncoder(w)
	if err := enc.Encode(m.Bump); err != nil {
		return err
	}
	if err := enc.Encode(m.Mint); err != nil {
		return err
	}
	if err := enc.Encode(m.Count); err != nil {
		return err
	}
	return nil
}

// Deserialize reads the account body, without the discriminator.
func (m *MintCounter) Deserialize(data []byte) error {
	dec := bin.NewBorshDecoder(data)
	if err := dec.Decode(&m.Bump); err != nil {
		return err
	}
	if err := dec.Decode(&m.Mint); err != nil {
		return err
	}
	if err := dec.Decode(&m.Count); err != nil {
		return err
	}
	return nil
}

func DeserializeMintCounter(data []byte) (*MintCounter, error) {
	body, err := anchor.StripDiscriminator(data, MintCounterDiscriminator)
	if err != nil {
		return nil, err
	}
	var counter MintCounter
	if err := counter.Deserialize(body); err != nil {
		return nil, err
	}
	return &counter, nil
}
