package anchor

import (
	"crypto/sha256"
	"fmt"
)

// DiscriminatorLength is the size of the prefix Anchor writes at the start of every account.
const DiscriminatorLength = 8

type Discriminator [DiscriminatorLength]byte

// AccountDiscriminator returns sha256("account:<name>")[:8].
func AccountDiscriminator(name string) Discriminator {
	sum := sha256.Sum256([]byte("account:" + name))
	var d Discriminator
	copy(d[:], sum[:DiscriminatorLength])
	return d
}

// StripDiscriminator validates the leading discriminator of an account and returns the
// remaining bytes.
func StripDiscriminator(data []byte, want Discriminator) ([]byte, error) {
	if len(data) < DiscriminatorLength {
		return nil, fmt.Errorf("account data too short: %d bytes", len(data))
	}
	var got Discriminator
	copy(got[:], data[:DiscriminatorLength])
	if got != want {
		return nil, fmt.Errorf("unexpected account discriminator: got %x, want %x", got[:], want[:])
	}
	return data[DiscriminatorLength:], nil
}
