package tokenmanager

import "github.com/gagliardetto/solana-go"

// Kind is the custody model a token manager applies to its mint.
type Kind uint8

const (
	KindManaged      Kind = 1
	KindUnmanaged    Kind = 2
	KindEdition      Kind = 3
	KindPermissioned Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindManaged:
		return "managed"
	case KindUnmanaged:
		return "unmanaged"
	case KindEdition:
		return "edition"
	case KindPermissioned:
		return "permissioned"
	default:
		return "unknown"
	}
}

// PDA seeds for the token manager program.
const (
	TokenManagerSeed = "token-manager"
	MintCounterSeed  = "mint-counter"
	MintManagerSeed  = "mint-manager"
)

// PDA seeds for the token metadata program.
const (
	MetadataSeed = "metadata"
	EditionSeed  = "edition"
)

// MetadataProgramID is the Metaplex token metadata program.
var MetadataProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
