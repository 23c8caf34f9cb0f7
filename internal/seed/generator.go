package seed

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// generateAddresses fabricates n distinct checksummed wallet addresses.
// Each address is derived from a fresh uuid, so repeated runs produce
// disjoint wallet populations.
func generateAddresses(n int) []string {
	out := make([]string, n)
	for i := range out {
		sum := sha256.Sum256([]byte(uuid.NewString()))
		out[i] = common.BytesToAddress(sum[:20]).Hex()
	}
	return out
}
