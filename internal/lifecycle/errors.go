package lifecycle

import (
	"errors"

	"github.com/reflekt-labs/reflekt/internal/adapters/repository"
)

// Lifecycle error sentinels.
var (
	// ErrAlreadyCredentialed rejects a credential request that arrives
	// while another request for the same address is in flight.
	ErrAlreadyCredentialed = errors.New("credential operation already in flight")

	// ErrNoActiveCredential rejects a burn for an address without a
	// live credential.
	ErrNoActiveCredential = errors.New("no active credential")

	// ErrTransferRejected surfaces the store's soulbound enforcement.
	ErrTransferRejected = repository.ErrTransferRejected
)
