package repository

import "errors"

// Store error sentinels.
var (
	// ErrTransferRejected marks an attempt to rebind an issued token id
	// to a different owner. Credentials are soulbound; ownership is
	// fixed at mint and the store refuses to record anything else.
	ErrTransferRejected = errors.New("credential transfer rejected")

	// ErrTokenReused marks an attempt to mint with a token id the store
	// has already seen. Token ids are issued once, ever.
	ErrTokenReused = errors.New("token id reused")
)
