package chain

import "errors"

// Sentinel kinds for chain submission failures.
var (
	// ErrSubmissionFailed is an explicit rejection by the ledger.
	// Not retried: the same submission would be rejected again.
	ErrSubmissionFailed = errors.New("chain submission failed")

	// ErrSubmissionTimeout means the ledger did not confirm in time.
	// Transient; the lifecycle layer retries it a bounded number of times.
	ErrSubmissionTimeout = errors.New("chain submission timed out")

	// ErrUnknownToken is an update or burn against a token the ledger
	// does not hold.
	ErrUnknownToken = errors.New("unknown token")
)
