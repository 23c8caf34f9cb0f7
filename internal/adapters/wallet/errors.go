package wallet

import "errors"

// ErrMetricsUnavailable marks a transient upstream failure. Callers may
// retry with backoff; the provider itself never retries.
var ErrMetricsUnavailable = errors.New("metrics unavailable")
