package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidMetrics marks an incomplete or inconsistent metrics snapshot.
// Caller error; never retried.
var ErrInvalidMetrics = errors.New("invalid metrics")

// NewInvalidMetrics wraps ErrInvalidMetrics with the failing field detail.
func NewInvalidMetrics(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidMetrics, detail)
}
