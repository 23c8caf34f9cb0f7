package tier

import (
	"errors"
	"fmt"
)

// ErrInvalidTierConfig marks a bin ladder that does not cover the score
// range exactly. Fatal at startup.
var ErrInvalidTierConfig = errors.New("invalid tier config")

// NewInvalidTierConfig wraps ErrInvalidTierConfig with the failing detail.
func NewInvalidTierConfig(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidTierConfig, detail)
}
