package leaderboard

import "errors"

// ErrUnknownCategory rejects a category query for a criterion the
// scoring model does not define.
var ErrUnknownCategory = errors.New("unknown category")
