package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	ErrEmptyAddr      = errors.New("addr must not be empty")
	ErrBadQueueSize   = errors.New("refresh_queue_size must be positive")
	ErrBadWorkerCount = errors.New("refresh_worker_count must be positive")
	ErrBadDeadBand    = errors.New("update_dead_band must not be negative")
)
