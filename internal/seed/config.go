// Package seed generates synthetic wallets and drives the running
// service through its HTTP API. Used for load exercises and demo data.
package seed

import "time"

// Config holds configuration for a seed run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumWallets int           // Number of wallets to generate
	TopN       int           // Number of top entries to fetch afterwards
	Workers    int           // Number of concurrent submitters
	Timeout    time.Duration // HTTP request timeout
	Verbose    bool          // Enable verbose logging
}

// Stats accumulates run counters.
type Stats struct {
	WalletsGenerated int
	SyncsAccepted    int
	SyncsFailed      int
	Elapsed          time.Duration
}
