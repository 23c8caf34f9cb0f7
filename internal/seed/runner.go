package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reflekt-labs/reflekt/pkg/logger"
)

// syncRequest mirrors the POST /credentials/sync body.
type syncRequest struct {
	Address string `json:"address"`
}

// Run generates wallets, submits a credential sync for each, and then
// fetches the resulting leaderboard.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("seed")
	start := time.Now()

	addresses := generateAddresses(cfg.NumWallets)
	log.Info(ctx, "generated wallets", logger.Int("count", len(addresses)))

	client := &http.Client{Timeout: cfg.Timeout}
	var accepted, failed atomic.Int64

	jobs := make(chan string)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for addr := range jobs {
				if err := submitSync(ctx, client, cfg.BaseURL, addr); err != nil {
					failed.Add(1)
					if cfg.Verbose {
						log.Warn(ctx, "sync failed",
							logger.String("address", addr),
							logger.Error(err),
						)
					}
					continue
				}
				accepted.Add(1)
			}
		}()
	}

	for _, addr := range addresses {
		select {
		case jobs <- addr:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, fmt.Errorf("seed cancelled: %w", ctx.Err())
		}
	}
	close(jobs)
	wg.Wait()

	if err := fetchLeaderboard(ctx, client, cfg, log); err != nil {
		log.Warn(ctx, "leaderboard fetch failed", logger.Error(err))
	}

	stats := &Stats{
		WalletsGenerated: len(addresses),
		SyncsAccepted:    int(accepted.Load()),
		SyncsFailed:      int(failed.Load()),
		Elapsed:          time.Since(start),
	}
	log.Info(ctx, "seed run complete",
		logger.Int("accepted", stats.SyncsAccepted),
		logger.Int("failed", stats.SyncsFailed),
		logger.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}

func submitSync(ctx context.Context, client *http.Client, baseURL, address string) error {
	body, err := json.Marshal(syncRequest{Address: address})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/credentials/sync", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("submit sync: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func fetchLeaderboard(ctx context.Context, client *http.Client, cfg *Config, log logger.Logger) error {
	url := fmt.Sprintf("%s/leaderboard?limit=%d", cfg.BaseURL, cfg.TopN)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	var entries []struct {
		Rank    int    `json:"rank"`
		Address string `json:"address"`
		Score   int    `json:"score"`
		Tier    string `json:"tier"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return fmt.Errorf("decode leaderboard: %w", err)
	}
	for _, e := range entries {
		log.Info(ctx, "leaderboard entry",
			logger.Int("rank", e.Rank),
			logger.String("address", e.Address),
			logger.Int("score", e.Score),
			logger.String("tier", e.Tier),
		)
	}
	return nil
}
