package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reflekt-labs/reflekt/internal/adapters/http/api"
	"github.com/reflekt-labs/reflekt/internal/app"
	"github.com/reflekt-labs/reflekt/internal/config"
	"github.com/reflekt-labs/reflekt/internal/domain/badge"
	"github.com/reflekt-labs/reflekt/internal/domain/model"
	"github.com/reflekt-labs/reflekt/internal/domain/scoring"
	"github.com/reflekt-labs/reflekt/internal/domain/tier"
	"github.com/reflekt-labs/reflekt/pkg/logger"
	"github.com/reflekt-labs/reflekt/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	classifier, err := tier.NewClassifier(cfg.TierBins)
	if err != nil {
		os.Stderr.WriteString("invalid tier configuration: " + err.Error() + "\n")
		return
	}

	weights := scoring.Weights{}
	for name, w := range cfg.Weights {
		weights[model.Criterion(name)] = w
	}
	engine := scoring.NewWeightedEngine(
		scoring.WithWeights(weights),
		scoring.WithVolumeBuckets(cfg.VolumeBuckets),
		scoring.WithTokenDiversityThreshold(cfg.TokenDiversityThreshold),
		scoring.WithWalletAgeThreshold(cfg.AgeThresholdDays),
		scoring.WithBalanceThreshold(cfg.BalanceThreshold),
	)

	svc := app.New(
		app.WithLogger(log),
		app.WithScoringEngine(engine),
		app.WithClassifier(classifier),
		app.WithBadgeEvaluator(badge.NewEvaluator()),
		app.WithWorkerCount(cfg.RefreshWorkerCount),
		app.WithQueueSize(cfg.RefreshQueueSize),
		app.WithDeadBand(cfg.UpdateDeadBand),
		app.WithSubmitTimeout(time.Duration(cfg.SubmitTimeoutMS)*time.Millisecond),
		app.WithSubmitRetries(cfg.SubmitRetries),
		app.WithRetryBackoff(time.Duration(cfg.RetryBackoffMS)*time.Millisecond),
		app.WithMaxLeaderboardLimit(cfg.MaxLeaderboardLimit),
		app.WithRisingWindow(time.Duration(cfg.RisingWindowMinutes)*time.Minute),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop(context.Background())

	// HTTP mux and routes.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	apiServer := api.NewServer(svc, cfg.MaxLeaderboardLimit)
	apiServer.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
