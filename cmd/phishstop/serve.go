package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/talhabaig007/PhishStop/internal/common"
	"github.com/talhabaig007/PhishStop/internal/content"
	"github.com/talhabaig007/PhishStop/internal/server"
	"github.com/talhabaig007/PhishStop/internal/stats"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the phishing analysis HTTP service",
		Long: `Start the HTTP service that backs the browser extension.

Endpoints:
  POST /analyze     score a URL (blacklist, heuristics, content analysis)
  GET  /statistics  aggregate detection counters
  POST /blacklist   report a phishing domain
  GET  /health      liveness probe

Every verdict is persisted to the analysis ledger and folded into the
statistics aggregate, so restarts pick up where the service left off.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :5000, or server.addr from config)")
	cmd.Flags().Float64("rate-limit", 0, "max requests per second (0 disables limiting)")
	cmd.Flags().Int("burst", 0, "rate limiter burst size (defaults to the per-second rate)")
	cmd.Flags().Bool("content-analysis", true, "fetch and score page content for borderline URLs")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("server.addr")
	}
	if addr == "" {
		addr = ":5000"
	}

	rateLimit, _ := cmd.Flags().GetFloat64("rate-limit")
	burst, _ := cmd.Flags().GetInt("burst")
	contentEnabled, _ := cmd.Flags().GetBool("content-analysis")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	matcher, err := loadMatcher(ctx, store)
	if err != nil {
		return err
	}

	aggregator := stats.New(stats.DefaultLedgerCapacity)
	snapshot, err := store.ReplayStats(ctx)
	if err != nil {
		slog.Warn("Failed to replay persisted statistics", "error", err)
	} else {
		aggregator.Seed(snapshot.TotalAnalyzed, snapshot.PhishingDetected, snapshot.AvgRiskScore)
	}

	var contentAnalyzer server.ContentAnalyzer
	if contentEnabled {
		contentAnalyzer = content.NewAnalyzer(0, slog.Default())
	}

	srv := server.New(server.Config{
		Store:          store,
		Matcher:        matcher,
		Content:        contentAnalyzer,
		Stats:          aggregator,
		Logger:         slog.Default(),
		RequestsPerSec: rateLimit,
		Burst:          burst,
	})

	httpServer := server.NewHTTPServer(addr, srv)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			common.LogError(shutdownErr, "Server shutdown failed", common.Fields{"addr": addr})
		}
	}()

	slog.Info("🛡️  PhishStop analysis service listening",
		"addr", addr,
		"blacklist_domains", matcher.Len(),
		"content_analysis", contentEnabled,
		"rate_limit", rateLimit)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	slog.Info("Server stopped")

	return nil
}
