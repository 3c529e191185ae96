// Command srsbuild fetches the configured block-list feeds, classifies
// them into sing-box source rulesets, and writes one JSON artifact per
// group plus a summary index.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinmou/singbox-rules/internal/rules/common/clock"
	"github.com/cinmou/singbox-rules/internal/rules/common/log"
	"github.com/cinmou/singbox-rules/internal/rules/config"
	"github.com/cinmou/singbox-rules/internal/rules/gateways/fetch"
	"github.com/cinmou/singbox-rules/internal/rules/gateways/sink"
	"github.com/cinmou/singbox-rules/internal/rules/repos/feedcache"
	"github.com/cinmou/singbox-rules/internal/rules/repos/sources"
	"github.com/cinmou/singbox-rules/internal/rules/services/builder"
)

const (
	version = "1.0.0"
	appName = "srsbuild"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":     version,
		"env":         cfg.Env,
		"log_level":   cfg.LogLevel,
		"sources_url": cfg.SourcesURL,
		"output_dir":  cfg.OutputDir,
		"concurrency": cfg.Concurrency,
	}, "Starting singbox-rules builder")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(map[string]any{"error": err}, "Build failed")
	}

	log.Info(nil, "Build finished")
}

// run wires the collaborators together and executes one build.
func run(ctx context.Context, cfg *config.AppConfig) error {
	logger := log.GetLogger()

	client := fetch.NewClient(time.Duration(cfg.Timeout)*time.Second, cfg.UserAgent, logger)
	fetcher, err := fetch.NewMemoized(client, cfg.MemoSize, logger)
	if err != nil {
		return fmt.Errorf("building fetcher: %w", err)
	}

	var fallback builder.FallbackStore
	if cfg.FeedCacheDB != "" {
		store, err := feedcache.Open(cfg.FeedCacheDB)
		if err != nil {
			return fmt.Errorf("opening feed cache: %w", err)
		}
		defer store.Close()
		fallback = store
	}

	groups, err := sources.Resolve(ctx, fetcher, cfg.SourcesURL, cfg.SourcesFile, logger)
	if err != nil {
		return err
	}

	b := builder.New(builder.Options{
		Fetcher:     fetcher,
		Fallback:    fallback,
		Sink:        sink.New(cfg.OutputDir, logger),
		Clock:       clock.RealClock{},
		Logger:      logger,
		Concurrency: cfg.Concurrency,
	})

	summary, err := b.Run(ctx, groups)
	if err != nil {
		return err
	}

	log.Info(map[string]any{"groups": len(summary.Sets), "generated_at": summary.GeneratedAt}, "Summary written")
	return nil
}
