package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docredact/internal/api"
	"github.com/dgallion1/docredact/internal/classify"
	"github.com/dgallion1/docredact/internal/config"
	"github.com/dgallion1/docredact/internal/notify"
	"github.com/dgallion1/docredact/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients. Without an Anthropic key the pipeline runs
	// pattern-only classification.
	var classifier *classify.Client
	if cfg.AnthropicAPIKey != "" {
		classifier = classify.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	} else {
		log.Warn("ANTHROPIC_API_KEY not set, running pattern-only classification")
	}
	notifier := notify.NewClient(cfg.CallbackURL, cfg.CallbackToken)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, classifier, notifier, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, classifier, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if classifier != nil {
			classifier.Close()
		}
		notifier.Close()
	}()

	log.Info("starting docredact", "port", cfg.Port, "workers", cfg.WorkerCount)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
