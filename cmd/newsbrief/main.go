package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"newsbrief/api"
	"newsbrief/config"
	"newsbrief/orchestrator"
)

func main() {
	serve := flag.Bool("serve", false, "Run the HTTP API server instead of a one-shot pipeline run")
	flag.Parse()

	// Log to stderr so JSON output to stdout stays clean
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if *serve {
		runServer(cfg)
		return
	}
	runOnce(cfg)
}

func runOnce(cfg *config.Config) {
	// Cancel the run on SIGINT/SIGTERM; completed articles are still
	// returned and published.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	batch, err := orchestrator.RunOnce(ctx, cfg)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	if batch.Summarized() == 0 {
		log.Printf("Warning: run completed with no summaries (%d articles)", len(batch.Articles))
		os.Exit(1)
	}
}

func runServer(cfg *config.Config) {
	r := api.NewRouter(cfg)
	log.Printf("Starting API server on %s", cfg.ListenAddr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/runs")
	log.Println("  GET  /api/runs/status")
	log.Println("  GET  /api/runs/latest")

	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
