package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lawbot/billrag/internal/ai"
	"github.com/lawbot/billrag/internal/bill"
	"github.com/lawbot/billrag/internal/config"
	"github.com/lawbot/billrag/internal/rag"
)

func main() {
	inputPath := flag.String("input", "", "translated records JSON")
	storeDir := flag.String("store", "", "vector store directory")
	apiKey := flag.String("api-key", "", "embedding provider API key (or set GEMINI_API_KEY / OPENAI_API_KEY env)")
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	_ = godotenv.Load()

	if *inputPath == "" || *storeDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: build-index -input <file> -store <dir> [-api-key <key>]\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	cfg.SetAPIKey(*apiKey)
	if err := cfg.RequireAPIKeys(false, true); err != nil {
		slog.Error("missing credentials", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := build(ctx, cfg, *inputPath, *storeDir); err != nil {
		slog.Error("build index failed", "error", err)
		os.Exit(1)
	}
}

func build(ctx context.Context, cfg *config.Config, inputPath, storeDir string) error {
	records, err := bill.ReadFile(inputPath)
	if err != nil {
		return err
	}

	providers, err := ai.NewProviders(ctx, cfg, false, true)
	if err != nil {
		return fmt.Errorf("create embedding provider: %w", err)
	}

	if err := os.MkdirAll(storeDir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	store, err := rag.NewStore(storeDir, cfg.RAG.Collection, cfg.RAG.Compress, providers.Embed)
	if err != nil {
		return err
	}

	slog.Info("embedding records", "records", len(records), "provider", cfg.Embedding.Provider)
	added, err := store.AddRecords(ctx, records)
	if err != nil {
		return err
	}
	slog.Info("vector DB build complete", "added", added, "total_vectors", store.Count())
	return nil
}
