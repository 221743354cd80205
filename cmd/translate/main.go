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
	"github.com/lawbot/billrag/internal/config"
	"github.com/lawbot/billrag/internal/translate"
)

func main() {
	inputPath := flag.String("input", "", "filtered records JSON")
	outputPath := flag.String("output", "", "output path for translated records")
	batchSize := flag.Int("batch", 0, "terms per translation request (default from config)")
	apiKey := flag.String("api-key", "", "Gemini API key (or set GEMINI_API_KEY env)")
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	_ = godotenv.Load()

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: translate -input <file> -output <file> [-batch <n>] [-api-key <key>]\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	// 번역은 항상 Gemini 를 쓴다
	if *apiKey != "" {
		cfg.Gemini.APIKey = *apiKey
	}
	if cfg.Gemini.APIKey == "" {
		slog.Error("gemini api key required", "error", config.ErrMissingAPIKey)
		os.Exit(1)
	}

	size := cfg.Translate.BatchSize
	if *batchSize > 0 {
		size = *batchSize
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := ai.NewClient(ctx, ai.GeminiOptions(cfg))
	if err != nil {
		slog.Error("create AI client failed", "error", err)
		os.Exit(1)
	}
	slog.Info("translator ready", "model", cfg.Gemini.TranslateModel)

	if err := translate.Run(ctx, *inputPath, *outputPath, client, size); err != nil {
		slog.Error("translate failed", "error", err)
		os.Exit(1)
	}
}
