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
	"github.com/lawbot/billrag/internal/answer"
	"github.com/lawbot/billrag/internal/catalog"
	"github.com/lawbot/billrag/internal/config"
	"github.com/lawbot/billrag/internal/rag"
	"github.com/lawbot/billrag/internal/service"
	"github.com/lawbot/billrag/internal/web"
)

func main() {
	csvPath := flag.String("csv", "", "catalog CSV for the bill listing")
	storeDir := flag.String("store", "", "vector store directory")
	addr := flag.String("addr", "", "listen address (default from config)")
	apiKey := flag.String("api-key", "", "API key for the configured providers")
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	_ = godotenv.Load()

	if *csvPath == "" || *storeDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: web -csv <file> -store <dir> [-addr <addr>]\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	cfg.SetAPIKey(*apiKey)
	if err := cfg.RequireAPIKeys(true, true); err != nil {
		slog.Error("missing credentials", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
	}

	// 우아한 종료
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *csvPath, *storeDir); err != nil {
		slog.Error("web server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, csvPath, storeDir string) error {
	entries, err := catalog.ReadCSV(csvPath)
	if err != nil {
		return err
	}
	cat := catalog.New(entries)
	slog.Info("catalog loaded", "entries", cat.Len())

	providers, err := ai.NewProviders(ctx, cfg, true, true)
	if err != nil {
		return fmt.Errorf("create AI providers: %w", err)
	}
	slog.Info("AI providers initialized", "llm", cfg.LLM.Provider, "embedding", cfg.Embedding.Provider)

	store, err := rag.NewStore(storeDir, cfg.RAG.Collection, cfg.RAG.Compress, providers.Embed)
	if err != nil {
		return err
	}

	svc := service.New(rag.NewRetriever(store), answer.NewGenerator(providers.Chat), cfg.RAG.TopK)
	srv, err := web.New(cat, svc, store.Count)
	if err != nil {
		return err
	}
	return srv.Run(ctx, cfg.Web.Addr)
}
