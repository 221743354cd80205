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
	"github.com/lawbot/billrag/internal/bill"
	"github.com/lawbot/billrag/internal/config"
	"github.com/lawbot/billrag/internal/rag"
	"github.com/lawbot/billrag/internal/service"
)

func main() {
	storeDir := flag.String("store", "", "vector store directory")
	question := flag.String("query", "", "question to ask")
	k := flag.Int("k", 2, "number of documents to retrieve")
	retrieveOnly := flag.Bool("retrieve-only", false, "print retrieved documents with scores and skip generation")
	apiKey := flag.String("api-key", "", "API key for the configured providers")
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	_ = godotenv.Load()

	if *storeDir == "" || *question == "" {
		fmt.Fprintf(os.Stderr, "Usage: query -store <dir> -query <text> [-k <n>] [-retrieve-only]\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	cfg.SetAPIKey(*apiKey)
	if err := cfg.RequireAPIKeys(!*retrieveOnly, true); err != nil {
		slog.Error("missing credentials", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := ai.NewProviders(ctx, cfg, !*retrieveOnly, true)
	if err != nil {
		slog.Error("create AI providers failed", "error", err)
		os.Exit(1)
	}
	store, err := rag.NewStore(*storeDir, cfg.RAG.Collection, cfg.RAG.Compress, providers.Embed)
	if err != nil {
		slog.Error("open vector store failed", "error", err)
		os.Exit(1)
	}

	if *retrieveOnly {
		err = printHits(ctx, store, *question, *k)
	} else {
		svc := service.New(rag.NewRetriever(store), answer.NewGenerator(providers.Chat), *k)
		err = ask(ctx, svc, *question)
	}
	if err != nil {
		slog.Error("query failed", "error", err)
		os.Exit(1)
	}
}

func printHits(ctx context.Context, store *rag.Store, question string, k int) error {
	results, err := store.Query(ctx, question, k)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No relevant context found.")
		return nil
	}
	for i, r := range results {
		fmt.Printf("Document %d (score %.4f)\n", i+1, r.Similarity)
		fmt.Printf("  content: %s\n", r.Content)
		printRecord(r.Record)
		fmt.Println()
	}
	return nil
}

func ask(ctx context.Context, svc *service.Service, question string) error {
	res, err := svc.Ask(ctx, question)
	if err != nil {
		return err
	}

	switch res.Status {
	case service.StatusNoContext:
		fmt.Println("No relevant context found.")
		return nil
	case service.StatusGenerationFailed:
		fmt.Println("Context:", res.Context)
		printRecord(res.Source)
		return fmt.Errorf("generate answer: %s", res.Status)
	}

	fmt.Println("Context:", res.Context)
	fmt.Println("Metadata:")
	printRecord(res.Source)
	fmt.Println()
	fmt.Println("Generated Response:")
	fmt.Println(res.Answer)
	return nil
}

func printRecord(r bill.Record) {
	for _, kv := range [][2]string{
		{"title", r.Title},
		{"committee", r.Committee},
		{"session", r.Session},
		{"date", r.Date},
		{"enactment", r.Enactment},
		{"amendment", r.Amendment},
		{"disposal", r.Disposal},
		{"terminology", r.Terminology},
		{"terminology_en", r.TerminologyEN},
	} {
		fmt.Printf("  %s: %s\n", kv[0], kv[1])
	}
}
