package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/lawbot/billrag/internal/bill"
	"github.com/lawbot/billrag/internal/catalog"
	"github.com/lawbot/billrag/internal/config"
)

func main() {
	inputPath := flag.String("input", "", "final records JSON")
	outputPath := flag.String("output", "", "output CSV for the web listing")
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	_ = godotenv.Load()

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: catalog -input <file> -output <file.csv>\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	records, err := bill.ReadFile(*inputPath)
	if err != nil {
		slog.Error("read records failed", "error", err)
		os.Exit(1)
	}
	entries := catalog.FromRecords(records)
	if err := catalog.WriteCSV(*outputPath, entries); err != nil {
		slog.Error("write catalog failed", "error", err)
		os.Exit(1)
	}
	slog.Info("catalog written", "path", *outputPath, "entries", len(entries))
}
