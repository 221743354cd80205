package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/lawbot/billrag/internal/config"
	"github.com/lawbot/billrag/internal/preprocess"
)

func main() {
	inputDir := flag.String("input", "", "directory of scraped bill JSON files")
	mergedPath := flag.String("merged", "", "output path for the merged raw objects")
	outputPath := flag.String("output", "", "output path for the filtered records")
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	_ = godotenv.Load()

	if *inputDir == "" || *mergedPath == "" || *outputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: preprocess -input <dir> -merged <file> -output <file> [-config <file>]\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	allow := preprocess.DefaultAllow()
	if len(cfg.Preprocess.Committees) > 0 || len(cfg.Preprocess.Sessions) > 0 {
		committees, sessions := cfg.Preprocess.Committees, cfg.Preprocess.Sessions
		if len(committees) == 0 {
			committees = preprocess.DefaultCommittees
		}
		if len(sessions) == 0 {
			sessions = preprocess.DefaultSessions
		}
		allow = preprocess.NewAllow(committees, sessions)
	}

	stats, err := preprocess.Run(*inputDir, *mergedPath, *outputPath, allow)
	if err != nil {
		slog.Error("preprocess failed", "error", err)
		os.Exit(1)
	}
	slog.Info("preprocess done", "merged", stats.Merged, "kept", stats.Filtered, "output", *outputPath)
}
