// extract runs the pipeline on one local PDF and prints the structured
// statement as JSON. Useful for prompt and schema debugging without the
// server or the store.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/sheetforge/sheetforge/internal/common"
	"github.com/sheetforge/sheetforge/internal/llm"
	"github.com/sheetforge/sheetforge/internal/llm/openai"
	"github.com/sheetforge/sheetforge/internal/pdf"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: extract <statement.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var extractor llm.StatementExtractor
	if cfg.LLM.Backend == "fixture" {
		extractor = llm.NewFixtureExtractor(logger)
	} else {
		client, err := openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		if err != nil {
			logger.Error("configure extraction backend", "error", err)
			os.Exit(1)
		}
		extractor = client
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	text, err := pdf.NewTextExtractor(logger).ExtractText(ctx, path)
	if err != nil {
		logger.Error("extract text", "path", path, "error", err)
		os.Exit(1)
	}

	stmt, _, err := extractor.ExtractStatement(ctx, llm.ExtractRequest{
		Text:         text,
		FilenameHint: filepath.Base(path),
	})
	if err != nil {
		logger.Error("extract statement", "path", path, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stmt); err != nil {
		logger.Error("encode statement", "error", err)
		os.Exit(1)
	}
}
