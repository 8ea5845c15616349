package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/sheetforge/sheetforge/internal/common"
	"github.com/sheetforge/sheetforge/internal/export"
	"github.com/sheetforge/sheetforge/internal/llm"
	"github.com/sheetforge/sheetforge/internal/llm/openai"
	"github.com/sheetforge/sheetforge/internal/pdf"
	"github.com/sheetforge/sheetforge/internal/repository"
	"github.com/sheetforge/sheetforge/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.Open(cfg.Database, logger)
	if err != nil {
		logger.Error("open record store", "error", err)
		os.Exit(1)
	}
	records := repository.NewExtractionRecordRepository(db, logger)

	var extractor llm.StatementExtractor
	switch cfg.LLM.Backend {
	case "fixture":
		logger.Warn("using fixture extraction backend; no live calls will be made")
		extractor = llm.NewFixtureExtractor(logger)
	default:
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

	srv := server.New(
		pdf.NewTextExtractor(logger),
		extractor,
		records,
		export.NewService(logger),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	httpSrv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr, "backend", cfg.LLM.Backend)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
