// dbcheck is a store smoke-check: it lists persisted extraction records and,
// given an id argument, performs a point lookup.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sheetforge/sheetforge/internal/common"
	"github.com/sheetforge/sheetforge/internal/repository"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := common.LoadConfig()
	db, err := repository.Open(cfg.Database, logger)
	if err != nil {
		logger.Error("open record store", "error", err)
		os.Exit(1)
	}
	records := repository.NewExtractionRecordRepository(db, logger)

	ctx := context.Background()

	if len(os.Args) > 1 {
		id, err := strconv.ParseUint(os.Args[1], 10, 64)
		if err != nil {
			logger.Error("id must be an integer", "arg", os.Args[1])
			os.Exit(2)
		}
		rec, err := records.GetByID(ctx, uint(id))
		if errors.Is(err, common.ErrNotFound) {
			fmt.Printf("record %d NOT FOUND\n", id)
			os.Exit(1)
		}
		if err != nil {
			logger.Error("get record", "id", id, "error", err)
			os.Exit(1)
		}
		fmt.Printf("found record: id=%d filename=%s items=%d accuracy=%.3f\n",
			rec.ID, rec.Filename, rec.LineItemCount, rec.Accuracy)
	}

	recs, err := records.List(ctx)
	if err != nil {
		logger.Error("list records", "error", err)
		os.Exit(1)
	}
	fmt.Println("all records:")
	for _, r := range recs {
		fmt.Printf("id=%d filename=%s created=%s items=%d accuracy=%.3f %s %s\n",
			r.ID, r.Filename, r.Timestamp.Format("2006-01-02 15:04:05"),
			r.LineItemCount, r.Accuracy, r.Currency, r.Units)
	}
}
