package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bitbucket.org/mmdatafocus/recon_backend/config"
	"bitbucket.org/mmdatafocus/recon_backend/ingest"
	"bitbucket.org/mmdatafocus/recon_backend/models"
)

func main() {
	feedPath := flag.String("feed", "", "Path to the raw internal transaction JSONL feed.")
	bankPath := flag.String("bank", "", "Optional: path to the bank settlement JSONL feed.")
	flag.Parse()

	if strings.TrimSpace(*feedPath) == "" && strings.TrimSpace(*bankPath) == "" {
		fmt.Fprintln(os.Stderr, "at least one of -feed or -bank is required")
		os.Exit(1)
	}

	ctx := context.Background()
	logger := config.GetLogger()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	models.MigrateTable()

	if *feedPath != "" {
		// Archive the untouched feed before any parsing touches it.
		if !config.RawArchiveDisabled() {
			raw, err := os.Open(*feedPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "open feed: %v\n", err)
				os.Exit(1)
			}
			object, err := ingest.ArchiveRawLog(ctx, feedName(*feedPath), raw)
			raw.Close()
			if err != nil {
				fmt.Fprintf(os.Stderr, "archive raw feed: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Archived raw feed to %s\n", object)
		}

		f, err := os.Open(*feedPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open feed: %v\n", err)
			os.Exit(1)
		}
		staged, extractStats, err := ingest.ExtractTransactions(f, logger)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "extract feed: %v\n", err)
			os.Exit(1)
		}

		seedStats, err := ingest.SeedInternalLedger(ctx, db, logger, staged)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed internal ledger: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Internal feed: %d lines, %d extracted, %d orders, %d attempts (invalid=%d bad_amount=%d bad_status=%d)\n",
			extractStats.Lines, extractStats.Extracted, seedStats.Orders, seedStats.Attempts,
			seedStats.Invalid, seedStats.BadAmount, seedStats.BadStatus)
	}

	if *bankPath != "" {
		f, err := os.Open(*bankPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open bank feed: %v\n", err)
			os.Exit(1)
		}
		bankStats, err := ingest.SeedBankLedger(ctx, db, logger, f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed bank ledger: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Bank feed: %d lines, %d inserted (malformed=%d invalid=%d)\n",
			bankStats.Lines, bankStats.Inserted, bankStats.Malformed, bankStats.Invalid)
	}
}

func feedName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
