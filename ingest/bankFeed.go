package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/recon_backend/config"
	"bitbucket.org/mmdatafocus/recon_backend/models"
	"bitbucket.org/mmdatafocus/recon_backend/utils"
)

// bankFeedRow is one line of the bank settlement JSONL export. Unlike the
// internal feed, bank amounts arrive already in integer minor units; anything
// else is the bank's bug, not ours to repair.
type bankFeedRow struct {
	SettlementId string    `json:"settlement_id" validate:"required"`
	PaymentId    string    `json:"payment_id"`
	ProviderRef  string    `json:"provider_ref"`
	Status       string    `json:"status" validate:"required"`
	AmountCents  int64     `json:"settled_amount_cents"`
	SettledAt    time.Time `json:"settled_at"`
}

type BankFeedStats struct {
	Lines     int `json:"lines"`
	Inserted  int `json:"inserted"`
	Malformed int `json:"malformed"`
	Invalid   int `json:"invalid"`
}

// SeedBankLedger loads the bank settlement feed into MySQL. Duplicate
// settlement_ids are stored as-is; the engine's deduplication owns picking the
// latest report.
func SeedBankLedger(ctx context.Context, db *gorm.DB, logger *logrus.Logger, r io.Reader) (BankFeedStats, error) {
	var stats BankFeedStats
	if db == nil {
		return stats, utils.ErrorDatabaseNotReady
	}

	var records []models.SettlementRecord
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		var row bankFeedRow
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			stats.Malformed++
			continue
		}
		if err := validate.Struct(row); err != nil {
			stats.Invalid++
			continue
		}

		record := models.SettlementRecord{
			SettlementId:       row.SettlementId,
			Status:             models.SettlementStatus(row.Status),
			SettledAmountCents: row.AmountCents,
			SettledAt:          row.SettledAt,
		}
		if row.PaymentId != "" {
			record.PaymentId = utils.StrPtr(row.PaymentId)
		}
		if row.ProviderRef != "" {
			record.ProviderRef = utils.StrPtr(row.ProviderRef)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return stats, err
	}

	if len(records) > 0 {
		if err := db.WithContext(ctx).CreateInBatches(records, 500).Error; err != nil {
			config.LogError(logger, "bankFeed.go", "SeedBankLedger", "Inserting settlement records", stats, err)
			return stats, err
		}
		stats.Inserted = len(records)
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"lines":     stats.Lines,
			"inserted":  stats.Inserted,
			"malformed": stats.Malformed,
			"invalid":   stats.Invalid,
		}).Info("seeded bank settlement ledger")
	}
	return stats, nil
}
