package ingest

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bitbucket.org/mmdatafocus/recon_backend/config"
	"bitbucket.org/mmdatafocus/recon_backend/models"
	"bitbucket.org/mmdatafocus/recon_backend/utils"
)

var validate = validator.New()

type SeedStats struct {
	Orders      int `json:"orders"`
	Attempts    int `json:"attempts"`
	Invalid     int `json:"invalid"`
	BadAmount   int `json:"bad_amount"`
	BadStatus   int `json:"bad_status"`
	TestFlagged int `json:"test_flagged"`
}

// SeedInternalLedger upserts orders and appends payment attempts from the
// extracted feed. Events arrive in feed order, which is chronological;
// attempt_no continues from whatever is already stored per order. Rows that
// fail validation or normalization are counted and skipped, the batch never
// aborts on one bad row.
func SeedInternalLedger(ctx context.Context, db *gorm.DB, logger *logrus.Logger, staged []StagedTransaction) (SeedStats, error) {
	var stats SeedStats
	if db == nil {
		return stats, utils.ErrorDatabaseNotReady
	}

	nextAttemptNo, err := loadNextAttemptNumbers(ctx, db)
	if err != nil {
		config.LogError(logger, "seeder.go", "SeedInternalLedger", "Loading attempt counters", nil, err)
		return stats, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seenOrders := map[string]bool{}
		for _, st := range staged {
			if err := validate.Struct(st); err != nil {
				stats.Invalid++
				continue
			}

			status, err := models.ParsePaymentAttemptStatus(st.Status)
			if err != nil {
				stats.BadStatus++
				continue
			}

			amountCents, err := NormalizeAmountCents(st.AmountRaw)
			if err != nil {
				stats.BadAmount++
				continue
			}

			isTest := IsTestFlagged(st.Flags)
			if isTest {
				stats.TestFlagged++
			}

			order := models.Order{
				OrderId:       st.OrderId,
				CustomerEmail: st.CustomerEmail,
				IsTest:        isTest,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "order_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"customer_email", "is_test"}),
			}).Create(&order).Error; err != nil {
				return err
			}
			if !seenOrders[st.OrderId] {
				seenOrders[st.OrderId] = true
				stats.Orders++
			}

			attempt := models.PaymentAttempt{
				OrderId:     st.OrderId,
				AttemptNo:   nextAttemptNo[st.OrderId] + 1,
				Provider:    st.Provider,
				Status:      status,
				AmountCents: amountCents,
				AttemptedAt: st.CreatedAt,
			}
			if st.PaymentId != "" {
				attempt.PaymentId = utils.StrPtr(st.PaymentId)
			}
			if st.ProviderRef != "" {
				attempt.ProviderRef = utils.StrPtr(st.ProviderRef)
			}
			if err := tx.Create(&attempt).Error; err != nil {
				return err
			}
			nextAttemptNo[st.OrderId]++
			stats.Attempts++
		}
		return nil
	})
	if err != nil {
		config.LogError(logger, "seeder.go", "SeedInternalLedger", "Seeding internal ledger", stats, err)
		return stats, err
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"orders":       stats.Orders,
			"attempts":     stats.Attempts,
			"invalid":      stats.Invalid,
			"bad_amount":   stats.BadAmount,
			"bad_status":   stats.BadStatus,
			"test_flagged": stats.TestFlagged,
		}).Info("seeded internal ledger")
	}
	return stats, nil
}

// loadNextAttemptNumbers reads the current max attempt_no per order so a
// re-ingested feed keeps the per-order sequence monotonic.
func loadNextAttemptNumbers(ctx context.Context, db *gorm.DB) (map[string]int, error) {
	type row struct {
		OrderId string
		MaxNo   int
	}
	var rows []row
	err := db.WithContext(ctx).
		Model(&models.PaymentAttempt{}).
		Select("order_id as order_id, MAX(attempt_no) as max_no").
		Group("order_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counters := make(map[string]int, len(rows))
	for _, r := range rows {
		counters[r.OrderId] = r.MaxNo
	}
	return counters, nil
}

// StagedOrderIds returns the distinct order ids in the feed, sorted.
func StagedOrderIds(staged []StagedTransaction) []string {
	seen := map[string]bool{}
	var ids []string
	for _, st := range staged {
		if st.OrderId == "" || seen[st.OrderId] {
			continue
		}
		seen[st.OrderId] = true
		ids = append(ids, st.OrderId)
	}
	sort.Strings(ids)
	return ids
}
