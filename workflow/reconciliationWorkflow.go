package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/recon_backend/config"
	"bitbucket.org/mmdatafocus/recon_backend/models"
	"bitbucket.org/mmdatafocus/recon_backend/utils"
)

// PrepareInternalLedger cleans and deduplicates the payment-attempt ledger.
func PrepareInternalLedger(attempts []models.PaymentAttempt, ordersById map[string]models.Order) ([]models.PaymentAttempt, CleanStats) {
	cleaned, stats := CleanPaymentAttempts(attempts, ordersById)
	return DedupPaymentAttempts(cleaned), stats
}

// PrepareBankLedger cleans and deduplicates the bank settlement ledger.
func PrepareBankLedger(records []models.SettlementRecord) ([]models.SettlementRecord, CleanStats) {
	cleaned, stats := CleanSettlementRecords(records)
	return DedupSettlementRecords(cleaned), stats
}

// ProcessReconciliationWorkflow runs one full reconciliation: load the three
// sets, prepare both ledgers, match, aggregate, persist the run row. The
// engine holds no state between runs. A load failure is fatal to the run and
// is returned to the caller; it is never reported as a zero summary.
func ProcessReconciliationWorkflow(ctx context.Context, db *gorm.DB, logger *logrus.Logger) (*models.ReconciliationRun, error) {
	if db == nil {
		return nil, utils.ErrorDatabaseNotReady
	}

	startedAt := time.Now().UTC()
	correlationId := correlationIdFromContextOrNew(ctx)

	var orders []models.Order
	if err := db.WithContext(ctx).Find(&orders).Error; err != nil {
		config.LogError(logger, "reconciliationWorkflow.go", "ProcessReconciliationWorkflow", "Querying Orders", nil, err)
		return nil, err
	}
	var attempts []models.PaymentAttempt
	if err := db.WithContext(ctx).Find(&attempts).Error; err != nil {
		config.LogError(logger, "reconciliationWorkflow.go", "ProcessReconciliationWorkflow", "Querying PaymentAttempts", nil, err)
		return nil, err
	}
	var settlements []models.SettlementRecord
	if err := db.WithContext(ctx).Find(&settlements).Error; err != nil {
		config.LogError(logger, "reconciliationWorkflow.go", "ProcessReconciliationWorkflow", "Querying SettlementRecords", nil, err)
		return nil, err
	}

	ordersById := OrdersById(orders)

	// The two ledgers are read-only and independent until matching, so their
	// prep runs concurrently. Matching starts only after both finish.
	var (
		internal      []models.PaymentAttempt
		bank          []models.SettlementRecord
		internalStats CleanStats
		bankStats     CleanStats
	)
	if config.SequentialLedgerPrep() {
		internal, internalStats = PrepareInternalLedger(attempts, ordersById)
		bank, bankStats = PrepareBankLedger(settlements)
	} else {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			internal, internalStats = PrepareInternalLedger(attempts, ordersById)
		}()
		go func() {
			defer wg.Done()
			bank, bankStats = PrepareBankLedger(settlements)
		}()
		wg.Wait()
	}

	match := MatchLedgers(internal, bank)
	summary := Summarize(internal, bank, match.Orphans)

	finishedAt := time.Now().UTC()
	run := &models.ReconciliationRun{
		CorrelationId:      correlationId,
		Status:             models.ReconciliationRunStatusCompleted,
		TotalOrders:        summary.TotalOrders,
		TotalInternalSales: summary.TotalInternalSales,
		TotalSettlements:   summary.TotalSettlements,
		TotalBankSettled:   summary.TotalBankSettled,
		OrphanCount:        summary.OrphanCount,
		OrphanTotal:        summary.OrphanTotal,
		DiscrepancyGap:     summary.DiscrepancyGap,
		StartedAt:          startedAt,
		FinishedAt:         &finishedAt,
	}
	if err := db.WithContext(ctx).Create(run).Error; err != nil {
		config.LogError(logger, "reconciliationWorkflow.go", "ProcessReconciliationWorkflow", "Persisting ReconciliationRun", run, err)
		return nil, err
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"correlation_id":       correlationId,
			"total_orders":         summary.TotalOrders,
			"total_internal_sales": summary.TotalInternalSales.String(),
			"total_bank_settled":   summary.TotalBankSettled.String(),
			"orphan_count":         summary.OrphanCount,
			"orphan_total":         summary.OrphanTotal.String(),
			"discrepancy_gap":      summary.DiscrepancyGap.String(),
			"internal_drops":       internalStats,
			"bank_drops":           bankStats,
			"duration_ms":          finishedAt.Sub(startedAt).Milliseconds(),
		}).Info("reconciliation run completed")
	}

	return run, nil
}

func correlationIdFromContextOrNew(ctx context.Context) string {
	if ctx != nil {
		if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
			return v
		}
	}
	return uuid.NewString()
}
