package workflow

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/recon_backend/models"
	"bitbucket.org/mmdatafocus/recon_backend/utils"
)

// ReconciliationSummary is the immutable result value of one run. There is no
// shared accumulator anywhere; Summarize computes everything in one pass and
// hands the value back.
type ReconciliationSummary struct {
	TotalOrders        int
	TotalInternalSales decimal.Decimal
	TotalSettlements   int
	TotalBankSettled   decimal.Decimal
	OrphanCount        int
	OrphanTotal        decimal.Decimal
	// DiscrepancyGap = internal sales - bank settled. Positive means money
	// recorded as sold but not (yet) banked.
	DiscrepancyGap decimal.Decimal
}

// Summarize aggregates the deduplicated ledgers and the orphan set. Keyless
// rows on either side still count toward their own ledger's totals; they are
// only excluded from matching. Empty inputs yield zero-valued decimals, never
// a null-like state.
func Summarize(internal []models.PaymentAttempt, bank []models.SettlementRecord, orphans []models.SettlementRecord) ReconciliationSummary {
	orderIds := make(map[string]struct{}, len(internal))
	internalSales := decimal.Zero
	for _, pa := range internal {
		orderIds[pa.OrderId] = struct{}{}
		internalSales = internalSales.Add(utils.CentsToUnits(pa.AmountCents))
	}

	bankSettled := decimal.Zero
	for _, sr := range bank {
		bankSettled = bankSettled.Add(utils.CentsToUnits(sr.SettledAmountCents))
	}

	orphanTotal := decimal.Zero
	for _, sr := range orphans {
		orphanTotal = orphanTotal.Add(utils.CentsToUnits(sr.SettledAmountCents))
	}

	return ReconciliationSummary{
		TotalOrders:        len(orderIds),
		TotalInternalSales: internalSales,
		TotalSettlements:   len(bank),
		TotalBankSettled:   bankSettled,
		OrphanCount:        len(orphans),
		OrphanTotal:        orphanTotal,
		DiscrepancyGap:     internalSales.Sub(bankSettled),
	}
}
