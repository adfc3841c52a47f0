package workflow

import (
	"testing"

	"bitbucket.org/mmdatafocus/recon_backend/models"
	"bitbucket.org/mmdatafocus/recon_backend/utils"
)

// runEngine drives the pure engine stages the way the workflow does, without
// a database: clean -> dedup -> match -> aggregate.
func runEngine(orders []models.Order, attempts []models.PaymentAttempt, settlements []models.SettlementRecord) ReconciliationSummary {
	internal, _ := PrepareInternalLedger(attempts, OrdersById(orders))
	bank, _ := PrepareBankLedger(settlements)
	match := MatchLedgers(internal, bank)
	return Summarize(internal, bank, match.Orphans)
}

func TestScenario_RetriedAttemptSettlesOnce(t *testing.T) {
	// One order, two SUCCESS attempts; only the latest attempt is
	// authoritative, so the order counts once and nothing doubles.
	orders := []models.Order{{ID: 1, OrderId: "O1", IsTest: false}}
	attempts := []models.PaymentAttempt{
		{ID: 1, OrderId: "O1", PaymentId: utils.StrPtr("P1"), AttemptNo: 1, Status: models.PaymentAttemptStatusSuccess, AmountCents: 1000, AttemptedAt: mustTime("2026-08-01T10:00:00Z")},
		{ID: 2, OrderId: "O1", PaymentId: utils.StrPtr("P2"), AttemptNo: 2, Status: models.PaymentAttemptStatusSuccess, AmountCents: 1000, AttemptedAt: mustTime("2026-08-01T10:05:00Z")},
	}
	settlements := []models.SettlementRecord{
		{ID: 1, SettlementId: "S1", PaymentId: utils.StrPtr("P2"), Status: models.SettlementStatusSettled, SettledAmountCents: 1000, SettledAt: mustTime("2026-08-02T00:00:00Z")},
	}

	sum := runEngine(orders, attempts, settlements)
	if sum.TotalOrders != 1 {
		t.Fatalf("total_orders=%d, want 1", sum.TotalOrders)
	}
	if sum.TotalInternalSales.String() != "10" {
		t.Fatalf("total_internal_sales=%s, want 10", sum.TotalInternalSales)
	}
	if sum.TotalBankSettled.String() != "10" {
		t.Fatalf("total_bank_settled=%s, want 10", sum.TotalBankSettled)
	}
	if sum.OrphanCount != 0 {
		t.Fatalf("orphan_count=%d, want 0", sum.OrphanCount)
	}
	if !sum.DiscrepancyGap.IsZero() {
		t.Fatalf("discrepancy_gap=%s, want 0", sum.DiscrepancyGap)
	}
}

func TestScenario_EmptyBankLedgerSurfacesFullGap(t *testing.T) {
	orders := []models.Order{{ID: 1, OrderId: "O1"}}
	attempts := []models.PaymentAttempt{
		{ID: 1, OrderId: "O1", PaymentId: utils.StrPtr("P1"), AttemptNo: 1, Status: models.PaymentAttemptStatusSuccess, AmountCents: 10000, AttemptedAt: mustTime("2026-08-01T10:00:00Z")},
	}

	sum := runEngine(orders, attempts, nil)
	if sum.OrphanCount != 0 {
		t.Fatalf("orphan_count=%d, want 0", sum.OrphanCount)
	}
	if !sum.TotalBankSettled.IsZero() {
		t.Fatalf("total_bank_settled=%s, want 0", sum.TotalBankSettled)
	}
	if sum.DiscrepancyGap.String() != "100" {
		t.Fatalf("discrepancy_gap=%s, want 100 (full internal total unreconciled)", sum.DiscrepancyGap)
	}
}

func TestScenario_UnmatchedSettlementIsOrphanedInFull(t *testing.T) {
	settlements := []models.SettlementRecord{
		{ID: 1, SettlementId: "S1", PaymentId: utils.StrPtr("P-UNKNOWN"), Status: models.SettlementStatusSettled, SettledAmountCents: 5000, SettledAt: mustTime("2026-08-02T00:00:00Z")},
	}

	sum := runEngine(nil, nil, settlements)
	if sum.OrphanCount != 1 {
		t.Fatalf("orphan_count=%d, want 1", sum.OrphanCount)
	}
	if sum.OrphanTotal.String() != "50" {
		t.Fatalf("orphan_total=%s, want 50", sum.OrphanTotal)
	}
	if sum.DiscrepancyGap.String() != "-50" {
		t.Fatalf("discrepancy_gap=%s, want -50", sum.DiscrepancyGap)
	}
}

func TestSumConservation_NoBinaryFloatDrift(t *testing.T) {
	// 3 x 333 cents = 9.99 exactly. float64 would land on 9.990000000000002.
	orders := []models.Order{
		{ID: 1, OrderId: "O1"}, {ID: 2, OrderId: "O2"}, {ID: 3, OrderId: "O3"},
	}
	var attempts []models.PaymentAttempt
	for i, oid := range []string{"O1", "O2", "O3"} {
		attempts = append(attempts, models.PaymentAttempt{
			ID: i + 1, OrderId: oid, PaymentId: utils.StrPtr(oid + "-P"), AttemptNo: 1,
			Status: models.PaymentAttemptStatusSuccess, AmountCents: 333,
			AttemptedAt: mustTime("2026-08-01T10:00:00Z"),
		})
	}

	sum := runEngine(orders, attempts, nil)
	if sum.TotalInternalSales.String() != "9.99" {
		t.Fatalf("total_internal_sales=%s, want exactly 9.99", sum.TotalInternalSales)
	}
	if sum.DiscrepancyGap.String() != "9.99" {
		t.Fatalf("discrepancy_gap=%s, want exactly 9.99", sum.DiscrepancyGap)
	}
}

func TestSummarize_EmptyInputsYieldZeroValues(t *testing.T) {
	sum := Summarize(nil, nil, nil)
	if sum.TotalOrders != 0 || sum.TotalSettlements != 0 || sum.OrphanCount != 0 {
		t.Fatalf("counts must be zero: %+v", sum)
	}
	// Zero values, not a null-like state: the decimals must be usable.
	if sum.TotalInternalSales.String() != "0" || sum.TotalBankSettled.String() != "0" ||
		sum.OrphanTotal.String() != "0" || sum.DiscrepancyGap.String() != "0" {
		t.Fatalf("sums must be decimal zero: %+v", sum)
	}
}

func TestScenario_KeylessAttemptStillCountsInOwnLedger(t *testing.T) {
	orders := []models.Order{{ID: 1, OrderId: "O1"}}
	attempts := []models.PaymentAttempt{
		{ID: 1, OrderId: "O1", AttemptNo: 1, Status: models.PaymentAttemptStatusSuccess, AmountCents: 2500, AttemptedAt: mustTime("2026-08-01T10:00:00Z")},
	}

	sum := runEngine(orders, attempts, nil)
	if sum.TotalOrders != 1 {
		t.Fatalf("keyless attempt excluded from its own ledger: total_orders=%d", sum.TotalOrders)
	}
	if sum.TotalInternalSales.String() != "25" {
		t.Fatalf("total_internal_sales=%s, want 25", sum.TotalInternalSales)
	}
}
