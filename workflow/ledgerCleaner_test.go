package workflow

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/recon_backend/models"
	"bitbucket.org/mmdatafocus/recon_backend/utils"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testOrders() map[string]models.Order {
	return OrdersById([]models.Order{
		{ID: 1, OrderId: "O1", IsTest: false},
		{ID: 2, OrderId: "O2", IsTest: false},
		{ID: 3, OrderId: "T1", IsTest: true},
	})
}

func TestCleanPaymentAttempts_Filters(t *testing.T) {
	at := mustTime("2026-08-01T10:00:00Z")
	attempts := []models.PaymentAttempt{
		{ID: 1, OrderId: "O1", AttemptNo: 1, Status: models.PaymentAttemptStatusSuccess, AmountCents: 1000, AttemptedAt: at},
		{ID: 2, OrderId: "O1", AttemptNo: 2, Status: models.PaymentAttemptStatusFailed, AmountCents: 1000, AttemptedAt: at},
		{ID: 3, OrderId: "O1", AttemptNo: 3, Status: models.PaymentAttemptStatusPending, AmountCents: 1000, AttemptedAt: at},
		{ID: 4, OrderId: "O2", AttemptNo: 1, Status: models.PaymentAttemptStatusSuccess, AmountCents: 0, AttemptedAt: at},
		{ID: 5, OrderId: "O2", AttemptNo: 2, Status: models.PaymentAttemptStatusSuccess, AmountCents: -500, AttemptedAt: at},
		{ID: 6, OrderId: "T1", AttemptNo: 1, Status: models.PaymentAttemptStatusSuccess, AmountCents: 1000, AttemptedAt: at},
		{ID: 7, OrderId: "GHOST", AttemptNo: 1, Status: models.PaymentAttemptStatusSuccess, AmountCents: 1000, AttemptedAt: at},
		{ID: 8, OrderId: "", AttemptNo: 1, Status: models.PaymentAttemptStatusSuccess, AmountCents: 1000, AttemptedAt: at},
	}

	kept, stats := CleanPaymentAttempts(attempts, testOrders())
	if len(kept) != 1 {
		t.Fatalf("want 1 kept attempt, got %d", len(kept))
	}
	if kept[0].ID != 1 {
		t.Fatalf("want attempt id 1 to survive, got %d", kept[0].ID)
	}
	if stats.BadStatus != 2 {
		t.Fatalf("want 2 bad-status drops, got %d", stats.BadStatus)
	}
	if stats.NonPositiveAmount != 2 {
		t.Fatalf("want 2 non-positive drops, got %d", stats.NonPositiveAmount)
	}
	if stats.TestOrder != 1 {
		t.Fatalf("want 1 test-order drop, got %d", stats.TestOrder)
	}
	if stats.MissingOrder != 1 {
		t.Fatalf("want 1 missing-order drop, got %d", stats.MissingOrder)
	}
	if stats.MissingId != 1 {
		t.Fatalf("want 1 missing-id drop, got %d", stats.MissingId)
	}
	if stats.Kept != 1 {
		t.Fatalf("stats.Kept=%d, want 1", stats.Kept)
	}
}

func TestCleanPaymentAttempts_DoesNotMutateInput(t *testing.T) {
	at := mustTime("2026-08-01T10:00:00Z")
	attempts := []models.PaymentAttempt{
		{ID: 1, OrderId: "O1", Status: models.PaymentAttemptStatusSuccess, AmountCents: 1000, AttemptedAt: at},
		{ID: 2, OrderId: "O1", Status: models.PaymentAttemptStatusFailed, AmountCents: 1000, AttemptedAt: at},
	}
	CleanPaymentAttempts(attempts, testOrders())
	if attempts[1].ID != 2 || attempts[1].Status != models.PaymentAttemptStatusFailed {
		t.Fatal("input slice was mutated")
	}
}

func TestCleanSettlementRecords_Filters(t *testing.T) {
	at := mustTime("2026-08-02T00:00:00Z")
	records := []models.SettlementRecord{
		{ID: 1, SettlementId: "S1", PaymentId: utils.StrPtr("P1"), Status: models.SettlementStatusSettled, SettledAmountCents: 1000, SettledAt: at},
		{ID: 2, SettlementId: "S2", Status: models.SettlementStatusPending, SettledAmountCents: 1000, SettledAt: at},
		{ID: 3, SettlementId: "S3", Status: models.SettlementStatusReturned, SettledAmountCents: 1000, SettledAt: at},
		{ID: 4, SettlementId: "S4", Status: models.SettlementStatusSettled, SettledAmountCents: 0, SettledAt: at},
		{ID: 5, SettlementId: "", Status: models.SettlementStatusSettled, SettledAmountCents: 1000, SettledAt: at},
	}

	kept, stats := CleanSettlementRecords(records)
	if len(kept) != 1 || kept[0].SettlementId != "S1" {
		t.Fatalf("want only S1 kept, got %v", kept)
	}
	if stats.BadStatus != 2 || stats.NonPositiveAmount != 1 || stats.MissingId != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestCleanLedgers_EmptyInputIsNotAnError(t *testing.T) {
	kept, stats := CleanPaymentAttempts(nil, testOrders())
	if len(kept) != 0 || stats.Kept != 0 {
		t.Fatalf("empty internal ledger should clean to empty, got %d", len(kept))
	}
	keptBank, bankStats := CleanSettlementRecords(nil)
	if len(keptBank) != 0 || bankStats.Kept != 0 {
		t.Fatalf("empty bank ledger should clean to empty, got %d", len(keptBank))
	}
}
