package workflow

import (
	"bitbucket.org/mmdatafocus/recon_backend/models"
)

// CleanStats counts why rows were dropped. Row-level noise is expected in both
// feeds and is never an error; the counters go to the run log so finance can
// see how dirty a given day's feed was.
type CleanStats struct {
	Kept              int `json:"kept"`
	BadStatus         int `json:"bad_status"`
	NonPositiveAmount int `json:"non_positive_amount"`
	MissingId         int `json:"missing_id"`
	MissingOrder      int `json:"missing_order"`
	TestOrder         int `json:"test_order"`
}

func OrdersById(orders []models.Order) map[string]models.Order {
	byId := make(map[string]models.Order, len(orders))
	for _, o := range orders {
		byId[o.OrderId] = o
	}
	return byId
}

// CleanPaymentAttempts keeps attempts that are SUCCESS, carry a strictly
// positive amount, and belong to a known non-test order. Pure filter, input
// order preserved.
func CleanPaymentAttempts(attempts []models.PaymentAttempt, ordersById map[string]models.Order) ([]models.PaymentAttempt, CleanStats) {
	kept := make([]models.PaymentAttempt, 0, len(attempts))
	var stats CleanStats
	for _, pa := range attempts {
		if pa.OrderId == "" {
			stats.MissingId++
			continue
		}
		if pa.Status != models.PaymentAttemptStatusSuccess {
			stats.BadStatus++
			continue
		}
		if pa.AmountCents <= 0 {
			stats.NonPositiveAmount++
			continue
		}
		order, ok := ordersById[pa.OrderId]
		if !ok {
			// An order must exist for the attempt to be attributable.
			stats.MissingOrder++
			continue
		}
		if order.IsTest {
			stats.TestOrder++
			continue
		}
		kept = append(kept, pa)
	}
	stats.Kept = len(kept)
	return kept, stats
}

// CleanSettlementRecords keeps bank rows that are SETTLED with a strictly
// positive amount and a settlement id. Pure filter, input order preserved.
func CleanSettlementRecords(records []models.SettlementRecord) ([]models.SettlementRecord, CleanStats) {
	kept := make([]models.SettlementRecord, 0, len(records))
	var stats CleanStats
	for _, sr := range records {
		if sr.SettlementId == "" {
			stats.MissingId++
			continue
		}
		if sr.Status != models.SettlementStatusSettled {
			stats.BadStatus++
			continue
		}
		if sr.SettledAmountCents <= 0 {
			stats.NonPositiveAmount++
			continue
		}
		kept = append(kept, sr)
	}
	stats.Kept = len(kept)
	return kept, stats
}
