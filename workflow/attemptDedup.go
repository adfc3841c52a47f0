package workflow

import (
	"sort"

	"bitbucket.org/mmdatafocus/recon_backend/models"
)

// DedupPaymentAttempts reduces the cleaned internal ledger to exactly one
// authoritative attempt per order_id: highest attempt_no, ties broken by
// latest attempted_at, then by row id so the choice never depends on input
// order. Later attempts win because they correct earlier failed/partial ones.
//
// Output is sorted by order_id. Running it on its own output is a no-op.
func DedupPaymentAttempts(attempts []models.PaymentAttempt) []models.PaymentAttempt {
	best := make(map[string]models.PaymentAttempt, len(attempts))
	for _, pa := range attempts {
		current, ok := best[pa.OrderId]
		if !ok || attemptWins(pa, current) {
			best[pa.OrderId] = pa
		}
	}

	out := make([]models.PaymentAttempt, 0, len(best))
	for _, pa := range best {
		out = append(out, pa)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderId < out[j].OrderId })
	return out
}

// DedupSettlementRecords keeps the latest bank report per settlement_id,
// row id as the stable tiebreak. Output is sorted by settlement_id.
func DedupSettlementRecords(records []models.SettlementRecord) []models.SettlementRecord {
	best := make(map[string]models.SettlementRecord, len(records))
	for _, sr := range records {
		current, ok := best[sr.SettlementId]
		if !ok || settlementWins(sr, current) {
			best[sr.SettlementId] = sr
		}
	}

	out := make([]models.SettlementRecord, 0, len(best))
	for _, sr := range best {
		out = append(out, sr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SettlementId < out[j].SettlementId })
	return out
}

func attemptWins(a, b models.PaymentAttempt) bool {
	if a.AttemptNo != b.AttemptNo {
		return a.AttemptNo > b.AttemptNo
	}
	if !a.AttemptedAt.Equal(b.AttemptedAt) {
		return a.AttemptedAt.After(b.AttemptedAt)
	}
	return a.ID > b.ID
}

func settlementWins(a, b models.SettlementRecord) bool {
	if !a.SettledAt.Equal(b.SettledAt) {
		return a.SettledAt.After(b.SettledAt)
	}
	return a.ID > b.ID
}
