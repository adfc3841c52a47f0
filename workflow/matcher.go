package workflow

import (
	"bitbucket.org/mmdatafocus/recon_backend/models"
)

// MatchedPair is one row of the left-outer view: every authoritative internal
// attempt appears once, with its bank counterpart when one exists.
type MatchedPair struct {
	Attempt    models.PaymentAttempt
	Settlement *models.SettlementRecord
}

type MatchResult struct {
	Pairs []MatchedPair
	// Orphans are bank settlements no internal attempt can reach: key matches
	// nothing, or the row has no identity key at all. Unmatched bank money is
	// the primary finance signal of this pipeline.
	Orphans []models.SettlementRecord
}

// MatchLedgers joins the two deduplicated ledgers on identity key. Both sides
// are indexed once; no nested scans, the feeds run to audit scale.
//
// If one identity key still maps to several settlements after dedup (two
// settlement_ids sharing a payment_id), the latest settled_at is paired and
// the rest stay in the bank totals without becoming the pair; the join never
// fans out to multiple rows per attempt.
func MatchLedgers(attempts []models.PaymentAttempt, settlements []models.SettlementRecord) MatchResult {
	bankByKey := make(map[string][]models.SettlementRecord, len(settlements))
	for _, sr := range settlements {
		key, ok := sr.IdentityKey()
		if !ok {
			continue
		}
		bankByKey[key] = append(bankByKey[key], sr)
	}

	internalKeys := make(map[string]struct{}, len(attempts))
	pairs := make([]MatchedPair, 0, len(attempts))
	for _, pa := range attempts {
		pair := MatchedPair{Attempt: pa}
		if key, ok := pa.IdentityKey(); ok {
			internalKeys[key] = struct{}{}
			if candidates := bankByKey[key]; len(candidates) > 0 {
				chosen := candidates[0]
				for _, c := range candidates[1:] {
					if settlementWins(c, chosen) {
						chosen = c
					}
				}
				pair.Settlement = &chosen
			}
		}
		pairs = append(pairs, pair)
	}

	var orphans []models.SettlementRecord
	for _, sr := range settlements {
		key, ok := sr.IdentityKey()
		if !ok {
			orphans = append(orphans, sr)
			continue
		}
		if _, matched := internalKeys[key]; !matched {
			orphans = append(orphans, sr)
		}
	}

	return MatchResult{Pairs: pairs, Orphans: orphans}
}
