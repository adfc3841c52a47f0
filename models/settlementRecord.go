package models

import "time"

// SettlementRecord is one bank-reported settlement line. The bank feed can
// report the same settlement_id more than once (corrections); dedup keeps the
// latest report per settlement_id.
type SettlementRecord struct {
	ID                 int              `gorm:"primary_key" json:"id"`
	SettlementId       string           `gorm:"size:64;index;not null" json:"settlement_id"`
	PaymentId          *string          `gorm:"size:64;index" json:"payment_id"`
	ProviderRef        *string          `gorm:"size:128;index" json:"provider_ref"`
	Status             SettlementStatus `gorm:"size:20;index;not null" json:"status"`
	SettledAmountCents int64            `gorm:"not null" json:"settled_amount_cents"`
	SettledAt          time.Time        `gorm:"index;not null" json:"settled_at"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// IdentityKey mirrors PaymentAttempt.IdentityKey; a row lacking both fields
// cannot be matched to anything, including another keyless row.
func (sr SettlementRecord) IdentityKey() (string, bool) {
	if sr.PaymentId != nil && *sr.PaymentId != "" {
		return *sr.PaymentId, true
	}
	if sr.ProviderRef != nil && *sr.ProviderRef != "" {
		return *sr.ProviderRef, true
	}
	return "", false
}
