package models

import "time"

// PaymentAttempt is one internally recorded attempt to charge an order.
// Multiple attempts per order are expected (retries after FAILED/PENDING);
// at most one is authoritative after deduplication.
type PaymentAttempt struct {
	ID          int                  `gorm:"primary_key" json:"id"`
	OrderId     string               `gorm:"size:64;index;not null" json:"order_id"`
	PaymentId   *string              `gorm:"size:64;index" json:"payment_id"`
	AttemptNo   int                  `gorm:"not null;default:1" json:"attempt_no"`
	Provider    string               `gorm:"size:50" json:"provider"`
	ProviderRef *string              `gorm:"size:128;index" json:"provider_ref"`
	Status      PaymentAttemptStatus `gorm:"size:20;index;not null" json:"status"`
	AmountCents int64                `gorm:"not null" json:"amount_cents"`
	AttemptedAt time.Time            `gorm:"index;not null" json:"attempted_at"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

// IdentityKey is the cross-ledger match key: provider payment id when present,
// else the provider reference. ok=false means the row can never match.
func (pa PaymentAttempt) IdentityKey() (string, bool) {
	if pa.PaymentId != nil && *pa.PaymentId != "" {
		return *pa.PaymentId, true
	}
	if pa.ProviderRef != nil && *pa.ProviderRef != "" {
		return *pa.ProviderRef, true
	}
	return "", false
}
