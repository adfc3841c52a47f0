package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationRun is the persisted one-row output of a reconciliation run.
// The engine itself is stateless; this table is the audit trail finance reads.
//
// Decimal columns hold major units (USD); all inputs arrive as integer cents.
type ReconciliationRun struct {
	ID            int                     `gorm:"primary_key" json:"id"`
	CorrelationId string                  `gorm:"size:64;index" json:"correlation_id"`
	Status        ReconciliationRunStatus `gorm:"size:20;index;not null" json:"status"`

	TotalOrders        int             `gorm:"not null;default:0" json:"total_orders"`
	TotalInternalSales decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_internal_sales_usd"`
	TotalSettlements   int             `gorm:"not null;default:0" json:"total_settlements"`
	TotalBankSettled   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_bank_settled_usd"`
	OrphanCount        int             `gorm:"not null;default:0" json:"orphan_count"`
	OrphanTotal        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"orphan_total_usd"`
	DiscrepancyGap     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discrepancy_gap_usd"`

	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `gorm:"default:null" json:"finished_at"`
	ErrorText  string     `gorm:"type:text" json:"error_text"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
