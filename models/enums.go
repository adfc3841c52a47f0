package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

type PaymentAttemptStatus string

const (
	PaymentAttemptStatusSuccess PaymentAttemptStatus = "SUCCESS"
	PaymentAttemptStatusFailed  PaymentAttemptStatus = "FAILED"
	PaymentAttemptStatusPending PaymentAttemptStatus = "PENDING"
)

// Value implements the driver.Valuer interface
func (t PaymentAttemptStatus) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements the sql.Scanner interface
func (t *PaymentAttemptStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = PaymentAttemptStatus(v)
	case []byte:
		*t = PaymentAttemptStatus(v)
	default:
		return fmt.Errorf("cannot convert %T to PaymentAttemptStatus", value)
	}
	return nil
}

func ParsePaymentAttemptStatus(s string) (PaymentAttemptStatus, error) {
	switch s {
	case "SUCCESS":
		return PaymentAttemptStatusSuccess, nil
	case "FAILED":
		return PaymentAttemptStatusFailed, nil
	case "PENDING":
		return PaymentAttemptStatusPending, nil
	}
	return "", errors.New("invalid payment attempt status")
}

type SettlementStatus string

const (
	SettlementStatusSettled  SettlementStatus = "SETTLED"
	SettlementStatusPending  SettlementStatus = "PENDING"
	SettlementStatusReturned SettlementStatus = "RETURNED"
)

// Value implements the driver.Valuer interface
func (t SettlementStatus) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements the sql.Scanner interface
func (t *SettlementStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = SettlementStatus(v)
	case []byte:
		*t = SettlementStatus(v)
	default:
		return fmt.Errorf("cannot convert %T to SettlementStatus", value)
	}
	return nil
}

type ReconciliationRunStatus string

const (
	ReconciliationRunStatusRunning   ReconciliationRunStatus = "Running"
	ReconciliationRunStatusCompleted ReconciliationRunStatus = "Completed"
	ReconciliationRunStatusFailed    ReconciliationRunStatus = "Failed"
)

// Value implements the driver.Valuer interface
func (t ReconciliationRunStatus) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements the sql.Scanner interface
func (t *ReconciliationRunStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = ReconciliationRunStatus(v)
	case []byte:
		*t = ReconciliationRunStatus(v)
	default:
		return fmt.Errorf("cannot convert %T to ReconciliationRunStatus", value)
	}
	return nil
}
