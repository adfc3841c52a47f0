package utils

import (
	"github.com/shopspring/decimal"
)

// CentsToUnits converts an integer minor-unit amount into major units.
// decimal.New with exponent -2 is an exact base-10 shift; this must never go
// through float math, large ledger sums drift otherwise.
func CentsToUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

func StrPtr(s string) *string {
	return &s
}
