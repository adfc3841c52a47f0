package ingest

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyAmount   = errors.New("empty amount")
	ErrSubCentAmount = errors.New("amount has sub-cent precision")
)

// IsCentFormatted reports whether a raw amount is already in integer minor
// units. The feed mixes representations: "1050" means cents, while "$10.50",
// "10.50" and "USD 10.50" are dollar-formatted.
func IsCentFormatted(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	if strings.Contains(raw, ".") || strings.Contains(raw, "$") || strings.Contains(raw, "USD") {
		return false
	}
	return true
}

// NormalizeAmountCents converts a raw amount to integer cents. Dollar-formatted
// values go through decimal arithmetic, never float; values that do not land on
// a whole cent are rejected rather than silently rounded.
func NormalizeAmountCents(raw string) (int64, error) {
	centFormatted := IsCentFormatted(raw)

	neg := false
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "-") {
		neg = true
	}

	// Keep digits and '.' only; currency markers and separators go.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return 0, ErrEmptyAmount
	}
	if neg {
		clean = "-" + clean
	}

	if centFormatted {
		cents, err := strconv.ParseInt(clean, 10, 64)
		if err != nil {
			return 0, err
		}
		return cents, nil
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}
	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, ErrSubCentAmount
	}
	return shifted.IntPart(), nil
}

// IsTestFlagged reports whether the event carries a test/sandbox flag. Flagged
// transactions mark their order as synthetic and are excluded from every run.
func IsTestFlagged(flags []string) bool {
	for _, f := range flags {
		lowered := strings.ToLower(strings.TrimSpace(f))
		if lowered == "test" || lowered == "sandbox" {
			return true
		}
	}
	return false
}
