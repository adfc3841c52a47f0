package ingest

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// rawEvent mirrors one line of the QuickCart raw transaction log. Fields live
// at inconsistent depths in the feed; the extractor flattens them.
type rawEvent struct {
	Event struct {
		Type string `json:"type"`
		Ts   string `json:"ts"`
	} `json:"event"`
	Entity struct {
		Order struct {
			Id string `json:"id"`
		} `json:"order"`
		Customer struct {
			Email string `json:"email"`
		} `json:"customer"`
		Payment struct {
			Id          string `json:"id"`
			Provider    string `json:"provider"`
			ProviderRef string `json:"provider_ref"`
		} `json:"payment"`
		Payload struct {
			Currency string `json:"Currency"`
		} `json:"payload"`
	} `json:"entity"`
	Payload struct {
		Amount json.RawMessage `json:"Amount"`
		Status string          `json:"status"`
		Flags  []string        `json:"flags"`
	} `json:"payload"`
}

// StagedTransaction is one extracted, not-yet-normalized internal payment
// event. Amount stays raw here; the normalizer decides cents vs dollars.
type StagedTransaction struct {
	OrderId       string `validate:"required"`
	CustomerEmail string
	PaymentId     string `validate:"required"`
	Provider      string
	ProviderRef   string
	Status        string `validate:"required"`
	Currency      string
	Flags         []string
	AmountRaw     string `validate:"required"`
	CreatedAt     time.Time
}

type ExtractStats struct {
	Lines      int `json:"lines"`
	Heartbeats int `json:"heartbeats"`
	Malformed  int `json:"malformed"`
	Extracted  int `json:"extracted"`
}

// ExtractTransactions reads the raw JSONL feed line by line. Heartbeat events
// are non-transactional noise and are skipped; malformed lines are counted,
// never fatal.
func ExtractTransactions(r io.Reader, logger *logrus.Logger) ([]StagedTransaction, ExtractStats, error) {
	var (
		staged []StagedTransaction
		stats  ExtractStats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		var ev rawEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			stats.Malformed++
			continue
		}
		if ev.Event.Type == "heartbeat" {
			stats.Heartbeats++
			continue
		}

		staged = append(staged, StagedTransaction{
			OrderId:       ev.Entity.Order.Id,
			CustomerEmail: ev.Entity.Customer.Email,
			PaymentId:     ev.Entity.Payment.Id,
			Provider:      ev.Entity.Payment.Provider,
			ProviderRef:   ev.Entity.Payment.ProviderRef,
			Status:        ev.Payload.Status,
			Currency:      currencyOrDefault(ev.Entity.Payload.Currency),
			Flags:         ev.Payload.Flags,
			AmountRaw:     rawAmountString(ev.Payload.Amount),
			CreatedAt:     parseEventTs(ev.Event.Ts),
		})
		stats.Extracted++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"lines":      stats.Lines,
			"heartbeats": stats.Heartbeats,
			"malformed":  stats.Malformed,
			"extracted":  stats.Extracted,
		}).Info("extracted raw transaction feed")
	}
	return staged, stats, nil
}

func currencyOrDefault(currency string) string {
	if strings.TrimSpace(currency) == "" {
		return "USD"
	}
	return currency
}

// rawAmountString flattens a JSON amount that arrives as either a bare number
// or a formatted string ("$10.50", "USD 1050").
func rawAmountString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err != nil {
			return ""
		}
		return strings.TrimSpace(unquoted)
	}
	return s
}

func parseEventTs(ts string) time.Time {
	if ts == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
