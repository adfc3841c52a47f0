package ingest

import (
	"strings"
	"testing"
)

const sampleFeed = `{"event":{"type":"order.paid","ts":"2026-08-01T10:00:00Z"},"entity":{"order":{"id":"O1"},"customer":{"email":"a@example.com"},"payment":{"id":"P1","provider":"stripe","provider_ref":"ch_123"},"payload":{"Currency":"USD"}},"payload":{"Amount":"$10.50","status":"SUCCESS","flags":[]}}
{"event":{"type":"heartbeat","ts":"2026-08-01T10:00:01Z"}}
{"event":{"type":"order.paid","ts":"2026-08-01T10:01:00Z"},"entity":{"order":{"id":"O2"},"payment":{"id":"P2","provider":"adyen"}},"payload":{"Amount":1050,"status":"SUCCESS","flags":["sandbox"]}}
not json at all
{"event":{"type":"order.paid","ts":"2026-08-01T10:02:00Z"},"entity":{"order":{"id":"O3"},"payment":{"id":"P3"}},"payload":{"Amount":"1050","status":"FAILED"}}
`

func TestExtractTransactions_SkipsHeartbeatsAndMalformed(t *testing.T) {
	staged, stats, err := ExtractTransactions(strings.NewReader(sampleFeed), nil)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if stats.Heartbeats != 1 {
		t.Fatalf("heartbeats=%d, want 1", stats.Heartbeats)
	}
	if stats.Malformed != 1 {
		t.Fatalf("malformed=%d, want 1", stats.Malformed)
	}
	if stats.Extracted != 3 || len(staged) != 3 {
		t.Fatalf("extracted=%d len=%d, want 3", stats.Extracted, len(staged))
	}
}

func TestExtractTransactions_FlattensFields(t *testing.T) {
	staged, _, err := ExtractTransactions(strings.NewReader(sampleFeed), nil)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	first := staged[0]
	if first.OrderId != "O1" || first.PaymentId != "P1" || first.Provider != "stripe" || first.ProviderRef != "ch_123" {
		t.Fatalf("identity fields wrong: %+v", first)
	}
	if first.AmountRaw != "$10.50" {
		t.Fatalf("amount_raw=%q, want $10.50", first.AmountRaw)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("event ts not parsed")
	}
	if first.Currency != "USD" {
		t.Fatalf("currency=%q, want USD", first.Currency)
	}

	// Numeric JSON amounts flatten to their literal text.
	second := staged[1]
	if second.AmountRaw != "1050" {
		t.Fatalf("amount_raw=%q, want 1050", second.AmountRaw)
	}
	// Missing currency defaults to USD.
	if second.Currency != "USD" {
		t.Fatalf("currency=%q, want default USD", second.Currency)
	}
	if !IsTestFlagged(second.Flags) {
		t.Fatal("sandbox flag not detected")
	}
}

func TestExtractTransactions_EmptyFeed(t *testing.T) {
	staged, stats, err := ExtractTransactions(strings.NewReader(""), nil)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(staged) != 0 || stats.Lines != 0 {
		t.Fatalf("empty feed should extract nothing, got %+v", stats)
	}
}
