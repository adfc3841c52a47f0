package config

import (
	"os"
	"strings"
)

// SequentialLedgerPrep disables the parallel clean+dedup of the two ledgers.
// The ledgers are independent until matching, so the parallel path is the
// default; this escape hatch exists for debugging drop-counter logs in order.
//
// Set via env:
// - RECON_SEQUENTIAL_LEDGER_PREP=true
func SequentialLedgerPrep() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("RECON_SEQUENTIAL_LEDGER_PREP")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// RawArchiveDisabled skips the GCS raw-log archival step during ingestion.
// Useful locally where no bucket credentials exist; the cleaned rows still
// land in MySQL either way.
//
// Set via env:
// - RECON_DISABLE_RAW_ARCHIVE=true
func RawArchiveDisabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("RECON_DISABLE_RAW_ARCHIVE")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
