package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"bitbucket.org/mmdatafocus/recon_backend/config"
)

// ArchiveRawLog streams the untouched raw feed into the audit bucket. This is
// a write-only sink: reconciliation never reads it back. Object names are
// date-stamped so re-ingesting the same day overwrites rather than piles up.
func ArchiveRawLog(ctx context.Context, feedName string, r io.Reader) (string, error) {
	bucketName := os.Getenv("RAW_ARCHIVE_BUCKET")
	if bucketName == "" {
		return "", errors.New("RAW_ARCHIVE_BUCKET is required")
	}

	client, err := config.GetStorageClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	objectName := fmt.Sprintf("raw/%s/%s.jsonl", time.Now().UTC().Format("2006-01-02"), feedName)
	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = "application/x-ndjson"
	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return objectName, nil
}
