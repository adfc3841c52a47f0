package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

var (
	pubsubClient   *pubsub.Client
	pubsubClientMu sync.Mutex
)

func init() {
	// Load env from .env
	godotenv.Load()
}

// GetPubSubClient returns a Pub/Sub client, initializing with retries if needed.
// It uses Application Default Credentials unless PUBSUB_CREDENTIALS_JSON is provided.
func GetPubSubClient(ctx context.Context) (*pubsub.Client, error) {
	pubsubClientMu.Lock()
	if pubsubClient != nil {
		c := pubsubClient
		pubsubClientMu.Unlock()
		return c, nil
	}
	pubsubClientMu.Unlock()

	projectID := getPubSubProjectID()
	if projectID == "" {
		return nil, errors.New("PUBSUB_PROJECT_ID/GOOGLE_CLOUD_PROJECT not set")
	}

	credJSON := os.Getenv("PUBSUB_CREDENTIALS_JSON")

	var attempt int
	for {
		attempt++
		var opts []option.ClientOption
		if credJSON != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
		}
		client, err := pubsub.NewClient(ctx, projectID, opts...)
		if err == nil {
			pubsubClientMu.Lock()
			pubsubClient = client
			pubsubClientMu.Unlock()
			return client, nil
		}
		if attempt >= 5 {
			return nil, fmt.Errorf("pubsub client init failed after %d attempts: %w", attempt, err)
		}
		log.Printf("failed to init pubsub client (attempt=%d): %v", attempt, err)
		time.Sleep(time.Second * time.Duration(attempt))
	}
}

func getPubSubProjectID() string {
	// Prefer explicit override.
	if v := os.Getenv("PUBSUB_PROJECT_ID"); v != "" {
		return v
	}
	// Cloud Run/Cloud Functions often set this.
	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		return v
	}
	// Common fallback.
	if v := os.Getenv("GCP_PROJECT"); v != "" {
		return v
	}
	return ""
}

// CreateTopicIfNotExists is used by local/dev setups where topics are not
// provisioned by Terraform.
func CreateTopicIfNotExists(client *pubsub.Client, topicName string) (*pubsub.Topic, error) {
	ctx := context.Background()
	topic := client.Topic(topicName)
	ok, err := topic.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return topic, nil
	}
	return client.CreateTopic(ctx, topicName)
}
