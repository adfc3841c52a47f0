package reconsvc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/pubsub"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bitbucket.org/mmdatafocus/recon_backend/config"
)

func reconcileTopicName() string {
	topicName := strings.TrimSpace(os.Getenv("RECONCILE_TOPIC"))
	if topicName == "" {
		topicName = "reconcile-requests"
	}
	return topicName
}

// PublishReconcileRequest enqueues a run request. The scheduler job and the
// manual trigger endpoint both go through here so every run is delivered the
// same way.
func PublishReconcileRequest(ctx context.Context, requestedBy string) error {
	client, err := config.GetPubSubClient(ctx)
	if err != nil {
		return err
	}

	topicName := reconcileTopicName()
	topic := client.Topic(topicName)
	if envBoolDefault("RECONCILE_CREATE_TOPIC", false) {
		topic, err = config.CreateTopicIfNotExists(client, topicName)
		if err != nil {
			return err
		}
	}

	req := ReconcileRequest{
		RequestedBy:   requestedBy,
		CorrelationId: uuid.NewString(),
	}
	data, _ := json.Marshal(req)
	res := topic.Publish(ctx, &pubsub.Message{Data: data})
	_, err = res.Get(ctx)
	return err
}

// PubSubPushHandler receives push deliveries from the reconcile subscription.
// A processing failure returns 500 so Pub/Sub redelivers; the engine itself
// never retries.
func PubSubPushHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusNoContent)
			return
		}

		var envelope PubSubPushEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			c.Status(http.StatusNoContent)
			return
		}

		var req ReconcileRequest
		if err := json.Unmarshal(envelope.Message.Data, &req); err != nil {
			c.Status(http.StatusNoContent)
			return
		}

		if err := ProcessReconcileRequest(c.Request.Context(), req); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func envBoolDefault(key string, def bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "true", "1", "yes", "y", "on":
		return true
	case "false", "0", "no", "n", "off":
		return false
	default:
		return def
	}
}
