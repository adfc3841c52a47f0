package reconsvc

// ReconcileRequest asks the service to run one reconciliation. Publishing is
// how the nightly scheduler and the admin console trigger runs.
type ReconcileRequest struct {
	RequestedBy   string `json:"requested_by"`
	CorrelationId string `json:"correlation_id"`
}

// PubSubPushEnvelope is the wrapper Google Pub/Sub push delivery wraps around
// the published message. Data is base64 on the wire; encoding/json decodes it.
type PubSubPushEnvelope struct {
	Message struct {
		Data      []byte `json:"data"`
		MessageId string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
