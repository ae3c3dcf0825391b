package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/patitas/patitas/internal/match"
)

// webhookTimeout is the timeout for an alert webhook request.
const webhookTimeout = 30 * time.Second

// WebhookPayload is the JSON body posted to the configured endpoint.
type WebhookPayload struct {
	ActivityType string  `json:"activityType"`
	SourceID     int64   `json:"sourceId"`
	SourceName   string  `json:"sourceName"`
	MatchedID    int64   `json:"matchedId"`
	MatchedName  string  `json:"matchedName"`
	FusedScore   float64 `json:"fusedScore"`
}

// WebhookNotifier posts alerts as JSON to a fixed HTTP endpoint.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: webhookTimeout},
	}
}

// NotifyAlert posts the alert payload and checks for a 2xx response.
func (n *WebhookNotifier) NotifyAlert(ctx context.Context, alert *match.Alert, sourceName string) error {
	body, err := json.Marshal(&WebhookPayload{
		ActivityType: "pet.alert",
		SourceID:     alert.SourceID,
		SourceName:   sourceName,
		MatchedID:    alert.MatchedID,
		MatchedName:  alert.MatchedName,
		FusedScore:   alert.FusedScore,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to marshal webhook request to %s", n.url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewBuffer(body))
	if err != nil {
		return errors.Wrapf(err, "failed to construct webhook request to %s", n.url)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to post webhook to %s", n.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("failed to post webhook %s, status code: %d, response body: %s", n.url, resp.StatusCode, b)
	}
	return nil
}

// Multi fans an alert out to several channels; delivery failures are
// collected, and every channel is attempted regardless.
type Multi []Notifier

func (m Multi) NotifyAlert(ctx context.Context, alert *match.Alert, sourceName string) error {
	var firstErr error
	for _, n := range m {
		if err := n.NotifyAlert(ctx, alert, sourceName); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
