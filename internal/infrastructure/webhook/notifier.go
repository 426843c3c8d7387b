package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const completedMessage = "Processing complete"

// Notifier POSTs a completion notification to the configured URL.
// With an empty URL every call is a no-op.
type Notifier struct {
	client *http.Client
	url    string
}

func New(url string, timeout time.Duration) *Notifier {
	return &Notifier{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (n *Notifier) NotifyCompleted(ctx context.Context, requestID uuid.UUID) error {
	if n.url == "" {
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"request_id": requestID.String(),
		"message":    completedMessage,
	})
	if err != nil {
		return fmt.Errorf("Notifier - NotifyCompleted - json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("Notifier - NotifyCompleted - http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("Notifier - NotifyCompleted - n.client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("Notifier - NotifyCompleted - webhook returned status %d", resp.StatusCode)
	}

	return nil
}
