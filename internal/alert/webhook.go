package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/javierperezm/fitnesspark-ical/internal/scraper"
)

// WebhookNotifier POSTs the alert batch as JSON to a configured endpoint,
// which forwards it to the actual delivery channel (e-mail, chat, pager).
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// payload is the webhook body: a summary line plus the full failure list.
type payload struct {
	Subject       string                     `json:"subject"`
	AffectedShops []int                      `json:"affectedShops"`
	TotalErrors   int                        `json:"totalErrors"`
	Failures      []scraper.ValidationResult `json:"failures"`
}

// NewWebhookNotifier creates a webhook notifier for the given URL.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify delivers the batch. Empty batches are a no-op.
func (n *WebhookNotifier) Notify(ctx context.Context, failures []scraper.ValidationResult) error {
	if len(failures) == 0 {
		return nil
	}

	body, err := json.Marshal(buildPayload(failures))
	if err != nil {
		return fmt.Errorf("encoding alert payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delivering alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("alert endpoint returned status %d", resp.StatusCode)
	}

	return nil
}

func buildPayload(failures []scraper.ValidationResult) payload {
	seen := make(map[int]bool)
	shops := make([]int, 0, len(failures))
	totalErrors := 0
	for _, f := range failures {
		if !seen[f.Shop] {
			seen[f.Shop] = true
			shops = append(shops, f.Shop)
		}
		totalErrors += len(f.Errors)
	}

	labels := make([]string, len(shops))
	for i, shop := range shops {
		labels[i] = strconv.Itoa(shop)
	}

	return payload{
		Subject: fmt.Sprintf("[Fitnesspark iCal] Structure Alert: %d errors in shops %s",
			totalErrors, strings.Join(labels, ", ")),
		AffectedShops: shops,
		TotalErrors:   totalErrors,
		Failures:      failures,
	}
}
