// Package forward pushes newly created records to the spreadsheet sync
// webhook. Delivery is best effort: failures are logged and never surface to
// the submission path.
package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/impulso-stone/webhook-service/internal/store"
)

// Forwarder delivers created records to an external webhook.
type Forwarder struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// New constructs a Forwarder. An empty URL disables forwarding.
func New(url string, timeout time.Duration, logger *zap.Logger) *Forwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Forwarder{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Enabled reports whether a destination URL is configured.
func (f *Forwarder) Enabled() bool {
	return f.url != ""
}

// Forward posts the record to the configured webhook. Errors are logged and
// swallowed so a flaky spreadsheet sync cannot fail a submission.
func (f *Forwarder) Forward(ctx context.Context, record store.Empreendedor) {
	if !f.Enabled() {
		return
	}
	if err := f.post(ctx, record); err != nil {
		f.logger.Warn("forward to sheets webhook failed",
			zap.Int64("id", record.ID),
			zap.Error(err))
		return
	}
	f.logger.Debug("forwarded record to sheets webhook", zap.Int64("id", record.ID))
}

func (f *Forwarder) post(ctx context.Context, record store.Empreendedor) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("post record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
