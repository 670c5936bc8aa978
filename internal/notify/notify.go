// Package notify delivers risk alerts to external channels.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// Channel delivers a single alert to one destination.
type Channel interface {
	Name() string
	Send(ctx context.Context, alert models.RiskAlert) error
	IsEnabled() bool
}

// Dispatcher fans alerts out to every enabled channel. It is the usual
// subscriber wired to the risk monitor.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	log      zerolog.Logger
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(logger zerolog.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		timeout:  10 * time.Second,
		log:      logger,
	}
}

// Dispatch sends the alert to all enabled channels. Channel failures are
// logged, never propagated: alert delivery must not disturb monitoring.
func (d *Dispatcher) Dispatch(alert models.RiskAlert) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	for _, ch := range d.channels {
		if !ch.IsEnabled() {
			continue
		}
		if err := ch.Send(ctx, alert); err != nil {
			d.log.Warn().
				Str("channel", ch.Name()).
				Err(err).
				Msg("Alert delivery failed")
		}
	}
}

// TerminalChannel writes alerts to a terminal writer.
type TerminalChannel struct {
	Out     io.Writer
	Enabled bool
}

// Name implements Channel.
func (t *TerminalChannel) Name() string { return "terminal" }

// IsEnabled implements Channel.
func (t *TerminalChannel) IsEnabled() bool { return t.Enabled && t.Out != nil }

// Send implements Channel.
func (t *TerminalChannel) Send(ctx context.Context, alert models.RiskAlert) error {
	symbol := string(alert.Symbol)
	if symbol == "" {
		symbol = "PORTFOLIO"
	}
	_, err := fmt.Fprintf(t.Out, "[%s] %s %s: %s\n",
		alert.Severity, symbol, alert.Category, alert.Message)
	return err
}

// WebhookChannel POSTs alerts as JSON to a configured URL.
type WebhookChannel struct {
	URL     string
	Enabled bool
	Client  *http.Client
}

// Name implements Channel.
func (w *WebhookChannel) Name() string { return "webhook" }

// IsEnabled implements Channel.
func (w *WebhookChannel) IsEnabled() bool { return w.Enabled && w.URL != "" }

// Send implements Channel.
func (w *WebhookChannel) Send(ctx context.Context, alert models.RiskAlert) error {
	payload := map[string]interface{}{
		"category":  alert.Category,
		"symbol":    alert.Symbol,
		"severity":  alert.Severity,
		"message":   alert.Message,
		"timestamp": alert.Timestamp.Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
