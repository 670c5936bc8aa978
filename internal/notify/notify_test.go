package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

func sampleAlert() models.RiskAlert {
	return models.RiskAlert{
		Category:  models.AlertMargin,
		Symbol:    "AAPL",
		Severity:  models.SeverityHigh,
		Message:   "margin utilization 92% exceeds limit",
		Timestamp: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestTerminalChannelSend(t *testing.T) {
	var buf strings.Builder
	ch := &TerminalChannel{Out: &buf, Enabled: true}

	if err := ch.Send(context.Background(), sampleAlert()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "HIGH") || !strings.Contains(out, "AAPL") || !strings.Contains(out, "MARGIN") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestTerminalChannelPortfolioAlert(t *testing.T) {
	var buf strings.Builder
	ch := &TerminalChannel{Out: &buf, Enabled: true}

	alert := sampleAlert()
	alert.Symbol = ""
	if err := ch.Send(context.Background(), alert); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(buf.String(), "PORTFOLIO") {
		t.Errorf("portfolio-wide alert missing PORTFOLIO label: %q", buf.String())
	}
}

func TestTerminalChannelEnabled(t *testing.T) {
	var buf strings.Builder
	if (&TerminalChannel{Out: &buf, Enabled: false}).IsEnabled() {
		t.Error("disabled channel reported enabled")
	}
	if (&TerminalChannel{Out: nil, Enabled: true}).IsEnabled() {
		t.Error("channel without writer reported enabled")
	}
	if !(&TerminalChannel{Out: &buf, Enabled: true}).IsEnabled() {
		t.Error("configured channel reported disabled")
	}
}

func TestWebhookChannelSend(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ch := &WebhookChannel{URL: srv.URL, Enabled: true, Client: srv.Client()}
	if err := ch.Send(context.Background(), sampleAlert()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if received["category"] != "MARGIN" || received["symbol"] != "AAPL" || received["severity"] != "HIGH" {
		t.Errorf("unexpected payload: %v", received)
	}
	if received["timestamp"] != "2026-03-15T10:30:00Z" {
		t.Errorf("timestamp = %v", received["timestamp"])
	}
}

func TestWebhookChannelErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ch := &WebhookChannel{URL: srv.URL, Enabled: true, Client: srv.Client()}
	if err := ch.Send(context.Background(), sampleAlert()); err == nil {
		t.Error("expected error for 502 response, got nil")
	}
}

func TestWebhookChannelEnabled(t *testing.T) {
	if (&WebhookChannel{URL: "", Enabled: true}).IsEnabled() {
		t.Error("channel without URL reported enabled")
	}
	if (&WebhookChannel{URL: "http://localhost", Enabled: false}).IsEnabled() {
		t.Error("disabled channel reported enabled")
	}
}

type recordingChannel struct {
	name    string
	enabled bool
	err     error
	sent    []models.RiskAlert
}

func (c *recordingChannel) Name() string    { return c.name }
func (c *recordingChannel) IsEnabled() bool { return c.enabled }
func (c *recordingChannel) Send(_ context.Context, alert models.RiskAlert) error {
	c.sent = append(c.sent, alert)
	return c.err
}

func TestDispatcherFansOut(t *testing.T) {
	a := &recordingChannel{name: "a", enabled: true}
	b := &recordingChannel{name: "b", enabled: true}
	skipped := &recordingChannel{name: "skipped", enabled: false}

	d := NewDispatcher(zerolog.Nop(), a, b, skipped)
	d.Dispatch(sampleAlert())

	if len(a.sent) != 1 || len(b.sent) != 1 {
		t.Errorf("enabled channels got %d/%d alerts, want 1/1", len(a.sent), len(b.sent))
	}
	if len(skipped.sent) != 0 {
		t.Errorf("disabled channel got %d alerts, want 0", len(skipped.sent))
	}
}

func TestDispatcherSwallowsChannelErrors(t *testing.T) {
	failing := &recordingChannel{name: "failing", enabled: true, err: errors.New("connection refused")}
	after := &recordingChannel{name: "after", enabled: true}

	d := NewDispatcher(zerolog.Nop(), failing, after)
	d.Dispatch(sampleAlert())

	if len(after.sent) != 1 {
		t.Errorf("channel after a failure got %d alerts, want 1", len(after.sent))
	}
}
