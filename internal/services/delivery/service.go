// Package delivery posts finished report documents to an outbound webhook.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/common"
	"github.com/ternarybob/brevis/internal/models"
)

// DefaultTimeout is the default webhook request timeout.
const DefaultTimeout = 30 * time.Second

// Service delivers report documents through a configured webhook. When no
// webhook URL is configured, delivery is a no-op and IsConfigured reports
// false so callers can skip the send step.
type Service struct {
	webhookURL string
	defaultTo  string
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewService creates a delivery service from configuration.
func NewService(config *common.DeliveryConfig, logger arbor.ILogger) *Service {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Service{
		webhookURL: config.WebhookURL,
		defaultTo:  config.DefaultTo,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// IsConfigured reports whether a delivery endpoint is configured.
func (s *Service) IsConfigured() bool {
	return s.webhookURL != ""
}

// DefaultRecipient returns the configured default recipient list.
func (s *Service) DefaultRecipient() string {
	return s.defaultTo
}

// payload is the wire shape of the outbound delivery call.
type payload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send delivers the HTML document to the recipient list.
func (s *Service) Send(ctx context.Context, to, subject, html string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("delivery webhook is not configured")
	}
	if to == "" {
		to = s.defaultTo
	}
	if to == "" {
		return fmt.Errorf("no recipient specified and no default configured")
	}

	body, err := json.Marshal(payload{To: to, Subject: subject, HTML: html})
	if err != nil {
		return fmt.Errorf("failed to marshal delivery payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delivery request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delivery webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	s.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Int("html_bytes", len(html)).
		Msg("Report delivered")

	return nil
}

// Subject composes the subject line for a report kind, stamped with the
// week-ending Friday.
func Subject(kind models.ReportKind, now time.Time) string {
	weekEnding := WeekEndingFriday(now).Format("02 Jan")

	switch kind {
	case models.ReportKindWeekly:
		return fmt.Sprintf("Brevis — Weekly Team Performance (w/e %s)", weekEnding)
	case models.ReportKindCoaching:
		return fmt.Sprintf("Brevis — Calls & Coaching (w/e %s)", weekEnding)
	default:
		return fmt.Sprintf("Brevis — Weekly Update (w/e %s)", weekEnding)
	}
}

// WeekEndingFriday returns the Friday of the current week, or the upcoming
// Friday when the given day is already past it.
func WeekEndingFriday(now time.Time) time.Time {
	daysAhead := int(time.Friday - now.Weekday())
	if daysAhead < 0 {
		daysAhead += 7
	}
	return now.AddDate(0, 0, daysAhead)
}
