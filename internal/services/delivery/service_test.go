package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/common"
	"github.com/ternarybob/brevis/internal/models"
)

func TestSendPostsPayload(t *testing.T) {
	var received payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode failed: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewService(&common.DeliveryConfig{WebhookURL: server.URL}, arbor.NewLogger())

	err := svc.Send(context.Background(), "team@example.com", "Weekly Report", "<html>doc</html>")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if received.To != "team@example.com" || received.Subject != "Weekly Report" || received.HTML != "<html>doc</html>" {
		t.Errorf("payload = %+v", received)
	}
}

func TestSendUsesDefaultRecipient(t *testing.T) {
	var received payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
	}))
	defer server.Close()

	svc := NewService(&common.DeliveryConfig{
		WebhookURL: server.URL,
		DefaultTo:  "default@example.com",
	}, arbor.NewLogger())

	if err := svc.Send(context.Background(), "", "Subject", "<p>x</p>"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if received.To != "default@example.com" {
		t.Errorf("to = %q, want default recipient", received.To)
	}
}

func TestSendErrorOnFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rejected", http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewService(&common.DeliveryConfig{WebhookURL: server.URL}, arbor.NewLogger())

	if err := svc.Send(context.Background(), "x@example.com", "S", "<p></p>"); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestSendUnconfigured(t *testing.T) {
	svc := NewService(&common.DeliveryConfig{}, arbor.NewLogger())

	if svc.IsConfigured() {
		t.Error("IsConfigured should be false without a webhook URL")
	}
	if err := svc.Send(context.Background(), "x@example.com", "S", ""); err == nil {
		t.Error("Send should fail when unconfigured")
	}
}

func TestSubjectWeekEnding(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "wednesday rolls forward to friday",
			now:  time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
			want: "Brevis — Weekly Team Performance (w/e 28 Aug)",
		},
		{
			name: "friday is its own week ending",
			now:  time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
			want: "Brevis — Weekly Team Performance (w/e 28 Aug)",
		},
		{
			name: "saturday rolls to next friday",
			now:  time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
			want: "Brevis — Weekly Team Performance (w/e 04 Sep)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subject(models.ReportKindWeekly, tt.now); got != tt.want {
				t.Errorf("Subject = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubjectPerReportKind(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)

	if got := Subject(models.ReportKindCoaching, now); got != "Brevis — Calls & Coaching (w/e 28 Aug)" {
		t.Errorf("coaching subject = %q", got)
	}
	if got := Subject(models.ReportKind("other"), now); got != "Brevis — Weekly Update (w/e 28 Aug)" {
		t.Errorf("unknown kind subject = %q", got)
	}
}
