package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/common"
	"github.com/ternarybob/brevis/internal/interfaces"
	"github.com/ternarybob/brevis/internal/models"
	"github.com/ternarybob/brevis/internal/services/render"
	"github.com/ternarybob/brevis/internal/services/transform"
)

type fakeSource struct {
	records []models.RawRecord
	err     error
	trends  *models.TrendSummary
}

func (f *fakeSource) FetchRecords(ctx context.Context, days int) ([]models.RawRecord, error) {
	return f.records, f.err
}

func (f *fakeSource) FetchTrends(ctx context.Context) (*models.TrendSummary, error) {
	return f.trends, nil
}

func newTestService(source *fakeSource, gen *fakeGeneration) *Service {
	logger := arbor.NewLogger()
	config := testReportConfig()
	renderer := render.NewService(&common.RenderConfig{
		// Nonexistent command forces the built-in layout in tests
		MJMLCommand: []string{"brevis-no-such-layout-tool"},
		MJMLTimeout: time.Second,
	}, logger)

	return NewService(
		source,
		NewGenerator(gen, config, "", logger),
		transform.NewService(logger),
		renderer,
		nil,
		config,
		logger,
	)
}

func TestGenerateReportNoRecords(t *testing.T) {
	svc := newTestService(&fakeSource{}, failingGeneration())

	_, err := svc.GenerateReport(context.Background(), models.ReportKindWeekly)
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}
}

func TestGenerateReportFetchFailureIsFatal(t *testing.T) {
	svc := newTestService(&fakeSource{err: fmt.Errorf("warehouse down")}, failingGeneration())

	_, err := svc.GenerateReport(context.Background(), models.ReportKindWeekly)
	if err == nil || errors.Is(err, ErrNoRecords) {
		t.Errorf("fetch failure should propagate, got %v", err)
	}
}

func TestGenerateReportDegradedRunStillProducesDocument(t *testing.T) {
	source := &fakeSource{records: []models.RawRecord{
		{MeetingID: "1", Client: "Acme", Owner: "Ellie", Score: 5, Date: "2026-08-28"},
		{MeetingID: "2", Client: "Beta", Owner: "Sam", Score: 4, Date: "2026-08-27"},
	}}
	svc := newTestService(source, failingGeneration())

	report, err := svc.GenerateReport(context.Background(), models.ReportKindWeekly)
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	if report.MeetingCount != 2 {
		t.Errorf("meeting count = %d, want 2", report.MeetingCount)
	}
	if len(report.DegradedSections) != len(models.SectionOrder) {
		t.Errorf("degraded sections = %d, want %d", len(report.DegradedSections), len(models.SectionOrder))
	}
	if strings.TrimSpace(report.HTML) == "" {
		t.Error("report HTML is empty")
	}
	// Degraded content is structurally indistinguishable: still a full
	// document with the card containers
	if !strings.Contains(report.HTML, "insight-card") {
		t.Error("report HTML missing card containers")
	}
	if !strings.Contains(report.HTML, "Acme") {
		t.Error("report HTML missing client content")
	}
	if report.ID == "" {
		t.Error("report ID not assigned")
	}
}

func TestGenerateReportFullyGeneratedRun(t *testing.T) {
	source := &fakeSource{
		records: []models.RawRecord{
			{MeetingID: "1", Client: "Acme", Owner: "Ellie", Score: 5},
		},
		trends: &models.TrendSummary{ThisWeekMeetings: 1},
	}
	gen := &fakeGeneration{
		generate: func(ctx context.Context, request *interfaces.ContentRequest) (*interfaces.ContentResponse, error) {
			return &interfaces.ContentResponse{Text: "### Acme with Ellie\n\ngenerated content"}, nil
		},
	}
	svc := newTestService(source, gen)

	report, err := svc.GenerateReport(context.Background(), models.ReportKindWeekly)
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	if len(report.DegradedSections) != 0 {
		t.Errorf("degraded sections = %v, want none", report.DegradedSections)
	}
	if !strings.Contains(report.Markdown, "generated content") {
		t.Error("markdown missing generated text")
	}
}

func TestDateRange(t *testing.T) {
	end := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	got := DateRange(end, 7)
	want := "21 Aug - 28 Aug 2026"
	if got != want {
		t.Errorf("DateRange = %q, want %q", got, want)
	}
}

func TestGenerateCoachingReport(t *testing.T) {
	source := &fakeSource{records: []models.RawRecord{
		{MeetingID: "1", Client: "Acme", Owner: "Ellie", Score: 5, Date: "2026-08-28"},
		{MeetingID: "2", Client: "Beta", Owner: "Sam", Score: 4, Date: "2026-08-27"},
	}}
	svc := newTestService(source, &fakeGeneration{
		generate: func(ctx context.Context, request *interfaces.ContentRequest) (*interfaces.ContentResponse, error) {
			return &interfaces.ContentResponse{Text: "## 📊 Team Performance Summary\n\nStrong week for discovery."}, nil
		},
	})

	report, err := svc.GenerateReport(context.Background(), models.ReportKindCoaching)
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	if report.Kind != models.ReportKindCoaching {
		t.Errorf("kind = %q, want %q", report.Kind, models.ReportKindCoaching)
	}
	if len(report.DegradedSections) != 0 {
		t.Errorf("degraded sections = %v, want none", report.DegradedSections)
	}
	if !strings.Contains(report.HTML, "Strong week for discovery.") {
		t.Error("report HTML missing briefing content")
	}
	if !strings.Contains(report.HTML, "Calls &amp; Coaching Report") && !strings.Contains(report.HTML, "Calls & Coaching Report") {
		t.Error("report HTML missing coaching subtitle")
	}
}

func TestGenerateCoachingReportDegradesToComposedBriefing(t *testing.T) {
	source := &fakeSource{records: []models.RawRecord{
		{MeetingID: "1", Client: "Acme", Owner: "Ellie", Score: 5, Date: "2026-08-28"},
	}}
	svc := newTestService(source, failingGeneration())

	report, err := svc.GenerateReport(context.Background(), models.ReportKindCoaching)
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	if len(report.DegradedSections) != 1 || report.DegradedSections[0] != models.SectionBriefing {
		t.Errorf("degraded sections = %v, want [%s]", report.DegradedSections, models.SectionBriefing)
	}
	if !strings.Contains(report.HTML, "Team Performance Summary") {
		t.Error("report HTML missing composed briefing")
	}
}
