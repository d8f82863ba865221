package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/common"
	"github.com/ternarybob/brevis/internal/interfaces"
	"github.com/ternarybob/brevis/internal/models"
	"github.com/ternarybob/brevis/internal/services/render"
	"github.com/ternarybob/brevis/internal/services/transform"
)

// ErrNoRecords indicates the warehouse returned zero rows for the analysis
// window. This is the only failure that aborts a report run.
var ErrNoRecords = errors.New("no meeting records available for report window")

// Service orchestrates one report run: fetch, normalize, aggregate,
// generate, transform, render, archive. Each run is stateless with respect
// to prior runs.
type Service struct {
	source      interfaces.RecordSource
	generator   *Generator
	transformer *transform.Service
	renderer    *render.Service
	storage     interfaces.ReportStorage
	config      *common.ReportConfig
	logger      arbor.ILogger
}

// NewService creates the report orchestration service. Storage may be nil
// when archiving is disabled.
func NewService(
	source interfaces.RecordSource,
	generator *Generator,
	transformer *transform.Service,
	renderer *render.Service,
	storage interfaces.ReportStorage,
	config *common.ReportConfig,
	logger arbor.ILogger,
) *Service {
	return &Service{
		source:      source,
		generator:   generator,
		transformer: transformer,
		renderer:    renderer,
		storage:     storage,
		config:      config,
		logger:      logger,
	}
}

// GenerateReport runs the full pipeline for one report kind. A degraded
// report (some sections from fallback content) is returned as a success;
// only a fetch failure or an empty record set is an error.
func (s *Service) GenerateReport(ctx context.Context, kind models.ReportKind) (*models.Report, error) {
	startTime := time.Now()

	records, err := s.source.FetchRecords(ctx, s.config.Days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meeting records: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	meetings := NormalizeAll(records)
	dataset := Aggregate(meetings, s.config.QualifiedThreshold)

	// Trend absence is tolerated; the coaching prompt simply omits trends
	if trends, trendErr := s.source.FetchTrends(ctx); trendErr != nil {
		s.logger.Warn().Err(trendErr).Msg("Trend fetch failed, generating without trends")
	} else {
		dataset.Trends = trends
	}

	s.logger.Info().
		Int("meetings", dataset.TotalMeetings).
		Int("qualified", dataset.QualifiedCount).
		Float64("average_score", dataset.AverageScore).
		Int("members", len(dataset.Members)).
		Msg("Aggregated meeting records")

	var sections []models.SectionResult
	if kind == models.ReportKindCoaching {
		sections = []models.SectionResult{s.generator.GenerateBriefing(ctx, dataset)}
	} else {
		sections = s.generator.GenerateSections(ctx, dataset)
	}
	markdown := AssembleSections(sections)
	contentHTML := s.transformer.Apply(markdown)

	now := time.Now()
	meta := models.RunMetadata{
		GeneratedAt:   now,
		DateRange:     DateRange(now, s.config.Days),
		TotalMeetings: dataset.TotalMeetings,
	}

	documentHTML := s.renderer.Render(ctx, kind, contentHTML, meta)

	report := &models.Report{
		ID:               uuid.New().String(),
		Kind:             kind,
		HTML:             documentHTML,
		Markdown:         markdown,
		MeetingCount:     dataset.TotalMeetings,
		DateRange:        meta.DateRange,
		DegradedSections: degradedKinds(sections),
		GeneratedAt:      now,
		CreatedAt:        now,
	}

	if s.storage != nil {
		if saveErr := s.storage.SaveReport(report); saveErr != nil {
			s.logger.Warn().Err(saveErr).Str("report_id", report.ID).Msg("Failed to archive report")
		}
	}

	s.logger.Info().
		Str("report_id", report.ID).
		Int("degraded_sections", len(report.DegradedSections)).
		Dur("duration", time.Since(startTime)).
		Msg("Report generated")

	return report, nil
}

// DateRange formats the trailing analysis window ending at the given time.
func DateRange(end time.Time, days int) string {
	start := end.AddDate(0, 0, -days)
	return fmt.Sprintf("%s - %s", start.Format("02 Jan"), end.Format("02 Jan 2006"))
}

func degradedKinds(sections []models.SectionResult) []models.SectionKind {
	var kinds []models.SectionKind
	for _, section := range sections {
		if section.Degraded {
			kinds = append(kinds, section.Kind)
		}
	}
	return kinds
}
