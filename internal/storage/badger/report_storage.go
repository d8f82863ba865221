package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/interfaces"
	"github.com/ternarybob/brevis/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ReportStorage implements the ReportStorage interface for Badger
type ReportStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewReportStorage creates a new ReportStorage instance
func NewReportStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ReportStorage {
	return &ReportStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ReportStorage) SaveReport(report *models.Report) error {
	if report.ID == "" {
		return fmt.Errorf("report ID is required")
	}

	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(report.ID, report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (s *ReportStorage) GetReport(id string) (*models.Report, error) {
	var report models.Report
	if err := s.db.Store().Get(id, &report); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("report not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// ListReports returns archived reports, newest first.
func (s *ReportStorage) ListReports(limit int) ([]*models.Report, error) {
	var reports []models.Report
	if err := s.db.Store().Find(&reports, nil); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].GeneratedAt.After(reports[j].GeneratedAt)
	})

	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}

	result := make([]*models.Report, len(reports))
	for i := range reports {
		result[i] = &reports[i]
	}
	return result, nil
}

func (s *ReportStorage) CountReports() (int, error) {
	count, err := s.db.Store().Count(&models.Report{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return int(count), nil
}
