package interfaces

import "github.com/ternarybob/brevis/internal/models"

// ReportStorage archives generated reports.
type ReportStorage interface {
	SaveReport(report *models.Report) error
	GetReport(id string) (*models.Report, error)
	ListReports(limit int) ([]*models.Report, error)
	CountReports() (int, error)
}
