package interfaces

import (
	"context"

	"github.com/ternarybob/brevis/internal/models"
)

// RecordSource supplies raw meeting records from the analytical warehouse.
// The source owns query definitions and time-windowing; the report pipeline
// only consumes the returned rows. A fetch error is the one failure the
// pipeline cannot recover from.
type RecordSource interface {
	// FetchRecords returns the qualified meeting rows for the trailing
	// window of the given number of days.
	FetchRecords(ctx context.Context, days int) ([]models.RawRecord, error)

	// FetchTrends returns week-over-week summary numbers, or nil when the
	// warehouse cannot supply them. Trend absence is not an error.
	FetchTrends(ctx context.Context) (*models.TrendSummary, error)
}
