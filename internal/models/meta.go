package models

import "time"

// RunMetadata carries the per-run values substituted into report layouts.
type RunMetadata struct {
	GeneratedAt   time.Time
	DateRange     string
	TotalMeetings int
}
