package models

import "time"

// ReportKind selects the layout and subject line for a generated report.
type ReportKind string

const (
	// ReportKindWeekly is the standard weekly intelligence brief.
	ReportKindWeekly ReportKind = "weekly"
	// ReportKindCoaching is the calls-and-coaching briefing, a single
	// generated document focused on discovery quality.
	ReportKindCoaching ReportKind = "coaching"
)

// Report is one fully assembled report run, archived after generation.
type Report struct {
	ID           string     `json:"id" badgerhold:"key"`
	Kind         ReportKind `json:"kind"`
	HTML         string     `json:"html"`
	Markdown     string     `json:"markdown"`
	MeetingCount int        `json:"meeting_count"`
	DateRange    string     `json:"date_range"`
	// DegradedSections lists sections whose content came from the fallback
	// composer. Empty for a fully generated report.
	DegradedSections []SectionKind `json:"degraded_sections,omitempty"`
	GeneratedAt      time.Time     `json:"generated_at"`
	CreatedAt        time.Time     `json:"created_at"`
}
