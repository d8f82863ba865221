package models

// MemberStats accumulates per-team-member meeting statistics during
// aggregation. Average is total/count rounded to one decimal, zero when the
// member has no meetings.
type MemberStats struct {
	Name     string    `json:"name"`
	Meetings []Meeting `json:"meetings"`
	Total    int       `json:"total"`
	Count    int       `json:"count"`
	Average  float64   `json:"average"`
}

// Dataset is the full aggregated snapshot handed to section generation.
// It is immutable during the generation phase; concurrent batch workers only
// ever read from it.
type Dataset struct {
	TotalMeetings  int                     `json:"total_meetings"`
	QualifiedCount int                     `json:"qualified_count"`
	AverageScore   float64                 `json:"average_score"`
	Members        map[string]*MemberStats `json:"members"`
	// Meetings is sorted by score descending, stable on ties.
	Meetings []Meeting `json:"meetings"`
	// Trends carries optional week-over-week numbers from the warehouse,
	// used by the coaching section when available.
	Trends *TrendSummary `json:"trends,omitempty"`
}

// TrendSummary compares the current analysis window to the previous one.
type TrendSummary struct {
	ThisWeekMeetings  int     `json:"this_week_meetings"`
	LastWeekMeetings  int     `json:"last_week_meetings"`
	ThisWeekQualified int     `json:"this_week_qualified"`
	LastWeekQualified int     `json:"last_week_qualified"`
	ThisWeekAverage   float64 `json:"this_week_avg_score"`
	LastWeekAverage   float64 `json:"last_week_avg_score"`
}

// SectionKind identifies one report section.
type SectionKind string

const (
	SectionSummary  SectionKind = "executive_summary"
	SectionTable    SectionKind = "performance_table"
	SectionCards    SectionKind = "conversation_cards"
	SectionCoaching SectionKind = "team_coaching"
	// SectionBriefing is the whole document of a coaching report, generated
	// in one call.
	SectionBriefing SectionKind = "coaching_briefing"
)

// SectionOrder is the fixed assembly order of report sections.
var SectionOrder = []SectionKind{SectionSummary, SectionTable, SectionCards, SectionCoaching}

// SectionResult is the outcome of generating one report section. Degraded is
// true when the content came from the fallback composer rather than live
// generation; a degraded section is structurally indistinguishable from a
// generated one.
type SectionResult struct {
	Kind     SectionKind `json:"kind"`
	Content  string      `json:"content"`
	Degraded bool        `json:"degraded"`
}

// Batch is a fixed-size slice of the score-sorted meeting list, the unit of
// concurrency and of fallback granularity for the conversation-cards section.
type Batch struct {
	Index    int
	Meetings []Meeting
}

// SplitBatches partitions meetings into batches of at most size, preserving
// order. A size <= 0 yields a single batch.
func SplitBatches(meetings []Meeting, size int) []Batch {
	if len(meetings) == 0 {
		return nil
	}
	if size <= 0 {
		return []Batch{{Index: 0, Meetings: meetings}}
	}

	batches := make([]Batch, 0, (len(meetings)+size-1)/size)
	for start := 0; start < len(meetings); start += size {
		end := start + size
		if end > len(meetings) {
			end = len(meetings)
		}
		batches = append(batches, Batch{
			Index:    len(batches),
			Meetings: meetings[start:end],
		})
	}
	return batches
}
