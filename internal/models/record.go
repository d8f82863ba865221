package models

import "encoding/json"

// CriterionNames lists the discovery criteria scored for every meeting, in
// presentation order.
var CriterionNames = []string{"now", "next", "measure", "blocker", "fit"}

// CriterionRecord holds the qualification result for a single discovery
// criterion as scored by the upstream warehouse.
type CriterionRecord struct {
	Qualified bool   `json:"qualified"`
	Summary   string `json:"summary,omitempty"`
	Evidence  string `json:"evidence,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// RawRecord is one meeting row as returned by the analytical warehouse.
// Field shapes are heterogeneous across warehouse versions: ClientInfo may be
// a JSON object, a JSON-encoded string, or absent; criterion sub-records may
// be missing entirely. RawRecord is read-only once fetched.
type RawRecord struct {
	MeetingID   string          `json:"meeting_id"`
	Date        string          `json:"meeting_date"`
	DateAlt     string          `json:"date,omitempty"`
	Title       string          `json:"meeting_title"`
	Client      string          `json:"client"`
	ClientInfo  json.RawMessage `json:"client_info,omitempty"`
	Owner       string          `json:"owner"`
	CreatorName string          `json:"creator_name"`
	Score       int             `json:"score"`
	// QualifiedSections is the older warehouse name for the meeting score.
	QualifiedSections int `json:"total_qualified_sections,omitempty"`

	Now     *CriterionRecord `json:"now,omitempty"`
	Next    *CriterionRecord `json:"next,omitempty"`
	Measure *CriterionRecord `json:"measure,omitempty"`
	Blocker *CriterionRecord `json:"blocker,omitempty"`
	Fit     *CriterionRecord `json:"fit,omitempty"`

	Challenges []string `json:"challenges,omitempty"`
	Results    []string `json:"results,omitempty"`
	Link       string   `json:"meeting_link,omitempty"`
	LinkAlt    string   `json:"granola_link,omitempty"`
}

// Criterion returns the sub-record for a named criterion, or nil.
func (r *RawRecord) Criterion(name string) *CriterionRecord {
	switch name {
	case "now":
		return r.Now
	case "next":
		return r.Next
	case "measure":
		return r.Measure
	case "blocker":
		return r.Blocker
	case "fit":
		return r.Fit
	}
	return nil
}

// Meeting is the canonical form of a RawRecord after normalization.
// Client and TeamMember are never empty, Score is always present, and
// Evidence holds one flattened string per criterion name.
type Meeting struct {
	MeetingID  string            `json:"meeting_id"`
	Client     string            `json:"client"`
	TeamMember string            `json:"team_member"`
	Date       string            `json:"date"`
	Title      string            `json:"title"`
	Score      int               `json:"score"`
	Evidence   map[string]string `json:"evidence"`
	Challenges []string          `json:"challenges,omitempty"`
	Results    []string          `json:"results,omitempty"`
	Link       string            `json:"link,omitempty"`
}
