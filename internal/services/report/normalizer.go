package report

import (
	"encoding/json"
	"strings"

	"github.com/ternarybob/brevis/internal/models"
)

// Sentinel labels used when a raw record is missing identity fields.
const (
	UnknownClient = "Unknown Client"
	UnknownMember = "Unknown"
	DefaultTitle  = "Client Meeting"
)

// Normalize resolves the heterogeneous fields of a raw warehouse row into a
// canonical Meeting. It never fails: any missing or malformed field yields
// that field's default.
func Normalize(raw models.RawRecord) models.Meeting {
	meeting := models.Meeting{
		MeetingID:  raw.MeetingID,
		Client:     resolveClient(raw),
		TeamMember: resolveTeamMember(raw),
		Date:       raw.Date,
		Title:      raw.Title,
		Score:      raw.Score,
		Evidence:   make(map[string]string, len(models.CriterionNames)),
		Challenges: raw.Challenges,
		Results:    raw.Results,
		Link:       raw.Link,
	}

	// Older warehouse rows carry these fields under different keys
	if meeting.Date == "" {
		meeting.Date = raw.DateAlt
	}
	if meeting.Score == 0 {
		meeting.Score = raw.QualifiedSections
	}
	if meeting.Link == "" {
		meeting.Link = raw.LinkAlt
	}

	if meeting.Title == "" {
		meeting.Title = DefaultTitle
	}
	if meeting.Link == "" {
		meeting.Link = "#"
	}

	for _, name := range models.CriterionNames {
		meeting.Evidence[name] = extractEvidence(raw.Criterion(name))
	}

	return meeting
}

// NormalizeAll maps a slice of raw rows to canonical meetings, preserving
// input order.
func NormalizeAll(raws []models.RawRecord) []models.Meeting {
	meetings := make([]models.Meeting, 0, len(raws))
	for _, raw := range raws {
		meetings = append(meetings, Normalize(raw))
	}
	return meetings
}

// resolveClient applies the client label fallback chain: top-level field,
// then the nested client_info object, then client_info JSON-decoded twice
// when the warehouse double-encoded it, then the sentinel.
func resolveClient(raw models.RawRecord) string {
	if client := strings.TrimSpace(raw.Client); client != "" && client != UnknownClient {
		return client
	}

	if len(raw.ClientInfo) == 0 {
		return UnknownClient
	}

	// client_info as a JSON object
	var info struct {
		Client string `json:"client"`
	}
	if err := json.Unmarshal(raw.ClientInfo, &info); err == nil {
		if client := strings.TrimSpace(info.Client); client != "" {
			return client
		}
	}

	// client_info as a JSON-encoded string holding an object
	var encoded string
	if err := json.Unmarshal(raw.ClientInfo, &encoded); err == nil {
		if err := json.Unmarshal([]byte(encoded), &info); err == nil {
			if client := strings.TrimSpace(info.Client); client != "" {
				return client
			}
		}
	}

	return UnknownClient
}

func resolveTeamMember(raw models.RawRecord) string {
	if owner := strings.TrimSpace(raw.Owner); owner != "" {
		return owner
	}
	if creator := strings.TrimSpace(raw.CreatorName); creator != "" {
		return creator
	}
	return UnknownMember
}

func extractEvidence(criterion *models.CriterionRecord) string {
	if criterion == nil {
		return ""
	}
	if criterion.Evidence != "" {
		return criterion.Evidence
	}
	return criterion.Reasoning
}
