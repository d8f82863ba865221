package report

import (
	"encoding/json"
	"testing"

	"github.com/ternarybob/brevis/internal/models"
)

func TestNormalizeClientFallbackChain(t *testing.T) {
	tests := []struct {
		name       string
		client     string
		clientInfo string
		want       string
	}{
		{
			name:   "direct field",
			client: "Acme Corp",
			want:   "Acme Corp",
		},
		{
			name:       "direct field wins over nested",
			client:     "Acme Corp",
			clientInfo: `{"client":"Other"}`,
			want:       "Acme Corp",
		},
		{
			name:       "nested object",
			client:     "",
			clientInfo: `{"client":"Instacart"}`,
			want:       "Instacart",
		},
		{
			name:       "sentinel direct field falls through to nested",
			client:     "Unknown Client",
			clientInfo: `{"client":"Instacart"}`,
			want:       "Instacart",
		},
		{
			name:       "double-encoded string",
			client:     "",
			clientInfo: `"{\"client\":\"Figma\"}"`,
			want:       "Figma",
		},
		{
			name:   "empty everything",
			client: "",
			want:   "Unknown Client",
		},
		{
			name:       "malformed nested",
			client:     "",
			clientInfo: `{not json`,
			want:       "Unknown Client",
		},
		{
			name:       "nested without client key",
			client:     "",
			clientInfo: `{"company":"Acme"}`,
			want:       "Unknown Client",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := models.RawRecord{Client: tt.client}
			if tt.clientInfo != "" {
				raw.ClientInfo = json.RawMessage(tt.clientInfo)
			}
			got := Normalize(raw)
			if got.Client != tt.want {
				t.Errorf("client = %q, want %q", got.Client, tt.want)
			}
		})
	}
}

func TestNormalizeTeamMember(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		creator string
		want    string
	}{
		{"owner field", "Ellie", "", "Ellie"},
		{"creator fallback", "", "Sam", "Sam"},
		{"owner wins", "Ellie", "Sam", "Ellie"},
		{"sentinel", "", "", "Unknown"},
		{"whitespace owner", "  ", "Sam", "Sam"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(models.RawRecord{Owner: tt.owner, CreatorName: tt.creator})
			if got.TeamMember != tt.want {
				t.Errorf("team member = %q, want %q", got.TeamMember, tt.want)
			}
		})
	}
}

func TestNormalizeEvidence(t *testing.T) {
	raw := models.RawRecord{
		Now:     &models.CriterionRecord{Evidence: "needs two designers by March"},
		Next:    &models.CriterionRecord{Reasoning: "panel interview scheduled"},
		Measure: &models.CriterionRecord{},
	}

	got := Normalize(raw)

	if got.Evidence["now"] != "needs two designers by March" {
		t.Errorf("now evidence = %q", got.Evidence["now"])
	}
	if got.Evidence["next"] != "panel interview scheduled" {
		t.Errorf("next evidence should fall back to reasoning, got %q", got.Evidence["next"])
	}
	if got.Evidence["measure"] != "" {
		t.Errorf("measure evidence = %q, want empty", got.Evidence["measure"])
	}
	if got.Evidence["blocker"] != "" {
		t.Errorf("missing criterion should yield empty evidence, got %q", got.Evidence["blocker"])
	}

	// Every criterion must have an entry even when absent from the raw row
	for _, name := range models.CriterionNames {
		if _, ok := got.Evidence[name]; !ok {
			t.Errorf("missing evidence entry for %q", name)
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	got := Normalize(models.RawRecord{})

	if got.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", got.Title, DefaultTitle)
	}
	if got.Link != "#" {
		t.Errorf("link = %q, want %q", got.Link, "#")
	}
	if got.Score != 0 {
		t.Errorf("score = %d, want 0", got.Score)
	}
}

func TestNormalizeAlternateWarehouseKeys(t *testing.T) {
	got := Normalize(models.RawRecord{
		MeetingID:         "m1",
		Client:            "Acme",
		Owner:             "Ellie",
		DateAlt:           "2026-08-28",
		QualifiedSections: 4,
		LinkAlt:           "https://notes.example/m1",
	})

	if got.Date != "2026-08-28" {
		t.Errorf("date = %q, want alternate key value", got.Date)
	}
	if got.Score != 4 {
		t.Errorf("score = %d, want 4 from total_qualified_sections", got.Score)
	}
	if got.Link != "https://notes.example/m1" {
		t.Errorf("link = %q, want alternate key value", got.Link)
	}
}

func TestNormalizePrimaryKeysWinOverAlternates(t *testing.T) {
	got := Normalize(models.RawRecord{
		Date:              "2026-08-28",
		DateAlt:           "2020-01-01",
		Score:             5,
		QualifiedSections: 2,
		Link:              "https://meet.example/a",
		LinkAlt:           "https://notes.example/b",
	})

	if got.Date != "2026-08-28" || got.Score != 5 || got.Link != "https://meet.example/a" {
		t.Errorf("primary keys should win: %+v", got)
	}
}
