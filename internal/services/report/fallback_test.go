package report

import (
	"strings"
	"testing"

	"github.com/ternarybob/brevis/internal/models"
)

func TestFallbackCardCarriesMeetingFields(t *testing.T) {
	m := models.Meeting{
		Client:     "Instacart",
		TeamMember: "Ellie",
		Title:      "Discovery call",
		Date:       "2026-08-28",
		Score:      5,
		Evidence: map[string]string{
			"now":  "needs a creative director immediately",
			"next": "shortlist review on Tuesday",
		},
		Link: "https://example.com/m/1",
	}

	card := FallbackCard(m)

	for _, want := range []string{
		"### Instacart with Ellie",
		"Discovery call - 2026-08-28",
		"**Score**: 5/5",
		"needs a creative director immediately",
		"shortlist review on Tuesday",
		"https://example.com/m/1",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q", want)
		}
	}

	// Missing criteria get placeholder text, never an empty bullet
	if !strings.Contains(card, "No success metrics captured") {
		t.Error("card missing measure placeholder")
	}
	if !strings.Contains(card, "No blockers identified") {
		t.Error("card missing blocker placeholder")
	}
}

func TestFallbackCardTruncatesEvidence(t *testing.T) {
	long := strings.Repeat("x", 400)
	m := models.Meeting{
		Client:     "Acme",
		TeamMember: "Sam",
		Evidence:   map[string]string{"now": long},
	}

	card := FallbackCard(m)

	if strings.Contains(card, long) {
		t.Error("evidence was not truncated")
	}
	if !strings.Contains(card, strings.Repeat("x", maxEvidenceLen)) {
		t.Error("truncated evidence missing")
	}
}

func TestFallbackCardsOnePerMeeting(t *testing.T) {
	batch := models.Batch{Meetings: []models.Meeting{
		meeting("A", "X", 5),
		meeting("B", "Y", 4),
		meeting("C", "Z", 3),
	}}

	cards := FallbackCards(batch)

	if got := strings.Count(cards, "### "); got != 3 {
		t.Errorf("card count = %d, want 3", got)
	}
	for _, client := range []string{"A", "B", "C"} {
		if !strings.Contains(cards, "### "+client+" with ") {
			t.Errorf("missing card for client %q", client)
		}
	}
}

func TestFallbackTableShape(t *testing.T) {
	dataset := Aggregate([]models.Meeting{
		meeting("Acme", "Ellie", 5),
		meeting("Beta", "Ellie", 4),
		meeting("Gamma", "Sam", 3),
	}, 3)

	table := FallbackTable(dataset)

	if !strings.Contains(table, "| Name | Meetings | Avg Score |") {
		t.Error("missing table header row")
	}
	if !strings.Contains(table, "| Ellie | 2 | 4.5/5 |") {
		t.Errorf("missing Ellie row, got:\n%s", table)
	}
	if !strings.Contains(table, "| Sam | 1 | 3.0/5 |") {
		t.Errorf("missing Sam row, got:\n%s", table)
	}
	if !strings.Contains(table, "**Total: 3 conversations**") {
		t.Error("missing totals row")
	}
}

func TestFallbackSummaryUsesAggregates(t *testing.T) {
	dataset := Aggregate([]models.Meeting{
		meeting("Acme", "Ellie", 4),
		meeting("Beta", "Sam", 4),
	}, 3)

	summary := FallbackSummary(dataset)

	if !strings.Contains(summary, "2 qualified client meetings") {
		t.Errorf("summary missing qualified count: %s", summary)
	}
	if !strings.Contains(summary, "4.0/5") {
		t.Errorf("summary missing average: %s", summary)
	}
}
