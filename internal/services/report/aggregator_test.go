package report

import (
	"testing"

	"github.com/ternarybob/brevis/internal/models"
)

func meeting(client, member string, score int) models.Meeting {
	return models.Meeting{
		Client:     client,
		TeamMember: member,
		Score:      score,
		Evidence:   map[string]string{},
	}
}

func TestAggregateTwoMemberScenario(t *testing.T) {
	meetings := []models.Meeting{
		meeting("Acme", "A", 5),
		meeting("Beta", "A", 5),
		meeting("Gamma", "A", 4),
		meeting("Delta", "B", 5),
	}

	dataset := Aggregate(meetings, 3)

	if dataset.TotalMeetings != 4 {
		t.Errorf("total meetings = %d, want 4", dataset.TotalMeetings)
	}
	if dataset.QualifiedCount != 4 {
		t.Errorf("qualified count = %d, want 4", dataset.QualifiedCount)
	}
	if dataset.AverageScore != 4.8 {
		t.Errorf("team average = %v, want 4.8", dataset.AverageScore)
	}

	if got := dataset.Members["A"].Average; got != 4.7 {
		t.Errorf("member A average = %v, want 4.7", got)
	}
	if got := dataset.Members["B"].Average; got != 5.0 {
		t.Errorf("member B average = %v, want 5.0", got)
	}
	if got := dataset.Members["A"].Count; got != 3 {
		t.Errorf("member A count = %d, want 3", got)
	}
}

func TestAggregateQualifiedThreshold(t *testing.T) {
	meetings := []models.Meeting{
		meeting("A", "X", 5),
		meeting("B", "X", 3),
		meeting("C", "X", 2),
		meeting("D", "X", 0),
	}

	dataset := Aggregate(meetings, 3)

	if dataset.QualifiedCount != 2 {
		t.Errorf("qualified count = %d, want 2 (scores 5 and 3)", dataset.QualifiedCount)
	}
}

func TestAggregateSortsByScoreDescendingStable(t *testing.T) {
	meetings := []models.Meeting{
		meeting("First3", "X", 3),
		meeting("Five", "X", 5),
		meeting("Second3", "X", 3),
		meeting("Four", "X", 4),
	}

	dataset := Aggregate(meetings, 3)

	wantOrder := []string{"Five", "Four", "First3", "Second3"}
	for i, want := range wantOrder {
		if dataset.Meetings[i].Client != want {
			t.Errorf("position %d = %q, want %q", i, dataset.Meetings[i].Client, want)
		}
	}

	// Input slice must not be reordered
	if meetings[0].Client != "First3" {
		t.Error("Aggregate mutated its input slice")
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	dataset := Aggregate(nil, 3)

	if dataset.TotalMeetings != 0 {
		t.Errorf("total meetings = %d, want 0", dataset.TotalMeetings)
	}
	if dataset.AverageScore != 0 {
		t.Errorf("average = %v, want 0", dataset.AverageScore)
	}
	if len(dataset.Members) != 0 {
		t.Errorf("members = %d, want 0", len(dataset.Members))
	}
}

func TestMembersByAverageOrdering(t *testing.T) {
	dataset := Aggregate([]models.Meeting{
		meeting("A", "Low", 2),
		meeting("B", "High", 5),
		meeting("C", "Mid", 4),
	}, 3)

	members := MembersByAverage(dataset)
	wantOrder := []string{"High", "Mid", "Low"}
	for i, want := range wantOrder {
		if members[i].Name != want {
			t.Errorf("position %d = %q, want %q", i, members[i].Name, want)
		}
	}
}
