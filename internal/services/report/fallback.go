package report

import (
	"fmt"
	"strings"

	"github.com/ternarybob/brevis/internal/models"
)

// Deterministic substitute content for sections whose generation call failed.
// Each composer is pure and total, and preserves the markup shape the
// structural transformer expects (same heading markers, same table syntax).

// FallbackSummary composes a one-paragraph executive summary from the
// aggregate numbers alone.
func FallbackSummary(dataset *models.Dataset) string {
	return fmt.Sprintf(
		"The team delivered %d qualified client meetings this period, maintaining a %.1f/5 average score. Key opportunities identified across technology and creative sectors.",
		dataset.QualifiedCount, dataset.AverageScore)
}

// FallbackTable composes the performance table directly from member stats,
// sorted by average descending.
func FallbackTable(dataset *models.Dataset) string {
	var table strings.Builder
	table.WriteString("| Name | Meetings | Avg Score |\n|------|----------|----------|\n")
	for _, stats := range MembersByAverage(dataset) {
		fmt.Fprintf(&table, "| %s | %d | %.1f/5 |\n", stats.Name, stats.Count, stats.Average)
	}
	fmt.Fprintf(&table, "| **Total: %d conversations** | **Team Average** | **%.1f/5** |",
		dataset.TotalMeetings, dataset.AverageScore)
	return table.String()
}

// FallbackCard composes one conversation card from a meeting's normalized
// fields with a generic coaching prompt and next action.
func FallbackCard(meeting models.Meeting) string {
	return fmt.Sprintf(`### %s with %s

**Meeting**: %s - %s | **Score**: %d/5

✅ **What was uncovered:**
- **NOW**: %s
- **NEXT**: %s
- **MEASURE**: %s
- **BLOCKER**: %s
- **FIT**: Opportunity aligns with our talent consultancy services

**Next Action**: Follow up with client on specific hiring requirements.

[View meeting →](%s)

---`,
		meeting.Client, meeting.TeamMember,
		meeting.Title, meeting.Date, meeting.Score,
		evidenceOrDefault(meeting, "now", "No immediate needs captured"),
		evidenceOrDefault(meeting, "next", "No next steps captured"),
		evidenceOrDefault(meeting, "measure", "No success metrics captured"),
		evidenceOrDefault(meeting, "blocker", "No blockers identified"),
		meeting.Link)
}

// FallbackCards composes one card per meeting in a failed batch, in batch
// order.
func FallbackCards(batch models.Batch) string {
	cards := make([]string, 0, len(batch.Meetings))
	for _, meeting := range batch.Meetings {
		cards = append(cards, FallbackCard(meeting))
	}
	return strings.Join(cards, "\n")
}

// FallbackCoaching returns static coaching guidance independent of the data.
func FallbackCoaching() string {
	return `## 🎯 TEAM COACHING

**What the team is doing well:**
Maintaining consistent client meeting quality with good discovery depth.

**To become world-class:**
- For MEASURE: Ask clients "What specific outcomes would make this hire successful in 90 days?"
- For FIT: Clarify whether clients need permanent hires vs. fractional/freelance solutions

**One thing to focus on:**
Always quantify the commercial impact of not hiring - what revenue or projects are at risk without the right talent?`
}

// FallbackBriefing composes a full coaching briefing from the aggregate
// numbers alone: summary block, leaderboard and static improvement guidance.
func FallbackBriefing(dataset *models.Dataset) string {
	var briefing strings.Builder

	briefing.WriteString("## 📊 Team Performance Summary\n\n")
	fmt.Fprintf(&briefing, "- Total meetings: %d\n", dataset.TotalMeetings)
	fmt.Fprintf(&briefing, "- Qualified count: %d\n", dataset.QualifiedCount)
	fmt.Fprintf(&briefing, "- Average score: %.1f/5\n", dataset.AverageScore)
	if dataset.Trends != nil {
		fmt.Fprintf(&briefing, "- Last week: %d meetings at %.1f/5 average\n",
			dataset.Trends.LastWeekMeetings, dataset.Trends.LastWeekAverage)
	}

	briefing.WriteString("\n## 🏆 Top Performers\n\n")
	members := MembersByAverage(dataset)
	if len(members) > 3 {
		members = members[:3]
	}
	for _, stats := range members {
		fmt.Fprintf(&briefing, "**%s** - Average: %.1f/5 | Meetings: %d\n\n", stats.Name, stats.Average, stats.Count)
	}

	briefing.WriteString(`## 🎯 Team Improvement Focus

- Quantify success criteria with every client: what does a great hire deliver in 90 days?
- Surface blockers early - budget sign-off, competing priorities, hidden stakeholders.
- Close each meeting with a dated next step.`)

	return briefing.String()
}

const maxEvidenceLen = 200

// evidenceOrDefault returns the meeting's evidence for a criterion truncated
// to a card-friendly length, or the given default when empty.
func evidenceOrDefault(meeting models.Meeting, criterion, fallback string) string {
	evidence := strings.TrimSpace(meeting.Evidence[criterion])
	if evidence == "" {
		return fallback
	}
	runes := []rune(evidence)
	if len(runes) > maxEvidenceLen {
		return string(runes[:maxEvidenceLen])
	}
	return evidence
}
