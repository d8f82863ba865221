package report

import (
	"encoding/json"
	"fmt"

	"github.com/ternarybob/brevis/internal/models"
)

// Canonical section headings. The structural transformer recognizes these
// exact strings, so fallback content and generated content must both carry
// them.
const (
	HeadingSummary  = "## 📊 EXECUTIVE SUMMARY"
	HeadingTable    = "## 📊 TEAM PERFORMANCE TABLE"
	HeadingCards    = "## 🎯 ALL CONVERSATIONS (Best to Worst)"
	HeadingCoaching = "## 🎯 TEAM COACHING"
)

// sectionParams bundles the generation parameters for one section call.
type sectionParams struct {
	MaxTokens   int
	Temperature float32
}

var (
	summaryParams = sectionParams{MaxTokens: 500, Temperature: 0.3}
	// Structured table output needs a low temperature
	tableParams    = sectionParams{MaxTokens: 500, Temperature: 0.1}
	cardsParams    = sectionParams{MaxTokens: 2000, Temperature: 0.3}
	coachingParams = sectionParams{MaxTokens: 800, Temperature: 0.4}
	briefingParams = sectionParams{MaxTokens: 1500, Temperature: 0.4}
)

const summarySystem = "You are an analyst producing internal client intelligence reports."

const summaryPromptTemplate = `Analyze this week's client meetings and write ONE comprehensive paragraph (150-200 words) for the Executive Summary covering:

1. Total qualified client meetings and average score
2. Top performer and their key client achievement
3. Key hiring trends observed across clients
4. Notable client patterns
5. Market signals and commercial opportunities

Be specific. Reference actual clients. Highlight commercial opportunities.

Data: %s`

const tableSystem = "Create a performance table for the team."

const tablePromptTemplate = `Create a markdown table showing team performance this week.

Format EXACTLY as:
| Name | Conversation | Score |
|------|--------------|-------|
| [Name] | [Client] — [Date] | [X]/5 |
| | Average | [X]/5 |
[Repeat for each team member]
| Total: X conversations | Team Average | [X]/5 |

Include Average row after team members with multiple meetings.
Sort by highest average score first.

Data: %s`

const cardsSystem = "You are an analyst. Create detailed meeting analysis cards."

const cardsPromptTemplate = `For EACH of these %d client meetings, create a detailed analysis card:

### [Client Name] with [Team Member]

**Meeting**: [Meeting Title] - [Date] | **Score**: [X]/5

✅ **What [Team Member] Uncovered:**

- **NOW**: [Quote EXACT evidence of the client's immediate hiring needs, urgency, current pain points, timeline]
- **NEXT**: [Quote EXACT evidence of next steps in their hiring process, interview stages, decision timeline]
- **MEASURE**: [Quote EXACT evidence of how the client will measure hiring success, KPIs, what good looks like]
- **BLOCKER**: [Quote EXACT evidence of obstacles to hiring, budget constraints, internal challenges]
- **FIT**: [Explain how this opportunity aligns with our services]

💡 **Coaching for [Team Member]:**
[2-3 specific coaching points: questions to ask next time, areas to probe deeper, discovery techniques]

**Next Action**: [Specific follow-up with the client]

[View meeting →](link)

---

CRITICAL: Quote client evidence VERBATIM. Focus on commercial opportunities. Be specific in coaching.

Meetings to analyze:
%s`

const coachingSystem = "Generate coaching insights for the team."

const coachingPromptTemplate = `Based on this week's client meetings, create the Team Coaching section:

## 🎯 TEAM COACHING

**What the team is doing well:**
[Identify 2-3 specific strengths in client discovery]

**To become world-class:**
[2-3 specific improvements with examples:]
- For MEASURE: [e.g., ask clients what specific outcomes would make this hire successful in 90 days]
- For FIT: [e.g., probe whether they need permanent hires vs. fractional/freelance solutions]
- For BLOCKER: [e.g., uncover hidden stakeholders who might veto hiring decisions]

**One thing to focus on:**
[Single most impactful improvement]

Data: %s`

const briefingSystem = "You are an internal analyst. Write detailed, concrete weekly briefings. Be comprehensive and specific."

const briefingPromptTemplate = `Create a team performance briefing focused on discovery quality and improvement.

IMPORTANT: Use proper Markdown formatting including **bold text** with double asterisks:

## 📊 Team Performance Summary
From the aggregate data, show:
- Total meetings: [X] (vs last week: [+/-Y] when trends are present)
- Qualified count: [X]
- Average score: [X]/5 (vs last week: [+/-Y] when trends are present)

## 🏆 Top Performers
Recognize the top 3 team members:
Format: **[Name]** - Average: [X]/5 | Meetings: [Z]

## 💡 Individual Insights
For each team member, identify their strongest and weakest discovery area
from the evidence captured (NOW/NEXT/MEASURE/BLOCKER/FIT).

## 🎯 Team Improvement Focus
Provide 2-3 specific actions:
- Current gap: [criterion captured least often]
- Action: [Specific question to ask more]

Keep actionable and specific. Under 350 words.

Data: %s`

func buildBriefingPrompt(dataset *models.Dataset) string {
	return fmt.Sprintf(briefingPromptTemplate, marshalForPrompt(dataset))
}

func buildSummaryPrompt(dataset *models.Dataset) string {
	return fmt.Sprintf(summaryPromptTemplate, marshalForPrompt(dataset))
}

func buildTablePrompt(dataset *models.Dataset) string {
	return fmt.Sprintf(tablePromptTemplate, marshalForPrompt(dataset.Members))
}

func buildCardsPrompt(batch models.Batch) string {
	return fmt.Sprintf(cardsPromptTemplate, len(batch.Meetings), marshalForPrompt(batch.Meetings))
}

func buildCoachingPrompt(dataset *models.Dataset) string {
	return fmt.Sprintf(coachingPromptTemplate, marshalForPrompt(dataset))
}

// marshalForPrompt serializes data for inclusion in a prompt body. Marshal
// failures degrade to an empty object rather than aborting the section.
func marshalForPrompt(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
