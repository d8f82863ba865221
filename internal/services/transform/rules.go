package transform

import (
	"regexp"
	"strings"
)

// Canonical section headings the rule chain converges generated markup onto.
const (
	tableHeading = "## 📊 TEAM PERFORMANCE TABLE"
	cardsHeading = "## 🎯 ALL CONVERSATIONS (Best to Worst)"
)

// Rule is one pattern-based markup correction. Rules are independent and
// idempotent: applying a rule to its own output is a no-op.
type Rule struct {
	Name  string
	Apply func(markdown string) string
}

var (
	boldTableHeaderRe  = regexp.MustCompile(`\*\*##\s*TEAM PERFORMANCE TABLE\*\*`)
	tableHeaderBoldRe  = regexp.MustCompile(`(?i)##\s*\*\*Team Performance Table\*\*`)
	plainCardsHeaderRe = regexp.MustCompile(`(?m)^🎯\s*ALL CONVERSATIONS[^\n]*\n`)
	firstSubsectionRe  = regexp.MustCompile(`###`)
	boldSubsectionRe   = regexp.MustCompile(`###\s*\*\*(.*?)\*\*`)
)

// Rules is the fixed ordered correction chain applied to generated markdown
// before HTML conversion.
var Rules = []Rule{
	{
		// Generators sometimes emit their own table heading in a bold or
		// bold-wrapped variant next to the canonical one. Drop the variants
		// so exactly one canonical heading remains.
		Name: "collapse-duplicate-table-heading",
		Apply: func(md string) string {
			md = boldTableHeaderRe.ReplaceAllString(md, "")
			return tableHeaderBoldRe.ReplaceAllString(md, "")
		},
	},
	{
		// A cards heading emitted as plain text becomes a proper heading.
		Name: "promote-plain-cards-heading",
		Apply: func(md string) string {
			return plainCardsHeaderRe.ReplaceAllString(md, cardsHeading+"\n\n")
		},
	},
	{
		// Output that opens straight with a table gets the table heading.
		Name: "ensure-table-heading",
		Apply: func(md string) string {
			if strings.Contains(md, "📊 TEAM PERFORMANCE TABLE") || !strings.Contains(md, "|") {
				return md
			}
			return tableHeading + "\n\n" + md
		},
	},
	{
		// Output with subsections but no cards heading gets one before the
		// first subsection.
		Name: "ensure-cards-heading",
		Apply: func(md string) string {
			if strings.Contains(md, "🎯 ALL CONVERSATIONS") || !strings.Contains(md, "###") {
				return md
			}
			replaced := false
			return firstSubsectionRe.ReplaceAllStringFunc(md, func(match string) string {
				if replaced {
					return match
				}
				replaced = true
				return cardsHeading + "\n\n" + match
			})
		},
	},
	{
		// Strip bold wrapping around subsection heading text.
		Name: "unbold-subsection-headings",
		Apply: func(md string) string {
			return boldSubsectionRe.ReplaceAllString(md, "### $1")
		},
	},
}

// NormalizeMarkdown applies the full rule chain in order. The result is
// canonical: applying the chain again returns the same string.
func NormalizeMarkdown(markdown string) string {
	for _, rule := range Rules {
		markdown = rule.Apply(markdown)
	}
	return markdown
}
