package transform

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Service rewrites generated markdown into styled document fragments: it
// normalizes known structural defects, converts to HTML, and wraps each
// per-client subsection in a styled card container. Apply is total; internal
// failures degrade to the best representation available and are logged.
type Service struct {
	logger arbor.ILogger
}

// NewService creates a structural transformer.
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// Apply runs the full transform: markdown rule chain, HTML conversion, card
// wrapping.
func (s *Service) Apply(markdown string) string {
	normalized := NormalizeMarkdown(markdown)

	htmlContent, err := s.toHTML(normalized)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Markdown conversion failed, emitting preformatted fallback")
		return "<pre>" + escapeHTML(normalized) + "</pre>"
	}

	wrapped, err := WrapCards(htmlContent)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Card wrapping failed, using unwrapped HTML")
		return htmlContent
	}
	return wrapped
}

// toHTML converts normalized markdown to HTML using GitHub Flavored
// Markdown extensions so generated tables survive conversion.
func (s *Service) toHTML(markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WrapCards wraps each h3 subsection (the heading plus its following
// siblings up to the next h3 or h2) in an insight-card container labelled by
// the heading. Already-wrapped subsections are left alone, so WrapCards is
// idempotent.
func WrapCards(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	// Collect subsection groups before mutating the tree
	var groups []*goquery.Selection
	doc.Find("h3").Each(func(_ int, heading *goquery.Selection) {
		if heading.ParentsFiltered("div.insight-card").Length() > 0 {
			return
		}
		groups = append(groups, heading.AddSelection(heading.NextUntil("h3, h2")))
	})

	for _, group := range groups {
		group.WrapAllHtml(`<div class="insight-card"></div>`)
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return body, nil
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
