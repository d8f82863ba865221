package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/common"
	"github.com/ternarybob/brevis/internal/models"
)

func testMeta() models.RunMetadata {
	return models.RunMetadata{
		GeneratedAt:   time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		DateRange:     "21 Aug - 28 Aug 2026",
		TotalMeetings: 4,
	}
}

func TestRenderFallsBackWhenToolUnavailable(t *testing.T) {
	svc := NewService(&common.RenderConfig{
		MJMLCommand: []string{"brevis-no-such-layout-tool"},
		MJMLTimeout: time.Second,
	}, arbor.NewLogger())

	html := svc.Render(context.Background(), models.ReportKindWeekly, "<p>report body</p>", testMeta())

	if html == "" {
		t.Fatal("Render returned empty document")
	}
	for _, want := range []string{
		"<p>report body</p>",
		"28 Aug 2026",
		"21 Aug - 28 Aug 2026",
		"Generated from 4 qualified meetings",
		"Weekly Intelligence Report",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("fallback document missing %q", want)
		}
	}
	if strings.Contains(html, "{{") {
		t.Error("unsubstituted placeholder left in document")
	}
}

func TestRenderFallsBackOnToolFailure(t *testing.T) {
	// A tool that exits non-zero is treated the same as a missing tool
	svc := NewService(&common.RenderConfig{
		MJMLCommand: []string{"false"},
		MJMLTimeout: time.Second,
	}, arbor.NewLogger())

	html := svc.Render(context.Background(), models.ReportKindWeekly, "<p>body</p>", testMeta())

	if !strings.Contains(html, "<p>body</p>") {
		t.Error("fallback document missing content")
	}
}

func TestRenderUsesExternalToolOutput(t *testing.T) {
	// cat echoes the substituted layout back, standing in for a compiler
	svc := NewService(&common.RenderConfig{
		MJMLCommand: []string{"cat"},
		MJMLTimeout: time.Second,
	}, arbor.NewLogger())

	html := svc.Render(context.Background(), models.ReportKindWeekly, "<p>unique-content-marker</p>", testMeta())

	if !strings.Contains(html, "<mjml>") {
		t.Errorf("expected tool output (the mjml payload), got:\n%.200s", html)
	}
	if !strings.Contains(html, "unique-content-marker") {
		t.Error("content not substituted into layout before tool invocation")
	}
}

func TestRenderPrefersUserOverrideLayout(t *testing.T) {
	dir := t.TempDir()
	override := "<mjml>OVERRIDE {{ content }}</mjml>"
	if err := os.WriteFile(filepath.Join(dir, "weekly.mjml"), []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(&common.RenderConfig{
		TemplatesDir: dir,
		MJMLCommand:  []string{"cat"},
		MJMLTimeout:  time.Second,
	}, arbor.NewLogger())

	html := svc.Render(context.Background(), models.ReportKindWeekly, "<p>x</p>", testMeta())

	if !strings.Contains(html, "OVERRIDE") {
		t.Error("user override layout not used")
	}
}

func TestRenderUnknownKindUsesFallbackLayout(t *testing.T) {
	svc := NewService(&common.RenderConfig{
		MJMLCommand: []string{"cat"},
		MJMLTimeout: time.Second,
	}, arbor.NewLogger())

	html := svc.Render(context.Background(), models.ReportKind("nonexistent"), "<p>x</p>", testMeta())

	if !strings.Contains(html, "<p>x</p>") {
		t.Error("fallback document missing content")
	}
	if !strings.Contains(html, "Weekly Update") {
		t.Error("unknown kind should use generic subtitle")
	}
}

func TestTotalMeetingsLabel(t *testing.T) {
	if got := totalMeetingsLabel(0); got != "N/A" {
		t.Errorf("label(0) = %q, want N/A", got)
	}
	if got := totalMeetingsLabel(7); got != "7" {
		t.Errorf("label(7) = %q, want 7", got)
	}
}

func TestRenderCoachingKindUsesCoachingLayout(t *testing.T) {
	svc := NewService(&common.RenderConfig{
		MJMLCommand: []string{"brevis-no-such-layout-tool"},
		MJMLTimeout: time.Second,
	}, arbor.NewLogger())

	html := svc.Render(context.Background(), models.ReportKindCoaching, "<h2>Team Performance Summary</h2>", testMeta())

	if !strings.Contains(html, "Calls &amp; Coaching Report") && !strings.Contains(html, "Calls & Coaching Report") {
		t.Error("coaching document missing its subtitle")
	}
	if !strings.Contains(html, "<h2>Team Performance Summary</h2>") {
		t.Error("coaching document missing the generated body")
	}
}
