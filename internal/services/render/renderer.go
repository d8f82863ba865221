package render

import (
	"bytes"
	"context"
	"embed"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/common"
	"github.com/ternarybob/brevis/internal/models"
)

//go:embed templates/*.mjml
var embeddedTemplates embed.FS

// Service renders transformed report content into a complete HTML document.
// It prefers a kind-specific MJML layout compiled by an external tool; when
// the layout is missing or the tool is unavailable or fails, it falls back
// to a built-in HTML layout. Render is total: it always returns a document.
type Service struct {
	templatesDir string
	command      []string
	timeout      time.Duration
	logger       arbor.ILogger
}

// NewService creates a layout renderer.
func NewService(config *common.RenderConfig, logger arbor.ILogger) *Service {
	timeout := config.MJMLTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	command := config.MJMLCommand
	if len(command) == 0 {
		command = []string{"npx", "mjml", "-s"}
	}

	return &Service{
		templatesDir: config.TemplatesDir,
		command:      command,
		timeout:      timeout,
		logger:       logger,
	}
}

// Render produces the final document for a report kind.
func (s *Service) Render(ctx context.Context, kind models.ReportKind, contentHTML string, meta models.RunMetadata) string {
	layout, err := s.loadLayout(kind)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("kind", string(kind)).
			Msg("Layout template not found, using built-in fallback")
		return s.renderFallback(kind, contentHTML, meta)
	}

	mjml := substitute(layout, contentHTML, meta)

	html, err := s.compileMJML(ctx, mjml)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("kind", string(kind)).
			Msg("MJML compilation failed, using built-in fallback")
		return s.renderFallback(kind, contentHTML, meta)
	}

	return html
}

// loadLayout reads the layout for a report kind, preferring a user override
// on disk over the embedded template.
func (s *Service) loadLayout(kind models.ReportKind) (string, error) {
	name := string(kind) + ".mjml"

	if s.templatesDir != "" {
		path := filepath.Join(s.templatesDir, name)
		if data, err := os.ReadFile(path); err == nil {
			return string(data), nil
		}
	}

	data, err := embeddedTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// compileMJML runs the external layout tool with the MJML payload on stdin.
// Success is a zero exit status with the compiled document on stdout; any
// other outcome is treated as tool unavailability.
func (s *Service) compileMJML(ctx context.Context, mjml string) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, s.command[0], s.command[1:]...)
	cmd.Stdin = strings.NewReader(mjml)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			s.logger.Debug().
				Str("stderr", strings.TrimSpace(stderr.String())).
				Msg("Layout tool error output")
		}
		return "", err
	}

	return stdout.String(), nil
}

// substitute replaces layout placeholders with run values.
func substitute(layout, contentHTML string, meta models.RunMetadata) string {
	return strings.NewReplacer(
		"{{ content }}", contentHTML,
		"{{ current_date }}", meta.GeneratedAt.Format("02 Jan 2006"),
		"{{ date_range }}", meta.DateRange,
		"{{ total_meetings }}", totalMeetingsLabel(meta.TotalMeetings),
	).Replace(layout)
}

func totalMeetingsLabel(total int) string {
	if total <= 0 {
		return "N/A"
	}
	return strconv.Itoa(total)
}

// renderFallback substitutes into the built-in HTML layout. Pure string
// replacement, so this path cannot fail.
func (s *Service) renderFallback(kind models.ReportKind, contentHTML string, meta models.RunMetadata) string {
	layout := strings.Replace(fallbackLayout, "{{ subtitle }}", subtitleFor(kind), -1)
	return substitute(layout, contentHTML, meta)
}

func subtitleFor(kind models.ReportKind) string {
	switch kind {
	case models.ReportKindWeekly:
		return "Weekly Intelligence Report"
	case models.ReportKindCoaching:
		return "Calls & Coaching Report"
	default:
		return "Weekly Update"
	}
}
