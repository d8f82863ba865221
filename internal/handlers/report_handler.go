package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brevis/internal/interfaces"
	"github.com/ternarybob/brevis/internal/models"
	"github.com/ternarybob/brevis/internal/services/delivery"
	"github.com/ternarybob/brevis/internal/services/report"
)

const defaultArchiveLimit = 20

type ReportHandler struct {
	reports  *report.Service
	delivery *delivery.Service
	storage  interfaces.ReportStorage
	logger   arbor.ILogger
}

func NewReportHandler(reports *report.Service, deliverySvc *delivery.Service, storage interfaces.ReportStorage, logger arbor.ILogger) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		delivery: deliverySvc,
		storage:  storage,
		logger:   logger,
	}
}

// reportKindFromRequest resolves the ?mode= query parameter to a report
// kind. An absent mode means the weekly report.
func reportKindFromRequest(r *http.Request) (models.ReportKind, error) {
	switch mode := r.URL.Query().Get("mode"); mode {
	case "", "weekly", "insights":
		return models.ReportKindWeekly, nil
	case "coaching":
		return models.ReportKindCoaching, nil
	default:
		return "", fmt.Errorf("unknown report mode %q", mode)
	}
}

// PreviewHandler generates a report on demand and returns the rendered HTML
// without delivering it anywhere.
func (h *ReportHandler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	kind, err := reportKindFromRequest(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.reports.GenerateReport(r.Context(), kind)
	if err != nil {
		if errors.Is(err, report.ErrNoRecords) {
			WriteError(w, http.StatusNotFound, "No meeting records available for the report window")
			return
		}
		h.logger.Error().Err(err).Msg("Report preview failed")
		WriteError(w, http.StatusInternalServerError, "Report generation failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rep.HTML))
}

type sendRequest struct {
	To string `json:"to"`
}

// SendHandler generates a report and delivers it through the configured
// webhook. The recipient defaults to the configured address when the
// request body omits one.
func (h *ReportHandler) SendHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if !h.delivery.IsConfigured() {
		WriteError(w, http.StatusServiceUnavailable, "Delivery webhook is not configured")
		return
	}

	kind, err := reportKindFromRequest(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	// An empty body is fine, malformed JSON is not.
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rep, err := h.reports.GenerateReport(r.Context(), kind)
	if err != nil {
		if errors.Is(err, report.ErrNoRecords) {
			WriteError(w, http.StatusNotFound, "No meeting records available for the report window")
			return
		}
		h.logger.Error().Err(err).Msg("Report generation failed")
		WriteError(w, http.StatusInternalServerError, "Report generation failed")
		return
	}

	to := req.To
	if to == "" {
		to = h.delivery.DefaultRecipient()
	}

	subject := delivery.Subject(rep.Kind, time.Now())
	if err := h.delivery.Send(r.Context(), to, subject, rep.HTML); err != nil {
		h.logger.Error().Err(err).Str("to", to).Msg("Report delivery failed")
		WriteError(w, http.StatusBadGateway, "Report delivery failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "success",
		"report_id":         rep.ID,
		"to":                to,
		"subject":           subject,
		"degraded_sections": rep.DegradedSections,
	})
}

// ArchiveHandler lists archived reports, newest first. HTML bodies are
// omitted from the listing.
func (h *ReportHandler) ArchiveHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if h.storage == nil {
		WriteError(w, http.StatusServiceUnavailable, "Report archive is not enabled")
		return
	}

	limit := defaultArchiveLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	reports, err := h.storage.ListReports(limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list archived reports")
		WriteError(w, http.StatusInternalServerError, "Failed to list archived reports")
		return
	}

	summaries := make([]map[string]interface{}, 0, len(reports))
	for _, rep := range reports {
		summaries = append(summaries, map[string]interface{}{
			"id":                rep.ID,
			"kind":              rep.Kind,
			"meeting_count":     rep.MeetingCount,
			"date_range":        rep.DateRange,
			"degraded_sections": rep.DegradedSections,
			"generated_at":      rep.GeneratedAt,
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(summaries),
		"reports": summaries,
	})
}

// GetArchivedHandler returns one archived report by ID, including the
// rendered HTML body.
func (h *ReportHandler) GetArchivedHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if h.storage == nil {
		WriteError(w, http.StatusServiceUnavailable, "Report archive is not enabled")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/report/archive/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	rep, err := h.storage.GetReport(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}

	WriteJSON(w, http.StatusOK, rep)
}
