package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/brevis/internal/common"
	"github.com/ternarybob/brevis/internal/interfaces"
)

type HealthHandler struct {
	storage interfaces.ReportStorage
	logger  arbor.ILogger
}

func NewHealthHandler(storage interfaces.ReportStorage, logger arbor.ILogger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		logger:  logger,
	}
}

// GetHealthHandler returns service health and stored report count.
func (h *HealthHandler) GetHealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	response := map[string]interface{}{
		"status":  "healthy",
		"service": "brevis",
		"version": common.GetVersion(),
	}

	if h.storage != nil {
		count, err := h.storage.CountReports()
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to count stored reports")
		} else {
			response["reports"] = count
		}
	}

	WriteJSON(w, http.StatusOK, response)
}
