package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("/healthz", s.healthHandler.GetHealthHandler)

	// API routes - Reports
	mux.HandleFunc("/api/report/preview", s.reportHandler.PreviewHandler)    // GET - generate and return HTML
	mux.HandleFunc("/api/report/send", s.reportHandler.SendHandler)          // POST - generate and deliver
	mux.HandleFunc("/api/report/archive", s.reportHandler.ArchiveHandler)    // GET - list archived reports
	mux.HandleFunc("/api/report/archive/", s.reportHandler.GetArchivedHandler) // GET /{id}

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.notFoundHandler)

	return mux
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not found", http.StatusNotFound)
}
