package main

import (
	"net/http"

	"wasdash/internal/metrics"
)

// handleMetrics serves the in-memory metrics snapshot as JSON.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, metrics.GetAllMetrics())
}
