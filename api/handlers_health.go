package api

import (
	"net/http"
	"time"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"rates": "unknown",
	}
	status := map[string]interface{}{
		"status":   "ok",
		"services": services,
	}

	if s.rates.IsInitialized() {
		services["rates"] = "up"
	}

	lastRunAt, lastErr := s.rates.Status()
	if !lastRunAt.IsZero() {
		status["lastRunAt"] = lastRunAt.UTC().Format(time.RFC3339)
	}
	if lastErr != nil {
		status["lastError"] = lastErr.Error()
	}

	s.sendJSONResponse(w, r, status)
}
