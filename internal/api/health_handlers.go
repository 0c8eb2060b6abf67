package api

import (
	"net/http"

	"github.com/pcosta/flashdeck/internal/logger"
)

// handleHealth is a liveness probe; it answers as long as the process runs.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady reports whether the local cache is usable. The remote store is
// deliberately not part of readiness: the whole point of the cache-first
// design is to keep serving while the remote is unreachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.Cache.Ready() {
		logger.FromContext(r.Context()).Warn("readiness check failed: cache unavailable")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Cache unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
