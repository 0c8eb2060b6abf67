package api

import (
	"net/http"
)

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	pending := s.Cache.PendingUpdates()
	status := map[string]any{
		"pending_flashcards": len(pending.Flashcards),
		"pending_progress":   pending.Progress != nil,
	}
	if last, ok := s.Cache.LastSync(); ok {
		status["last_sync"] = last
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handlePull(w http.ResponseWriter, r *http.Request) {
	ok := s.Sync.Pull(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"ok": ok})
}

func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	ok := s.Sync.Push(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"ok": ok})
}
