package api

import (
	"net/http"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(w, http.StatusOK, map[string]any{
		"progress": s.Progress.Overview(ctx),
		"mastery":  s.Progress.OverallMastery(ctx),
		"decks":    s.Progress.DeckBreakdown(ctx),
	})
}
