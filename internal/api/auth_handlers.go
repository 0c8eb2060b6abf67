package api

import (
	"net/http"
	"strings"

	"github.com/pcosta/flashdeck/internal/errors"
	"github.com/pcosta/flashdeck/internal/logger"
)

// handleSignIn verifies the bearer token and opens the session. Opening the
// session triggers the bound sync engine's pull in the background.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		handleError(w, r, errors.NewAuthRequiredError())
		return
	}

	userID, err := s.Verifier.Verify(token)
	if err != nil {
		log.Warn("token rejected: %v", err)
		handleError(w, r, errors.NewAuthRequiredError())
		return
	}

	s.Session.SignIn(userID)
	log.Info("user signed in: %s", userID)
	writeJSON(w, http.StatusOK, map[string]any{"user_id": userID})
}

// handleSignOut flushes pending updates, then closes the session. Closing the
// session wipes the local cache, so the flush has to happen first; a failed
// flush still signs the user out (queued deltas are lost with the cache, the
// remote simply never learns about them).
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	pushed := s.Sync.Push(r.Context())
	if !pushed {
		log.Warn("pending updates not flushed before sign-out")
	}
	s.Session.SignOut()

	writeJSON(w, http.StatusOK, map[string]any{"pushed": pushed})
}
